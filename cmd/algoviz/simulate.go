package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/algoviz/internal/config"
	"github.com/aretw0/algoviz/internal/presentation/graph"
	"github.com/aretw0/algoviz/internal/presentation/tui"
	"github.com/aretw0/algoviz/pkg/adapters/mcp"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <algorithm> <operations>",
	Short: "Run toolbar operations off-screen and print the frames",
	Long: `Runs a semicolon separated list of operations against a fresh visualizer,
for example:

  algoviz simulate BST "insert 5, 3, 8; find 3; delete 5; print"

With --format mermaid the final frame is printed as a Mermaid flowchart and
with --format chart its numeric items are plotted as a line chart.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")

		resp, err := simulate(cmd, cfg, args[0], args[1])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch format {
		case "text":
			plain := !isTerminal()
			for _, f := range resp.Frames {
				fmt.Fprintln(out, tui.FormatFrame(f, plain))
			}
			for _, d := range resp.Dropped {
				fmt.Fprintf(out, "dropped %s\n", d)
			}
		case "mermaid":
			if len(resp.Frames) == 0 {
				return fmt.Errorf("no frames produced")
			}
			fmt.Fprint(out, graph.GenerateMermaid(resp.Frames[len(resp.Frames)-1], graph.LayoutFor(resp.Algorithm)))
		case "chart":
			if len(resp.Frames) == 0 {
				return fmt.Errorf("no frames produced")
			}
			chart, err := tui.FormatChart(resp.Frames[len(resp.Frames)-1], 60)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, chart)
		default:
			return fmt.Errorf("unknown format %q, supported: text, mermaid, chart", format)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().StringP("format", "f", "text", "Output format: 'text', 'mermaid' or 'chart'")
}

// simulate runs a script against a fresh instance of the named visualizer.
func simulate(cmd *cobra.Command, cfg *config.Config, algorithm, script string) (mcp.SimulateResponse, error) {
	ops, err := mcp.ParseOperations(script)
	if err != nil {
		return mcp.SimulateResponse{}, err
	}

	reg := newRegistry(cfg)
	if _, ok := reg.Resolve(algorithm); !ok {
		return mcp.SimulateResponse{}, fmt.Errorf("unknown algorithm %q (see 'algoviz list')", algorithm)
	}
	srv := mcp.NewServer(reg, mcp.WithAlgorithmOptions(cfg.Algorithms), mcp.WithLogger(newLogger(cfg)))
	return srv.Simulate(cmd.Context(), algorithm, ops)
}
