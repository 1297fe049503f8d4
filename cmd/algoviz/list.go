package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/aretw0/algoviz"
	"github.com/aretw0/algoviz/internal/presentation/tui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the registered algorithms",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := algoviz.NewRegistry(nil)
		p := termenv.Ascii
		if isTerminal() {
			p = termenv.ColorProfile()
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, name := range reg.Names() {
			d, _ := reg.Describe(name)
			fmt.Fprintf(w, "%s\t%s\t%s\n", termenv.String(name).Bold().Foreground(p.Color("#818cf8")), d.Title, d.Summary)
		}
		return w.Flush()
	},
}

var describeCmd = &cobra.Command{
	Use:   "describe <algorithm>",
	Short: "Show the pseudo-code of an algorithm",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := algoviz.NewRegistry(nil)
		d, ok := reg.Describe(args[0])
		if !ok {
			return fmt.Errorf("unknown algorithm %q (see 'algoviz list')", args[0])
		}

		render := tui.NewRenderer(!isTerminal())
		out, err := render(fmt.Sprintf("# %s\n\n%s\n\n%s", d.Title, d.Summary, d.PseudoCode))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(describeCmd)
}
