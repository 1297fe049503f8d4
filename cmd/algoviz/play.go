package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/aretw0/algoviz/internal/presentation/tui"
)

var playCmd = &cobra.Command{
	Use:   "play <algorithm> <operations>",
	Short: "Step through the frames of a simulation interactively",
	Long: `Runs the operations like 'simulate' and opens a terminal player over the
recorded frames. Space plays or pauses, the arrow keys step, q quits.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isTerminal() {
			return fmt.Errorf("play needs an interactive terminal, use 'algoviz simulate' instead")
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		delay, _ := cmd.Flags().GetDuration("delay")

		resp, err := simulate(cmd, cfg, args[0], args[1])
		if err != nil {
			return err
		}

		player := tui.NewPlayer(resp.Algorithm, resp.Frames, resp.Dropped, delay)
		_, err = tea.NewProgram(player, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().Duration("delay", tui.DefaultPlayDelay, "Time between frames while playing")
}
