package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/algoviz"
	"github.com/aretw0/algoviz/internal/presentation/tui"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of algoviz",
	Run: func(cmd *cobra.Command, args []string) {
		version := strings.TrimSpace(algoviz.Version)
		if isTerminal() {
			tui.PrintBanner(cmd.OutOrStdout(), version)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "algoviz version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
