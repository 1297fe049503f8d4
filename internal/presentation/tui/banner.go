package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the algoviz banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []termenv.Style{
		termenv.String("         _                   _     ").Foreground(p.Color("#818cf8")),
		termenv.String("   __ _ | | __ _  ___ __   _(_)____").Foreground(p.Color("#a78bfa")),
		termenv.String("  / _` || |/ _` |/ _ \\\\ \\ / / |_  /").Foreground(p.Color("#c084fc")),
		termenv.String(" | (_| || | (_| | (_) |\\ V /| |/ / ").Foreground(p.Color("#e879f9")),
		termenv.String("  \\__,_||_|\\__, |\\___/  \\_/ |_/___|").Foreground(p.Color("#f472b6")),
		termenv.String("           |___/  " + version).Foreground(p.Color("#fb7185")),
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	fmt.Fprintln(w)
}
