package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"github.com/aretw0/algoviz/pkg/domain"
)

// NewRenderer returns a function that renders markdown using glamour.
// With plain set, markdown is returned unchanged (for pipes and files).
func NewRenderer(plain bool) func(string) (string, error) {
	if plain {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// FormatFrame renders one animation frame as a single line.
// Highlighted items are drawn in reverse video unless plain is set.
func FormatFrame(frame domain.Frame, plain bool) string {
	p := termenv.ColorProfile()
	if plain {
		p = termenv.Ascii
	}

	highlighted := make(map[int]bool, len(frame.Highlight))
	for _, i := range frame.Highlight {
		highlighted[i] = true
	}

	cells := make([]string, len(frame.Items))
	for i, item := range frame.Items {
		switch {
		case highlighted[i] && plain:
			cells[i] = "[" + item + "]"
		case highlighted[i]:
			cells[i] = termenv.String(item).Reverse().Foreground(p.Color("#fbc02d")).String()
		default:
			cells[i] = item
		}
	}

	step := termenv.String(fmt.Sprintf("%3d", frame.Step)).Faint()
	if plain {
		return fmt.Sprintf("%3d  %-32s %s", frame.Step, frame.Caption, strings.Join(cells, " "))
	}
	return fmt.Sprintf("%s  %-32s %s", step, frame.Caption, strings.Join(cells, " "))
}
