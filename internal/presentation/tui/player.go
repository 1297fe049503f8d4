package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/algoviz/pkg/domain"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	captionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	cellStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("242")).Padding(0, 1)
	hotStyle     = cellStyle.BorderForeground(lipgloss.Color("220")).Foreground(lipgloss.Color("220")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

// DefaultPlayDelay is the time between frames while playing.
const DefaultPlayDelay = 400 * time.Millisecond

type tickMsg time.Time

// Player steps through a recorded frame sequence in the terminal.
type Player struct {
	title   string
	frames  []domain.Frame
	dropped []string
	cursor  int
	playing bool
	delay   time.Duration
	width   int
}

// NewPlayer builds a player positioned on the first frame, paused.
func NewPlayer(title string, frames []domain.Frame, dropped []string, delay time.Duration) Player {
	if delay <= 0 {
		delay = DefaultPlayDelay
	}
	return Player{
		title:   title,
		frames:  frames,
		dropped: dropped,
		delay:   delay,
		width:   80,
	}
}

// Cursor is the index of the frame on screen.
func (p Player) Cursor() int { return p.cursor }

// Playing reports whether the player advances on its own.
func (p Player) Playing() bool { return p.playing }

func (p Player) tick() tea.Cmd {
	return tea.Tick(p.delay, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (p Player) last() int {
	if len(p.frames) == 0 {
		return 0
	}
	return len(p.frames) - 1
}

func (p Player) Init() tea.Cmd { return nil }

func (p Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return p.handleKey(msg)
	case tea.WindowSizeMsg:
		p.width = msg.Width
		return p, nil
	case tickMsg:
		if !p.playing {
			return p, nil
		}
		if p.cursor >= p.last() {
			p.playing = false
			return p, nil
		}
		p.cursor++
		return p, p.tick()
	}
	return p, nil
}

func (p Player) handleKey(msg tea.KeyMsg) (Player, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return p, tea.Quit
	case " ", "p":
		p.playing = !p.playing
		if p.playing {
			if p.cursor >= p.last() {
				p.cursor = 0
			}
			return p, p.tick()
		}
	case "right", "l":
		p.playing = false
		if p.cursor < p.last() {
			p.cursor++
		}
	case "left", "h":
		p.playing = false
		if p.cursor > 0 {
			p.cursor--
		}
	case "home", "g":
		p.playing = false
		p.cursor = 0
	case "end", "G":
		p.playing = false
		p.cursor = p.last()
	}
	return p, nil
}

func (p Player) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(p.title))
	b.WriteString("\n\n")

	if len(p.frames) == 0 {
		b.WriteString(dimStyle.Render("no frames"))
		b.WriteString("\n")
	} else {
		frame := p.frames[p.cursor]
		fmt.Fprintf(&b, "%s %s\n", dimStyle.Render(fmt.Sprintf("%d/%d", p.cursor+1, len(p.frames))), captionStyle.Render(frame.Caption))
		b.WriteString(renderCells(frame, p.width))
		b.WriteString("\n")
	}

	for _, d := range p.dropped {
		b.WriteString(warnStyle.Render("dropped " + d))
		b.WriteString("\n")
	}

	state := "paused"
	if p.playing {
		state = "playing"
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(state + "  space play/pause  ←/→ step  g/G first/last  q quit"))
	return b.String()
}

// renderCells draws the frame's items as boxed cells, wrapping rows at width.
func renderCells(frame domain.Frame, width int) string {
	hot := make(map[int]bool, len(frame.Highlight))
	for _, i := range frame.Highlight {
		hot[i] = true
	}

	var rows []string
	var row []string
	used := 0
	for i, item := range frame.Items {
		style := cellStyle
		if hot[i] {
			style = hotStyle
		}
		cell := style.Render(item)
		w := lipgloss.Width(cell)
		if used > 0 && used+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, used = nil, 0
		}
		row = append(row, cell)
		used += w
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
