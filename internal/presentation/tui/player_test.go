package tui_test

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/algoviz/internal/presentation/tui"
	"github.com/aretw0/algoviz/pkg/domain"
)

func frames(n int) []domain.Frame {
	out := make([]domain.Frame, n)
	for i := range out {
		out[i] = domain.Frame{Step: i + 1, Caption: "step", Items: []string{"1", "2"}}
	}
	return out
}

func press(t *testing.T, p tui.Player, key string) (tui.Player, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	m, cmd := p.Update(msg)
	next, ok := m.(tui.Player)
	require.True(t, ok)
	return next, cmd
}

func TestPlayer_Stepping(t *testing.T) {
	p := tui.NewPlayer("BST", frames(3), nil, time.Millisecond)

	p, _ = press(t, p, "left")
	assert.Equal(t, 0, p.Cursor(), "stays on the first frame")

	p, _ = press(t, p, "right")
	p, _ = press(t, p, "right")
	p, _ = press(t, p, "right")
	assert.Equal(t, 2, p.Cursor(), "stops on the last frame")

	p, _ = press(t, p, "g")
	assert.Equal(t, 0, p.Cursor())
	p, _ = press(t, p, "G")
	assert.Equal(t, 2, p.Cursor())
}

func TestPlayer_PlayRunsToTheEnd(t *testing.T) {
	p := tui.NewPlayer("BST", frames(3), nil, time.Millisecond)

	p, cmd := press(t, p, " ")
	require.True(t, p.Playing())
	require.NotNil(t, cmd)

	for i := 0; i < 5; i++ {
		m, _ := p.Update(cmd())
		p = m.(tui.Player)
	}
	assert.Equal(t, 2, p.Cursor())
	assert.False(t, p.Playing())
}

func TestPlayer_PlayFromEndRestarts(t *testing.T) {
	p := tui.NewPlayer("BST", frames(2), nil, time.Millisecond)
	p, _ = press(t, p, "G")

	p, _ = press(t, p, "p")
	assert.True(t, p.Playing())
	assert.Equal(t, 0, p.Cursor())
}

func TestPlayer_Quit(t *testing.T) {
	p := tui.NewPlayer("BST", frames(1), nil, 0)
	_, cmd := press(t, p, "q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestPlayer_View(t *testing.T) {
	p := tui.NewPlayer("BinaryHeap", []domain.Frame{
		{Step: 1, Caption: "insert 4", Items: []string{"4", "9"}, Highlight: []int{0}},
	}, []string{"find: invalid_input"}, 0)

	view := p.View()
	assert.Contains(t, view, "BinaryHeap")
	assert.Contains(t, view, "1/1")
	assert.Contains(t, view, "insert 4")
	assert.Contains(t, view, "9")
	assert.Contains(t, view, "dropped find: invalid_input")
	assert.Contains(t, view, "paused")

	empty := tui.NewPlayer("Idle", nil, nil, 0)
	assert.Contains(t, empty.View(), "no frames")
}

func TestFormatChart(t *testing.T) {
	out, err := tui.FormatChart(domain.Frame{Caption: "sorted", Items: []string{"1", "null", "3", "7"}}, 40)
	require.NoError(t, err)
	assert.Contains(t, out, "sorted")
	assert.Contains(t, out, "7")

	_, err = tui.FormatChart(domain.Frame{Items: []string{"null", "", "NaN", "Inf"}}, 40)
	assert.ErrorIs(t, err, tui.ErrNotNumeric)
}
