package components

import (
	"strconv"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathwhiz/internal/problemgen"
	"github.com/abhisek/mathwhiz/internal/ui/theme"
)

// OptionGrid shows a puzzle's four options as a 2×2 grid:
//
//	1 2
//	3 4
//
// Arrow keys move focus and enter picks it; the keys 1-4 pick directly.
// Once revealed the grid ignores input.
type OptionGrid struct {
	Options [problemgen.OptionCount]int
	Focused int

	revealed bool
	chosen   int
	correct  int
}

// PickedMsg is emitted when the player picks an option.
type PickedMsg struct {
	Index int
	Value int
}

// NewOptionGrid creates a grid for options with the first cell focused.
func NewOptionGrid(options [problemgen.OptionCount]int) OptionGrid {
	return OptionGrid{Options: options, chosen: -1, correct: -1}
}

// Reveal marks the chosen and correct cells and locks the grid.
func (g *OptionGrid) Reveal(chosen, correct int) {
	g.revealed = true
	g.chosen = chosen
	g.correct = correct
}

// Revealed reports whether the grid is locked.
func (g OptionGrid) Revealed() bool {
	return g.revealed
}

// Update handles navigation and selection.
func (g OptionGrid) Update(msg tea.Msg) (OptionGrid, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || g.revealed {
		return g, nil
	}

	switch {
	case key.Matches(kmsg, Keys.Choice):
		if i, ok := ChoiceIndex(kmsg.String()); ok {
			g.Focused = i
			return g, g.pick(i)
		}
	case key.Matches(kmsg, Keys.Select):
		return g, g.pick(g.Focused)
	case key.Matches(kmsg, Keys.Up):
		if g.Focused >= 2 {
			g.Focused -= 2
		}
	case key.Matches(kmsg, Keys.Down):
		if g.Focused < 2 {
			g.Focused += 2
		}
	case key.Matches(kmsg, Keys.Left):
		if g.Focused%2 == 1 {
			g.Focused--
		}
	case key.Matches(kmsg, Keys.Right):
		if g.Focused%2 == 0 {
			g.Focused++
		}
	}
	return g, nil
}

func (g OptionGrid) pick(i int) tea.Cmd {
	v := g.Options[i]
	return func() tea.Msg { return PickedMsg{Index: i, Value: v} }
}

// View renders the grid with cells of the given width.
func (g OptionGrid) View(cellWidth int) string {
	cells := make([]string, len(g.Options))
	for i, v := range g.Options {
		label := strconv.Itoa(i+1) + ")  " + strconv.Itoa(v)
		cells[i] = g.style(i).Width(cellWidth).Render(label)
	}
	top := lipgloss.JoinHorizontal(lipgloss.Top, cells[0], "  ", cells[1])
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, cells[2], "  ", cells[3])
	return lipgloss.JoinVertical(lipgloss.Center, top, bottom)
}

func (g OptionGrid) style(i int) lipgloss.Style {
	if g.revealed {
		switch i {
		case g.correct:
			return theme.OptionRight
		case g.chosen:
			return theme.OptionWrong
		default:
			return theme.OptionMuted
		}
	}
	if i == g.Focused {
		return theme.OptionFocused
	}
	return theme.OptionIdle
}
