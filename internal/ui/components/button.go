package components

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathwhiz/internal/ui/theme"
)

// Button is a labelled action.
type Button struct {
	Label   string
	OnPress func() tea.Cmd
}

// ButtonRow lays buttons out horizontally with one focused.
type ButtonRow struct {
	Buttons []Button
	Focused int
}

// NewButtonRow creates a row with the first button focused.
func NewButtonRow(buttons ...Button) ButtonRow {
	return ButtonRow{Buttons: buttons}
}

// Update moves focus with left/right (or up/down) and presses on enter.
func (r ButtonRow) Update(msg tea.Msg) (ButtonRow, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(r.Buttons) == 0 {
		return r, nil
	}

	switch {
	case key.Matches(kmsg, Keys.Left, Keys.Up):
		if r.Focused > 0 {
			r.Focused--
		}
	case key.Matches(kmsg, Keys.Right, Keys.Down):
		if r.Focused < len(r.Buttons)-1 {
			r.Focused++
		}
	case key.Matches(kmsg, Keys.Select):
		if b := r.Buttons[r.Focused]; b.OnPress != nil {
			return r, b.OnPress()
		}
	}
	return r, nil
}

// View renders the row.
func (r ButtonRow) View() string {
	parts := make([]string, len(r.Buttons))
	for i, b := range r.Buttons {
		if i == r.Focused {
			parts[i] = theme.ButtonActive.Render("▸ " + b.Label)
		} else {
			parts[i] = theme.ButtonInactive.Render("  " + b.Label)
		}
	}
	return strings.Join(parts, "   ")
}
