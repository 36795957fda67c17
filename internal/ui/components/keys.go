package components

import (
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/mathwhiz/internal/ui/layout"
)

// KeyMap holds the bindings shared by every screen.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
	Back   key.Binding
	Hint   key.Binding
	Choice key.Binding
	Yes    key.Binding
	No     key.Binding
}

// Keys is the application key map.
var Keys = KeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "Up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "Down")),
	Left:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "Left")),
	Right:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "Right")),
	Select: key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("Enter", "Select")),
	Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Back")),
	Hint:   key.NewBinding(key.WithKeys("h", "H"), key.WithHelp("H", "Hint")),
	Choice: key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "Answer")),
	Yes:    key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("Y", "Yes")),
	No:     key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("N", "No")),
}

// KeyHints turns binding help into footer hints.
func KeyHints(bindings ...key.Binding) []layout.KeyHint {
	hints := make([]layout.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		hints = append(hints, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return hints
}

// ChoiceIndex maps the keys 1-4 to a zero-based option index.
func ChoiceIndex(k string) (int, bool) {
	if len(k) == 1 && k[0] >= '1' && k[0] <= '4' {
		return int(k[0] - '1'), true
	}
	return 0, false
}
