package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestOptionGrid_NumberKeyPicks(t *testing.T) {
	g := NewOptionGrid([4]int{5, 7, 9, 11})

	g, cmd := g.Update(keyPress('3'))
	require.NotNil(t, cmd)
	assert.Equal(t, PickedMsg{Index: 2, Value: 9}, cmd())
	assert.Equal(t, 2, g.Focused)
}

func TestOptionGrid_ArrowNavigation(t *testing.T) {
	g := NewOptionGrid([4]int{1, 2, 3, 4})

	steps := []struct {
		key  tea.KeyPressMsg
		want int
	}{
		{specialKey(tea.KeyRight), 1},
		{specialKey(tea.KeyRight), 1},
		{specialKey(tea.KeyDown), 3},
		{specialKey(tea.KeyDown), 3},
		{specialKey(tea.KeyLeft), 2},
		{specialKey(tea.KeyUp), 0},
		{specialKey(tea.KeyUp), 0},
	}
	for _, s := range steps {
		g, _ = g.Update(s.key)
		assert.Equal(t, s.want, g.Focused)
	}

	g, _ = g.Update(specialKey(tea.KeyDown))
	_, cmd := g.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, PickedMsg{Index: 2, Value: 3}, cmd())
}

func TestOptionGrid_RevealedIgnoresInput(t *testing.T) {
	g := NewOptionGrid([4]int{1, 2, 3, 4})
	g.Reveal(0, 1)

	g, cmd := g.Update(keyPress('2'))
	assert.Nil(t, cmd)
	assert.True(t, g.Revealed())
	assert.NotEmpty(t, g.View(12))
}

func TestMenu_SkipsDisabled(t *testing.T) {
	pressed := ""
	m := NewMenu([]MenuItem{
		{Label: "Off", Disabled: true},
		{Label: "Play", Action: func() tea.Cmd { pressed = "play"; return nil }},
		{Label: "Hidden", Disabled: true},
		{Label: "Quit", Action: func() tea.Cmd { pressed = "quit"; return nil }},
	})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(specialKey(tea.KeyDown))
	assert.Equal(t, 3, m.Selected)

	m, _ = m.Update(specialKey(tea.KeyEnter))
	assert.Equal(t, "quit", pressed)

	m, _ = m.Update(keyPress('k'))
	assert.Equal(t, 1, m.Selected)
	assert.Contains(t, m.View(), "▸ Play")
}

func TestButtonRow(t *testing.T) {
	pressed := ""
	r := NewButtonRow(
		Button{Label: "Play Again", OnPress: func() tea.Cmd { pressed = "again"; return nil }},
		Button{Label: "Back Home", OnPress: func() tea.Cmd { pressed = "home"; return nil }},
	)

	r, _ = r.Update(specialKey(tea.KeyRight))
	r, _ = r.Update(specialKey(tea.KeyRight))
	assert.Equal(t, 1, r.Focused)

	_, _ = r.Update(specialKey(tea.KeyEnter))
	assert.Equal(t, "home", pressed)
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, 0.0, ProgressBar{Done: 3}.Fraction())
	assert.Equal(t, 0.5, ProgressBar{Done: 5, Total: 10}.Fraction())
	assert.Equal(t, 1.0, ProgressBar{Done: 12, Total: 10}.Fraction())
	assert.Contains(t, ProgressBar{Done: 12, Total: 10, Width: 30}.View(), "10/10")
}

func TestChoiceIndex(t *testing.T) {
	i, ok := ChoiceIndex("4")
	assert.True(t, ok)
	assert.Equal(t, 3, i)

	_, ok = ChoiceIndex("5")
	assert.False(t, ok)
}
