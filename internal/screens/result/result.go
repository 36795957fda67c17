// Package result shows the end-of-session summary.
package result

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathwhiz/internal/router"
	"github.com/abhisek/mathwhiz/internal/screen"
	"github.com/abhisek/mathwhiz/internal/session"
	"github.com/abhisek/mathwhiz/internal/ui/components"
	"github.com/abhisek/mathwhiz/internal/ui/layout"
	"github.com/abhisek/mathwhiz/internal/ui/theme"
)

// ResultScreen displays a session summary with Play Again / Back Home.
type ResultScreen struct {
	summary session.Summary
	buttons components.ButtonRow
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates the screen. playAgain builds the game screen that replaces
// this one.
func New(summary session.Summary, playAgain func() screen.Screen) *ResultScreen {
	return &ResultScreen{
		summary: summary,
		buttons: components.NewButtonRow(
			components.Button{Label: "Play Again", OnPress: func() tea.Cmd {
				return func() tea.Msg { return router.ReplaceScreenMsg{Screen: playAgain()} }
			}},
			components.Button{Label: "Back Home", OnPress: backHome},
		),
	}
}

func backHome() tea.Cmd {
	return func() tea.Msg { return router.PopToRootMsg{} }
}

func (s *ResultScreen) Init() tea.Cmd { return nil }

func (s *ResultScreen) Title() string { return "Results" }

func (s *ResultScreen) HandlesEsc() bool { return true }

// Summary returns the summary shown.
func (s *ResultScreen) Summary() session.Summary { return s.summary }

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && key.Matches(kmsg, components.Keys.Back) {
		return s, backHome()
	}
	var cmd tea.Cmd
	s.buttons, cmd = s.buttons.Update(msg)
	return s, cmd
}

func (s *ResultScreen) View(width, height int) string {
	sum := s.summary
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(layout.Line(theme.Title, sum.Message(), width))
	b.WriteString("\n\n")

	if sum.NewHighScore {
		b.WriteString(layout.Line(theme.Correct, fmt.Sprintf("★ New high score: %d ★", sum.HighScore), width))
		b.WriteString("\n\n")
	}

	rows := []string{
		statRow("Score", fmt.Sprintf("%d", sum.Score)),
		statRow("Correct", fmt.Sprintf("%d", sum.Correct)),
		statRow("Wrong", fmt.Sprintf("%d", sum.Incorrect)),
		statRow("Accuracy", fmt.Sprintf("%d%%", sum.Accuracy())),
		statRow("Level", sum.Tier),
		statRow("Time", formatDuration(sum.Duration.Seconds())),
	}
	card := theme.Card.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	b.WriteString(layout.Center(card, width))
	b.WriteString("\n\n")

	b.WriteString(layout.Center(s.buttons.View(), width))
	return b.String()
}

func statRow(label, value string) string {
	return theme.Hint.Width(10).Render(label) + theme.Body.Bold(true).Render(value)
}

func formatDuration(secs float64) string {
	n := int(secs)
	return fmt.Sprintf("%d:%02d", n/60, n%60)
}
