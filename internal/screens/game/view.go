package game

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathwhiz/internal/session"
	"github.com/abhisek/mathwhiz/internal/ui/components"
	"github.com/abhisek/mathwhiz/internal/ui/layout"
	"github.com/abhisek/mathwhiz/internal/ui/theme"
)

func (g *GameScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(g.renderProgress(width))
	b.WriteString("\n\n")

	b.WriteString(layout.Line(theme.Question, g.puzzle.Question, width))
	b.WriteString("\n\n")

	cell := min(20, max(8, (width-8)/2))
	b.WriteString(layout.Center(g.grid.View(cell), width))
	b.WriteString("\n\n")

	if g.phase == phaseFeedback {
		b.WriteString(g.renderFeedback(width))
	} else {
		b.WriteString(g.renderHint(width))
	}
	return b.String()
}

func (g *GameScreen) renderProgress(width int) string {
	answered := g.deps.Tracker.Stats().Answered()
	if g.sess.Length > 0 {
		bar := components.ProgressBar{Done: answered, Total: g.sess.Length, Width: min(40, width-8)}
		return layout.Center(bar.View(), width)
	}
	return layout.Line(theme.Hint, fmt.Sprintf("Answered: %d", answered), width)
}

func (g *GameScreen) renderFeedback(width int) string {
	if g.lastCorrect {
		return layout.Line(theme.Correct, fmt.Sprintf("Correct! +%d", session.PointsCorrect), width)
	}
	return layout.Line(theme.Incorrect,
		fmt.Sprintf("Oops! It was %d (-%d)", g.puzzle.CorrectAnswer, session.PenaltyWrong), width)
}

func (g *GameScreen) renderHint(width int) string {
	switch {
	case g.hintLoading:
		return layout.Line(theme.Hint, g.spinner.View()+" Thinking...", width)
	case g.hintText != "":
		card := theme.HintCard.Width(min(60, width-4)).Render("💡 " + g.hintText)
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
	default:
		return layout.Line(theme.Hint, "Stuck? Press H for a hint.", width)
	}
}
