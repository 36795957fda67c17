package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathwhiz/internal/ui/theme"
)

// ProgressBar shows how far through a fixed-length session the player is.
type ProgressBar struct {
	Done  int
	Total int
	Width int
}

// Fraction is Done/Total clamped to [0, 1]. A zero Total is 0.
func (p ProgressBar) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return min(1, max(0, float64(p.Done)/float64(p.Total)))
}

// View renders the bar followed by "done/total".
func (p ProgressBar) View() string {
	count := fmt.Sprintf("  %d/%d", min(p.Done, p.Total), p.Total)
	barWidth := max(4, p.Width-len(count))

	filled := int(float64(barWidth) * p.Fraction())
	empty := barWidth - filled

	return lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", empty)) +
		theme.Hint.Render(count)
}
