package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathwhiz/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota
	MascotCelebrating               // the last game set a high score
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ +−× │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ +−× │
└─╥═╥─┘
  ╚═╝`

// RenderMascot returns the mascot art for variant.
func RenderMascot(variant MascotVariant) string {
	if variant == MascotCelebrating {
		return lipgloss.NewStyle().Foreground(theme.Secondary).Render(mascotCelebrating)
	}
	return lipgloss.NewStyle().Foreground(theme.Primary).Render(mascotIdle)
}
