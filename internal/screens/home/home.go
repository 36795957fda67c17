// Package home is the start screen.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathwhiz/internal/router"
	"github.com/abhisek/mathwhiz/internal/screen"
	"github.com/abhisek/mathwhiz/internal/screens"
	"github.com/abhisek/mathwhiz/internal/screens/game"
	"github.com/abhisek/mathwhiz/internal/screens/prefs"
	"github.com/abhisek/mathwhiz/internal/screens/stats"
	"github.com/abhisek/mathwhiz/internal/ui/components"
	"github.com/abhisek/mathwhiz/internal/ui/layout"
	"github.com/abhisek/mathwhiz/internal/ui/theme"
)

// HomeScreen shows the current level, its high score and the main menu.
type HomeScreen struct {
	deps      *screens.Deps
	menu      components.Menu
	highScore int
	mascot    MascotVariant
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps *screens.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "Play", Action: push(func() screen.Screen { return game.New(deps) })},
		{Label: "Settings", Action: push(func() screen.Screen { return prefs.New(deps) })},
		{Label: "Stats", Action: push(func() screen.Screen { return stats.New(deps) })},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	})
	h.refresh()
	return h
}

func push(build func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return router.PushScreenMsg{Screen: build()} }
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume reloads the high score after a game or a settings change.
func (h *HomeScreen) Resume() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) refresh() {
	h.highScore = h.deps.HighScore(context.Background())
	h.mascot = MascotIdle
	if h.deps.Tracker.NewHighScore() {
		h.mascot = MascotCelebrating
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	tier := h.deps.Tier()
	compact := layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight)

	var sections []string
	sections = append(sections, layout.Line(theme.Title, "M A T H W H I Z", width))
	if !compact {
		sections = append(sections, layout.Center(RenderMascot(h.mascot), width))
	}
	sections = append(sections,
		layout.Line(theme.Subtitle, fmt.Sprintf("Level: %s (%s)", tier, tier.Description()), width)+"\n"+
			layout.Line(theme.Body, fmt.Sprintf("★ High score: %d", h.highScore), width))
	sections = append(sections, layout.Center(h.menu.View(), width))

	return "\n" + strings.Join(sections, "\n\n")
}

func (h *HomeScreen) Title() string {
	return "Home"
}
