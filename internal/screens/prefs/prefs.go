// Package prefs is the settings screen.
package prefs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathwhiz/internal/logging"
	"github.com/abhisek/mathwhiz/internal/problemgen"
	"github.com/abhisek/mathwhiz/internal/screen"
	"github.com/abhisek/mathwhiz/internal/screens"
	"github.com/abhisek/mathwhiz/internal/settings"
	"github.com/abhisek/mathwhiz/internal/ui/components"
	"github.com/abhisek/mathwhiz/internal/ui/layout"
	"github.com/abhisek/mathwhiz/internal/ui/theme"
)

const (
	itemTier = iota
	itemSound
	itemMusic
	itemLength
	itemReset
)

// PrefsScreen edits the stored preferences. Every change is saved at once.
type PrefsScreen struct {
	deps       *screens.Deps
	menu       components.Menu
	confirming bool
	status     string
	failed     bool
}

var _ screen.Screen = (*PrefsScreen)(nil)
var _ screen.KeyHintProvider = (*PrefsScreen)(nil)
var _ screen.EscHandler = (*PrefsScreen)(nil)

// New creates the settings screen.
func New(deps *screens.Deps) *PrefsScreen {
	s := &PrefsScreen{deps: deps}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Level", Action: s.do(s.cycleTier)},
		{Label: "Sound", Action: s.do(func(ctx context.Context) error {
			return deps.Prefs.ToggleSound(ctx, deps.KV)
		})},
		{Label: "Music", Action: s.do(func(ctx context.Context) error {
			return deps.Prefs.ToggleMusic(ctx, deps.KV)
		})},
		{Label: "Questions", Action: s.do(func(ctx context.Context) error {
			if err := deps.Prefs.CycleSessionLength(ctx, deps.KV); err != nil {
				return err
			}
			deps.LengthOverride = nil
			return nil
		})},
		{Label: "Reset Progress", Action: func() tea.Cmd {
			s.confirming = true
			return nil
		}},
	})
	s.refresh()
	return s
}

func (s *PrefsScreen) Init() tea.Cmd { return nil }

func (s *PrefsScreen) Title() string { return "Settings" }

// HandlesEsc is true while the reset confirmation is up, so esc answers No
// instead of leaving the screen.
func (s *PrefsScreen) HandlesEsc() bool { return s.confirming }

func (s *PrefsScreen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return components.KeyHints(components.Keys.Yes, components.Keys.No)
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Change"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *PrefsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	if s.confirming {
		switch {
		case key.Matches(kmsg, components.Keys.Yes):
			s.confirming = false
			s.reset()
		case key.Matches(kmsg, components.Keys.No):
			s.confirming = false
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

// do wraps a persisting change as a menu action.
func (s *PrefsScreen) do(change func(ctx context.Context) error) func() tea.Cmd {
	return func() tea.Cmd {
		ctx := context.Background()
		if err := change(ctx); err != nil {
			slog.WarnContext(ctx, "Failed to save setting", logging.ErrAttr(err))
			s.status, s.failed = "Could not save: "+err.Error(), true
		} else {
			s.status, s.failed = "Saved", false
		}
		s.refresh()
		return nil
	}
}

func (s *PrefsScreen) cycleTier(ctx context.Context) error {
	tiers := problemgen.AllTiers
	next := tiers[0]
	for i, t := range tiers {
		if t == s.deps.Tier() {
			next = tiers[(i+1)%len(tiers)]
			break
		}
	}
	if err := s.deps.Prefs.SetTier(ctx, s.deps.KV, next); err != nil {
		return err
	}
	// A tier chosen here replaces a one-off override for the rest of the run.
	s.deps.TierOverride = nil
	return nil
}

func (s *PrefsScreen) reset() {
	ctx := context.Background()
	if err := settings.ResetProgress(ctx, s.deps.KV, s.deps.Tracker); err != nil {
		slog.WarnContext(ctx, "Failed to reset progress", logging.ErrAttr(err))
		s.status, s.failed = "Could not reset: "+err.Error(), true
		return
	}
	s.status, s.failed = "All high scores cleared", false
}

func (s *PrefsScreen) refresh() {
	p := s.deps.Prefs
	s.menu.SetDetail(itemTier, fmt.Sprintf("%s · %s", s.deps.Tier(), s.deps.Tier().Description()))
	s.menu.SetDetail(itemSound, onOff(p.SoundEnabled))
	s.menu.SetDetail(itemMusic, onOff(p.MusicEnabled))
	s.menu.SetDetail(itemLength, LengthLabel(s.deps.SessionLength()))
}

func onOff(b bool) string {
	if b {
		return "On"
	}
	return "Off"
}

// LengthLabel describes a session length.
func LengthLabel(n int) string {
	if n <= 0 {
		return "Unlimited"
	}
	return fmt.Sprintf("%d per game", n)
}

func (s *PrefsScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Line(theme.Title, "Settings", width))
	b.WriteString("\n\n")

	if s.confirming {
		b.WriteString(layout.Line(theme.Incorrect, "Reset all high scores?", width))
		b.WriteString("\n")
		b.WriteString(layout.Line(theme.Hint, "This cannot be undone. Your settings are kept.", width))
		b.WriteString("\n\n")
		b.WriteString(layout.Line(theme.Body, "[Y] Yes, reset    [N] No", width))
		return b.String()
	}

	b.WriteString(layout.Center(s.menu.View(), width))
	if s.status != "" {
		style := theme.Correct
		if s.failed {
			style = theme.Incorrect
		}
		b.WriteString("\n")
		b.WriteString(layout.Line(style, s.status, width))
	}
	return b.String()
}
