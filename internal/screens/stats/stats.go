// Package stats shows high scores per level and the most recent sessions.
package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathwhiz/internal/problemgen"
	"github.com/abhisek/mathwhiz/internal/screen"
	"github.com/abhisek/mathwhiz/internal/screens"
	"github.com/abhisek/mathwhiz/internal/session"
	"github.com/abhisek/mathwhiz/internal/store"
	"github.com/abhisek/mathwhiz/internal/ui/layout"
	"github.com/abhisek/mathwhiz/internal/ui/theme"
)

// RecentLimit is how many sessions the screen lists.
const RecentLimit = 8

type statsLoadedMsg struct {
	HighScores map[problemgen.Tier]int
	Sessions   []store.SessionEvent
	Err        error
}

// StatsScreen displays stored high scores and session history.
type StatsScreen struct {
	deps       *screens.Deps
	highScores map[problemgen.Tier]int
	sessions   []store.SessionEvent
	loaded     bool
	errMsg     string
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a new StatsScreen.
func New(deps *screens.Deps) *StatsScreen {
	return &StatsScreen{deps: deps}
}

func (s *StatsScreen) Init() tea.Cmd {
	kv, events := s.deps.KV, s.deps.Events
	return func() tea.Msg {
		ctx := context.Background()
		msg := statsLoadedMsg{HighScores: session.HighScores(ctx, kv)}
		if events != nil {
			msg.Sessions, msg.Err = events.RecentSessions(ctx, RecentLimit)
		}
		return msg
	}
}

func (s *StatsScreen) Title() string {
	return "Stats"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		s.highScores = msg.HighScores
		s.sessions = msg.Sessions
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		s.loaded = true
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if !s.loaded {
		return layout.Line(theme.Hint, "\n\nLoading...", width)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Line(theme.Title, "High Scores", width))
	b.WriteString("\n\n")
	for _, tier := range problemgen.AllTiers {
		line := fmt.Sprintf("%-8s %5d", tier, s.highScores[tier])
		b.WriteString(layout.Line(theme.Body, line, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(layout.Line(theme.Title, "Recent Games", width))
	b.WriteString("\n\n")

	switch {
	case s.errMsg != "":
		b.WriteString(layout.Line(theme.Incorrect, "Could not load history: "+s.errMsg, width))
	case len(s.sessions) == 0:
		b.WriteString(layout.Line(theme.Hint, "No games yet. Go play one!", width))
	default:
		for _, ev := range s.sessions {
			b.WriteString(layout.Line(theme.Body, FormatSession(ev), width))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// FormatSession renders one history line.
func FormatSession(ev store.SessionEvent) string {
	acc := session.Accuracy(ev.CorrectCount, ev.IncorrectCount)
	return fmt.Sprintf("%s  %-6s  score %4d  %d/%d right (%d%%)",
		ev.Timestamp.Local().Format("Jan 02 15:04"), ev.Tier, ev.Score,
		ev.CorrectCount, ev.CorrectCount+ev.IncorrectCount, acc)
}
