// Package game is the play screen: one puzzle at a time, a 2×2 grid of
// options, a running score and on-demand hints.
package game

import (
	"context"
	"log/slog"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathwhiz/internal/logging"
	"github.com/abhisek/mathwhiz/internal/problemgen"
	"github.com/abhisek/mathwhiz/internal/router"
	"github.com/abhisek/mathwhiz/internal/screen"
	"github.com/abhisek/mathwhiz/internal/screens"
	"github.com/abhisek/mathwhiz/internal/screens/result"
	"github.com/abhisek/mathwhiz/internal/session"
	"github.com/abhisek/mathwhiz/internal/store"
	"github.com/abhisek/mathwhiz/internal/ui/components"
	"github.com/abhisek/mathwhiz/internal/ui/layout"
)

type phase int

const (
	phaseQuestion phase = iota
	phaseFeedback
	phaseOver
)

// GameScreen implements screen.Screen for a play session.
type GameScreen struct {
	deps *screens.Deps
	sess session.Session

	// ctx lives as long as the screen; Close cancels it.
	ctx    context.Context
	cancel context.CancelFunc

	puzzle  problemgen.Puzzle
	grid    components.OptionGrid
	shownAt time.Time

	phase       phase
	lastCorrect bool
	feedbackSeq int

	hintText    string
	hintLoading bool
	hintCancel  context.CancelFunc
	spinner     spinner.Model
}

var (
	_ screen.Screen          = (*GameScreen)(nil)
	_ screen.KeyHintProvider = (*GameScreen)(nil)
	_ screen.Closer          = (*GameScreen)(nil)
	_ screen.StatusProvider  = (*GameScreen)(nil)
	_ screen.EscHandler      = (*GameScreen)(nil)
)

// New starts a session at the deps' tier and length and deals the first
// puzzle.
func New(deps *screens.Deps) *GameScreen {
	sess := session.New(deps.Tier(), deps.SessionLength())
	sess.Started = deps.Clock()

	ctx, cancel := context.WithCancel(logging.WithSessionID(context.Background(), sess.ID))

	if deps.Tracker.Tier() != sess.Tier {
		deps.Tracker.LoadHighScore(ctx, sess.Tier)
	}
	deps.Tracker.Reset()

	g := &GameScreen{
		deps:    deps,
		sess:    sess,
		ctx:     ctx,
		cancel:  cancel,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	g.deal()
	return g
}

func (g *GameScreen) Init() tea.Cmd {
	slog.InfoContext(g.ctx, "Session started", "tier", g.sess.Tier.String(), "length", g.sess.Length)
	g.appendSessionEvent(store.SessionStart)
	return nil
}

func (g *GameScreen) Title() string {
	return g.sess.Tier.String() + " Game"
}

func (g *GameScreen) HandlesEsc() bool { return true }

// Status reports the live score for the header.
func (g *GameScreen) Status() (int, int) {
	st := g.deps.Tracker.Stats()
	return st.Score, st.HighScore
}

func (g *GameScreen) KeyHints() []layout.KeyHint {
	end := layout.KeyHint{Key: "Esc", Description: "End game"}
	if g.phase == phaseFeedback {
		return []layout.KeyHint{end}
	}
	return append(components.KeyHints(components.Keys.Choice, components.Keys.Select, components.Keys.Hint), end)
}

// Close cancels any in-flight hint request.
func (g *GameScreen) Close() {
	g.cancelHint()
	g.cancel()
}

func (g *GameScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.PickedMsg:
		return g, g.answer(msg)

	case feedbackDoneMsg:
		if msg.Seq != g.feedbackSeq || g.phase != phaseFeedback {
			return g, nil
		}
		if g.sess.Complete(g.deps.Tracker.Stats().Answered()) {
			return g, g.end()
		}
		g.deal()
		return g, nil

	case hintMsg:
		if msg.PuzzleID != g.puzzle.ID || g.phase != phaseQuestion {
			slog.DebugContext(g.ctx, "Dropping stale hint", "puzzle_id", msg.PuzzleID)
			return g, nil
		}
		g.hintLoading = false
		g.hintCancel = nil
		g.hintText = msg.Result.Text
		return g, nil

	case spinner.TickMsg:
		if !g.hintLoading {
			return g, nil
		}
		var cmd tea.Cmd
		g.spinner, cmd = g.spinner.Update(msg)
		return g, cmd

	case tea.KeyPressMsg:
		return g, g.handleKey(msg)
	}
	return g, nil
}

func (g *GameScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if key.Matches(msg, components.Keys.Back) {
		return g.end()
	}
	if g.phase != phaseQuestion {
		return nil
	}
	if key.Matches(msg, components.Keys.Hint) {
		if g.hintLoading || g.hintText != "" {
			return nil
		}
		return tea.Batch(g.spinner.Tick, g.requestHint())
	}

	var cmd tea.Cmd
	g.grid, cmd = g.grid.Update(msg)
	return cmd
}

// deal shows a fresh puzzle and clears the previous puzzle's hint.
func (g *GameScreen) deal() {
	g.cancelHint()
	g.hintText = ""
	g.puzzle = g.deps.Generator.Generate(g.sess.Tier)
	g.grid = components.NewOptionGrid(g.puzzle.Options)
	g.shownAt = g.deps.Clock()
	g.phase = phaseQuestion

	slog.Log(g.ctx, logging.LevelTrace, "Puzzle dealt", "puzzle_id", g.puzzle.ID, "question", g.puzzle.Question)
}

// answer judges a pick. Picks outside the question phase are dropped so a
// double press cannot score twice.
func (g *GameScreen) answer(pick components.PickedMsg) tea.Cmd {
	if g.phase != phaseQuestion {
		return nil
	}

	correct := g.puzzle.Check(pick.Value)
	stats := g.deps.Tracker.RecordAnswer(g.ctx, correct)
	g.grid.Reveal(pick.Index, g.puzzle.CorrectIndex())
	g.lastCorrect = correct
	g.phase = phaseFeedback
	g.feedbackSeq++
	g.cancelHint()

	if g.deps.Events != nil {
		err := g.deps.Events.AppendAnswerEvent(g.ctx, store.AnswerEventData{
			SessionID:     g.sess.ID,
			PuzzleID:      g.puzzle.ID,
			Tier:          g.sess.Tier.String(),
			Question:      g.puzzle.Question,
			Chosen:        pick.Value,
			CorrectAnswer: g.puzzle.CorrectAnswer,
			Correct:       correct,
			ScoreAfter:    stats.Score,
			TimeMs:        g.deps.Clock().Sub(g.shownAt).Milliseconds(),
		})
		if err != nil {
			slog.WarnContext(g.ctx, "Failed to record answer", logging.ErrAttr(err))
		}
	}

	seq := g.feedbackSeq
	cmds := []tea.Cmd{
		tea.Tick(g.feedbackDelay(), func(time.Time) tea.Msg { return feedbackDoneMsg{Seq: seq} }),
	}
	if !correct && g.deps.Prefs.SoundEnabled {
		cmds = append(cmds, tea.Raw("\a"))
	}
	return tea.Batch(cmds...)
}

// end closes the session and replaces this screen with the result screen.
func (g *GameScreen) end() tea.Cmd {
	if g.phase == phaseOver {
		return nil
	}
	g.phase = phaseOver
	g.cancelHint()

	summary := session.Summarize(g.sess, g.deps.Tracker, g.deps.Clock())
	g.appendSessionEvent(store.SessionEnd)
	slog.InfoContext(g.ctx, "Session ended",
		"score", summary.Score, "correct", summary.Correct, "incorrect", summary.Incorrect,
		"new_high_score", summary.NewHighScore)

	deps := g.deps
	next := result.New(summary, func() screen.Screen { return New(deps) })
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (g *GameScreen) requestHint() tea.Cmd {
	ctx, cancel := context.WithCancel(g.ctx)
	g.hintCancel = cancel
	g.hintLoading = true

	svc := g.deps.Hints
	sessionID, puzzleID, question := g.sess.ID, g.puzzle.ID, g.puzzle.Question
	return func() tea.Msg {
		defer cancel()
		return hintMsg{PuzzleID: puzzleID, Result: svc.Lookup(ctx, sessionID, puzzleID, question)}
	}
}

func (g *GameScreen) cancelHint() {
	if g.hintCancel != nil {
		g.hintCancel()
		g.hintCancel = nil
	}
	g.hintLoading = false
}

func (g *GameScreen) feedbackDelay() time.Duration {
	if g.deps.FeedbackDelay > 0 {
		return g.deps.FeedbackDelay
	}
	return screens.DefaultFeedbackDelay
}

func (g *GameScreen) appendSessionEvent(action string) {
	if g.deps.Events == nil {
		return
	}
	st := g.deps.Tracker.Stats()
	data := store.SessionEventData{
		SessionID:      g.sess.ID,
		Action:         action,
		Tier:           g.sess.Tier.String(),
		Score:          st.Score,
		CorrectCount:   st.CorrectCount,
		IncorrectCount: st.IncorrectCount,
		HighScore:      st.HighScore,
	}
	if action == store.SessionEnd {
		data.DurationSecs = int(g.sess.Elapsed(g.deps.Clock()).Seconds())
	}
	// Session bookkeeping must survive the screen being closed.
	if err := g.deps.Events.AppendSessionEvent(context.WithoutCancel(g.ctx), data); err != nil {
		slog.WarnContext(g.ctx, "Failed to record session event", "action", action, logging.ErrAttr(err))
	}
}
