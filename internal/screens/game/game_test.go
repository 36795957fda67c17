package game

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathwhiz/internal/hints"
	"github.com/abhisek/mathwhiz/internal/llm"
	"github.com/abhisek/mathwhiz/internal/problemgen"
	"github.com/abhisek/mathwhiz/internal/router"
	"github.com/abhisek/mathwhiz/internal/screens"
	"github.com/abhisek/mathwhiz/internal/screens/result"
	"github.com/abhisek/mathwhiz/internal/session"
	"github.com/abhisek/mathwhiz/internal/store"
	"github.com/abhisek/mathwhiz/internal/ui/components"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testDeps(t *testing.T) *screens.Deps {
	t.Helper()
	gen := problemgen.New(problemgen.WithRand(rand.New(rand.NewPCG(7, 11))))
	d := screens.NewDeps(context.Background(), store.NewMemoryKV(), gen)
	d.FeedbackDelay = time.Millisecond
	d.Prefs.SoundEnabled = false
	return d
}

func startGame(t *testing.T, d *screens.Deps) *GameScreen {
	t.Helper()
	g := New(d)
	g.Init()
	t.Cleanup(g.Close)
	return g
}

// pick answers the current puzzle by pressing the option's number key.
func pick(t *testing.T, g *GameScreen, correct bool) tea.Cmd {
	t.Helper()
	idx := g.puzzle.CorrectIndex()
	if !correct {
		idx = (idx + 1) % problemgen.OptionCount
	}
	_, cmd := g.Update(keyPress(rune('1' + idx)))
	require.NotNil(t, cmd)
	picked, ok := cmd().(components.PickedMsg)
	require.True(t, ok)

	_, cmd = g.Update(picked)
	return cmd
}

func TestGame_CorrectAnswer(t *testing.T) {
	g := startGame(t, testDeps(t))

	cmd := pick(t, g, true)
	require.NotNil(t, cmd)

	assert.Equal(t, phaseFeedback, g.phase)
	assert.True(t, g.lastCorrect)
	score, high := g.Status()
	assert.Equal(t, 10, score)
	assert.Equal(t, 10, high)
	assert.Contains(t, g.View(80, 20), "Correct!")
}

func TestGame_InputIgnoredDuringFeedback(t *testing.T) {
	g := startGame(t, testDeps(t))
	pick(t, g, true)

	_, cmd := g.Update(keyPress('1'))
	assert.Nil(t, cmd)

	_, cmd = g.Update(components.PickedMsg{Index: 0, Value: g.puzzle.Options[0]})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, g.deps.Tracker.Stats().Answered())
}

func TestGame_FeedbackAdvances(t *testing.T) {
	g := startGame(t, testDeps(t))
	first := g.puzzle.ID

	cmd := pick(t, g, false)
	msg := cmd()
	done, ok := msg.(feedbackDoneMsg)
	require.True(t, ok, "sound off: only the feedback timer, got %T", msg)

	_, cmd = g.Update(done)
	assert.Nil(t, cmd)
	assert.Equal(t, phaseQuestion, g.phase)
	assert.NotEqual(t, first, g.puzzle.ID)

	score, _ := g.Status()
	assert.Equal(t, 0, score, "score floors at zero")
}

func TestGame_StaleFeedbackTimerIgnored(t *testing.T) {
	g := startGame(t, testDeps(t))
	pick(t, g, true)

	id := g.puzzle.ID
	g.Update(feedbackDoneMsg{Seq: g.feedbackSeq - 1})
	assert.Equal(t, phaseFeedback, g.phase)
	assert.Equal(t, id, g.puzzle.ID)
}

func TestGame_WrongAnswerRingsBellWhenSoundOn(t *testing.T) {
	d := testDeps(t)
	d.Prefs.SoundEnabled = true
	g := startGame(t, d)

	cmd := pick(t, g, false)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	assert.Len(t, batch, 2)
}

func TestGame_EndsAfterSessionLength(t *testing.T) {
	d := testDeps(t)
	length := 2
	d.LengthOverride = &length
	g := startGame(t, d)

	for i := 0; i < length; i++ {
		pick(t, g, true)
		_, cmd := g.Update(feedbackDoneMsg{Seq: g.feedbackSeq})
		if i < length-1 {
			assert.Nil(t, cmd)
			continue
		}
		require.NotNil(t, cmd)
		replace, ok := cmd().(router.ReplaceScreenMsg)
		require.True(t, ok)
		res, ok := replace.Screen.(*result.ResultScreen)
		require.True(t, ok)

		sum := res.Summary()
		assert.Equal(t, 20, sum.Score)
		assert.Equal(t, 2, sum.Correct)
		assert.Equal(t, 100, sum.Accuracy())
		assert.True(t, sum.NewHighScore)
	}
	assert.Equal(t, phaseOver, g.phase)
}

func TestGame_EscEndsSession(t *testing.T) {
	g := startGame(t, testDeps(t))
	pick(t, g, true)

	_, cmd := g.Update(specialKey(tea.KeyEscape))
	require.NotNil(t, cmd)
	_, ok := cmd().(router.ReplaceScreenMsg)
	assert.True(t, ok)

	_, cmd = g.Update(specialKey(tea.KeyEscape))
	assert.Nil(t, cmd, "a finished game ends once")
}

func TestGame_HighScorePersistsPerTier(t *testing.T) {
	d := testDeps(t)
	hard := problemgen.TierHard
	d.TierOverride = &hard
	g := startGame(t, d)

	pick(t, g, true)

	v, ok, err := d.KV.Get(context.Background(), session.HighScoreKey(problemgen.TierHard))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "10", v)

	_, ok, _ = d.KV.Get(context.Background(), session.HighScoreKey(problemgen.TierEasy))
	assert.False(t, ok)
}

func hintService(t *testing.T, p llm.Provider) *hints.Service {
	t.Helper()
	svc, err := hints.NewService(p, hints.Config{Timeout: time.Second})
	require.NoError(t, err)
	t.Cleanup(svc.Close)
	return svc
}

func TestGame_Hint(t *testing.T) {
	d := testDeps(t)
	d.Hints = hintService(t, llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"hint":"Count on your fingers! 🖐️"}`),
	}))
	g := startGame(t, d)

	_, cmd := g.Update(keyPress('h'))
	require.NotNil(t, cmd)
	assert.True(t, g.hintLoading)
	assert.Contains(t, g.View(80, 20), "Thinking...")

	// A second press while loading does nothing.
	_, again := g.Update(keyPress('h'))
	assert.Nil(t, again)

	g.Update(fetchHint(t, g))
	assert.False(t, g.hintLoading)
	assert.Equal(t, "Count on your fingers! 🖐️", g.hintText)
}

// fetchHint runs a hint request for the current puzzle to completion.
func fetchHint(t *testing.T, g *GameScreen) tea.Msg {
	t.Helper()
	cmd := g.requestHint()
	require.NotNil(t, cmd)
	return cmd()
}

func TestGame_NoProviderHint(t *testing.T) {
	g := startGame(t, testDeps(t))

	g.Update(fetchHint(t, g))
	assert.Equal(t, hints.MsgNoProvider, g.hintText)
}

func TestGame_StaleHintDropped(t *testing.T) {
	g := startGame(t, testDeps(t))

	g.Update(hintMsg{PuzzleID: "someone-else", Result: hints.Result{Text: "late"}})
	assert.Empty(t, g.hintText)

	pick(t, g, true)
	g.Update(hintMsg{PuzzleID: g.puzzle.ID, Result: hints.Result{Text: "too late"}})
	assert.Empty(t, g.hintText, "hints arriving during feedback are dropped")
}

func TestGame_CloseCancelsHint(t *testing.T) {
	g := startGame(t, testDeps(t))
	g.requestHint()
	require.NotNil(t, g.hintCancel)

	g.Close()
	assert.Nil(t, g.hintCancel)
	assert.Error(t, g.ctx.Err())
}

func TestGame_RecordsEvents(t *testing.T) {
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	defer st.Close()

	d := testDeps(t)
	d.Events = st.EventRepo()
	g := startGame(t, d)

	pick(t, g, true)
	g.Update(feedbackDoneMsg{Seq: g.feedbackSeq})
	pick(t, g, false)
	_, cmd := g.Update(specialKey(tea.KeyEscape))
	require.NotNil(t, cmd)

	answers, err := st.EventRepo().AnswersForSession(context.Background(), g.sess.ID)
	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.True(t, answers[0].Correct)
	assert.False(t, answers[1].Correct)
	assert.Equal(t, 5, answers[1].ScoreAfter)

	sessions, err := st.EventRepo().RecentSessions(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, 5, sessions[0].Score)
	assert.Equal(t, "Easy", sessions[0].Tier)
}

func TestGame_KeyHints(t *testing.T) {
	g := startGame(t, testDeps(t))
	assert.Len(t, g.KeyHints(), 4)

	pick(t, g, true)
	assert.Len(t, g.KeyHints(), 1)
}
