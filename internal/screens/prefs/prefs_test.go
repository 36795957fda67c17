package prefs

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathwhiz/internal/problemgen"
	"github.com/abhisek/mathwhiz/internal/screens"
	"github.com/abhisek/mathwhiz/internal/session"
	"github.com/abhisek/mathwhiz/internal/settings"
	"github.com/abhisek/mathwhiz/internal/store"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

var (
	enter = tea.KeyPressMsg{Code: tea.KeyEnter}
	down  = tea.KeyPressMsg{Code: tea.KeyDown}
)

func selectItem(s *PrefsScreen, item int) {
	for s.menu.Selected < item {
		s.Update(down)
	}
	s.Update(enter)
}

func TestPrefs_CycleTierPersists(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	d := screens.NewDeps(ctx, kv, nil)
	s := New(d)

	selectItem(s, itemTier)
	assert.Equal(t, problemgen.TierMedium, d.Prefs.Tier)
	assert.Equal(t, problemgen.TierMedium, settings.Load(ctx, kv).Tier)
	assert.Contains(t, s.View(80, 24), "Medium")

	s.Update(enter)
	s.Update(enter)
	assert.Equal(t, problemgen.TierEasy, d.Prefs.Tier, "cycle wraps")
}

func TestPrefs_TogglesAndLength(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	d := screens.NewDeps(ctx, kv, nil)
	five := 5
	d.LengthOverride = &five
	s := New(d)

	selectItem(s, itemSound)
	selectItem(s, itemMusic)
	selectItem(s, itemLength)

	p := settings.Load(ctx, kv)
	assert.False(t, p.SoundEnabled)
	assert.False(t, p.MusicEnabled)
	assert.Equal(t, 10, p.SessionLength)
	assert.Nil(t, d.LengthOverride)
	assert.Equal(t, 10, d.SessionLength())
}

func TestPrefs_ResetProgressNeedsConfirmation(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, session.HighScoreKey(problemgen.TierEasy), "70"))
	d := screens.NewDeps(ctx, kv, nil)
	require.Equal(t, 70, d.Tracker.Stats().HighScore)
	s := New(d)

	selectItem(s, itemReset)
	assert.True(t, s.confirming)
	assert.True(t, s.HandlesEsc())

	s.Update(keyPress('n'))
	assert.False(t, s.confirming)
	_, ok, _ := kv.Get(ctx, session.HighScoreKey(problemgen.TierEasy))
	assert.True(t, ok, "declined reset keeps scores")

	s.Update(enter)
	s.Update(keyPress('y'))
	_, ok, _ = kv.Get(ctx, session.HighScoreKey(problemgen.TierEasy))
	assert.False(t, ok)
	assert.Equal(t, 0, d.Tracker.Stats().HighScore)
	assert.Contains(t, s.View(80, 24), "All high scores cleared")
}

type failingKV struct{ store.KV }

func (failingKV) Set(context.Context, string, string) error { return errors.New("disk full") }

func TestPrefs_SaveFailureShown(t *testing.T) {
	d := screens.NewDeps(context.Background(), store.NewMemoryKV(), nil)
	d.KV = failingKV{KV: d.KV}
	s := New(d)

	selectItem(s, itemSound)
	assert.True(t, d.Prefs.SoundEnabled, "failed save leaves the preference unchanged")
	assert.Contains(t, s.View(80, 24), "disk full")
}

func TestLengthLabel(t *testing.T) {
	assert.Equal(t, "Unlimited", LengthLabel(0))
	assert.Equal(t, "20 per game", LengthLabel(20))
}
