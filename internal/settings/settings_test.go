package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathwhiz/internal/problemgen"
	"github.com/abhisek/mathwhiz/internal/session"
	"github.com/abhisek/mathwhiz/internal/store"
)

func TestLoad_Defaults(t *testing.T) {
	p := Load(context.Background(), store.NewMemoryKV())
	assert.Equal(t, Defaults(), p)
	assert.Equal(t, problemgen.TierEasy, p.Tier)
	assert.True(t, p.SoundEnabled)
	assert.True(t, p.MusicEnabled)
	assert.Equal(t, 0, p.SessionLength)

	assert.Equal(t, Defaults(), Load(context.Background(), nil))
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, KeyDifficulty, "Impossible"))
	require.NoError(t, kv.Set(ctx, KeySoundEnabled, "loud"))
	require.NoError(t, kv.Set(ctx, KeyMusicEnabled, "false"))
	require.NoError(t, kv.Set(ctx, KeySessionLength, "-3"))

	p := Load(ctx, kv)
	assert.Equal(t, problemgen.TierEasy, p.Tier)
	assert.True(t, p.SoundEnabled)
	assert.False(t, p.MusicEnabled)
	assert.Equal(t, 0, p.SessionLength)
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	want := Preferences{Tier: problemgen.TierHard, SoundEnabled: false, MusicEnabled: true, SessionLength: 20}

	require.NoError(t, want.Save(ctx, kv))
	assert.Equal(t, want, Load(ctx, kv))

	v, ok, err := kv.Get(ctx, KeyDifficulty)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Hard", v)

	bad := Preferences{Tier: problemgen.Tier(9)}
	assert.Error(t, bad.Save(ctx, kv))
}

func TestSetters(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	p := Defaults()

	require.NoError(t, p.SetTier(ctx, kv, problemgen.TierMedium))
	require.NoError(t, p.ToggleSound(ctx, kv))
	require.NoError(t, p.ToggleMusic(ctx, kv))
	require.NoError(t, p.ToggleMusic(ctx, kv))
	require.NoError(t, p.CycleSessionLength(ctx, kv))

	want := Preferences{Tier: problemgen.TierMedium, SoundEnabled: false, MusicEnabled: true, SessionLength: 10}
	assert.Equal(t, want, p)
	assert.Equal(t, want, Load(ctx, kv))
}

func TestCycleSessionLength(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	p := Defaults()

	var seen []int
	for range len(SessionLengths) + 1 {
		require.NoError(t, p.CycleSessionLength(ctx, kv))
		seen = append(seen, p.SessionLength)
	}
	assert.Equal(t, []int{10, 20, 50, 0, 10}, seen)

	p.SessionLength = 7
	require.NoError(t, p.CycleSessionLength(ctx, kv))
	assert.Equal(t, 0, p.SessionLength)
}

func TestSet_Errors(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	p := Defaults()

	assert.Error(t, p.Set(ctx, kv, "volume", "11"))
	assert.Error(t, p.Set(ctx, kv, KeyDifficulty, "nightmare"))
	assert.Error(t, p.Set(ctx, kv, KeySoundEnabled, "maybe"))
	assert.Error(t, p.Set(ctx, kv, KeySessionLength, "-1"))
	assert.Equal(t, Defaults(), p, "failed sets leave preferences untouched")

	_, err := p.Get("volume")
	assert.Error(t, err)
	v, err := p.Get(KeySoundEnabled)
	require.NoError(t, err)
	assert.Equal(t, "true", v)
}

func TestResetProgress(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, "highScore_Easy", "50"))
	require.NoError(t, kv.Set(ctx, "highScore_Hard", "200"))
	require.NoError(t, kv.Set(ctx, KeyDifficulty, "Hard"))
	require.NoError(t, kv.Set(ctx, "highScore_Expert", "999"))

	tr := session.NewTracker(ctx, kv, problemgen.TierHard)
	require.Equal(t, 200, tr.Stats().HighScore)

	require.NoError(t, ResetProgress(ctx, kv, tr))

	assert.Equal(t, 0, tr.Stats().HighScore)
	assert.Equal(t, problemgen.TierHard, tr.Tier())
	for _, key := range session.HighScoreKeys() {
		_, ok, err := kv.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok, key)
	}

	left, err := kv.Keys(ctx, session.HighScoreKeyPrefix)
	require.NoError(t, err)
	assert.Empty(t, left, "every prefixed key is cleared, not only known tiers")

	assert.Equal(t, problemgen.TierHard, Load(ctx, kv).Tier, "preferences survive a reset")
	assert.NoError(t, ResetProgress(ctx, kv, nil))
}

type unlistableKV struct{ store.KV }

func (unlistableKV) Keys(context.Context, string) ([]string, error) {
	return nil, errors.New("locked")
}

func TestResetProgress_ListFailureKeepsScores(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryKV()
	require.NoError(t, mem.Set(ctx, "highScore_Easy", "50"))

	err := ResetProgress(ctx, unlistableKV{mem}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reset progress")

	v, ok, err := mem.Get(ctx, "highScore_Easy")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "50", v)
}
