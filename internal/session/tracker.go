package session

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/abhisek/mathwhiz/internal/problemgen"
	"github.com/abhisek/mathwhiz/internal/store"
)

// Tracker owns the score state of the active session and persists new high
// scores for the active tier. It is not safe for concurrent use; the game
// screen is its only caller.
type Tracker struct {
	kv    store.KV
	tier  problemgen.Tier
	stats Stats

	// baseline is the high score loaded at the start of the session, used
	// to tell whether this session set a new record.
	baseline int
}

// NewTracker creates a tracker for tier and loads its stored high score.
// A nil kv behaves as an empty store that drops writes.
func NewTracker(ctx context.Context, kv store.KV, tier problemgen.Tier) *Tracker {
	t := &Tracker{kv: kv}
	t.LoadHighScore(ctx, tier)
	return t
}

// Stats returns a copy of the current stats.
func (t *Tracker) Stats() Stats {
	return t.stats
}

// Tier returns the active tier.
func (t *Tracker) Tier() problemgen.Tier {
	return t.tier
}

// NewHighScore reports whether the session has beaten the high score that
// was stored when it began.
func (t *Tracker) NewHighScore() bool {
	return t.stats.HighScore > t.baseline
}

// RecordAnswer applies one judged answer and persists the high score when
// it rises. Persistence failures are logged and otherwise ignored.
func (t *Tracker) RecordAnswer(ctx context.Context, correct bool) Stats {
	prevHigh := t.stats.HighScore
	t.stats = t.stats.Apply(correct)

	if t.stats.HighScore > prevHigh && t.kv != nil {
		key := HighScoreKey(t.tier)
		if err := t.kv.Set(ctx, key, strconv.Itoa(t.stats.HighScore)); err != nil {
			slog.WarnContext(ctx, "Failed to persist high score", "key", key, "error", err)
		}
	}
	return t.stats
}

// Reset zeroes the session counters. The high score is kept.
func (t *Tracker) Reset() {
	t.stats = Stats{HighScore: t.stats.HighScore}
	t.baseline = t.stats.HighScore
}

// LoadHighScore switches to tier and installs its stored high score without
// touching the session counters. Missing or unreadable values count as 0.
func (t *Tracker) LoadHighScore(ctx context.Context, tier problemgen.Tier) {
	t.tier = tier
	t.stats.HighScore = readHighScore(ctx, t.kv, tier)
	t.baseline = t.stats.HighScore
}

// readHighScore returns the stored high score of tier, or 0 when there is
// nothing readable.
func readHighScore(ctx context.Context, kv store.KV, tier problemgen.Tier) int {
	if kv == nil {
		return 0
	}
	key := HighScoreKey(tier)
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "Failed to read high score", "key", key, "error", err)
		return 0
	}
	if !ok {
		return 0
	}
	return parseHighScore(raw)
}

// HighScores reads the stored high score of every tier.
func HighScores(ctx context.Context, kv store.KV) map[problemgen.Tier]int {
	out := make(map[problemgen.Tier]int, len(problemgen.AllTiers))
	for _, tier := range problemgen.AllTiers {
		out[tier] = readHighScore(ctx, kv, tier)
	}
	return out
}
