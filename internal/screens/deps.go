// Package screens holds what the individual screens share: the handles to
// the player's state and the services a game needs.
package screens

import (
	"context"
	"time"

	"github.com/abhisek/mathwhiz/internal/hints"
	"github.com/abhisek/mathwhiz/internal/problemgen"
	"github.com/abhisek/mathwhiz/internal/session"
	"github.com/abhisek/mathwhiz/internal/settings"
	"github.com/abhisek/mathwhiz/internal/store"
)

// DefaultFeedbackDelay is how long the answer feedback stays up.
const DefaultFeedbackDelay = 1500 * time.Millisecond

// Deps is passed by pointer to every screen. Preferences and the tracker
// are shared so a change on one screen shows on the others.
type Deps struct {
	Generator problemgen.Generator
	KV        store.KV
	Events    store.EventRepo // nil disables the event log
	Prefs     *settings.Preferences
	Tracker   *session.Tracker
	Hints     *hints.Service // nil means no hint provider

	FeedbackDelay time.Duration

	// TierOverride and LengthOverride replace the stored preferences for
	// this run only.
	TierOverride   *problemgen.Tier
	LengthOverride *int

	Now func() time.Time
}

// NewDeps loads preferences and the tracker from kv. A nil kv gives an
// in-memory store.
func NewDeps(ctx context.Context, kv store.KV, gen problemgen.Generator) *Deps {
	if kv == nil {
		kv = store.NewMemoryKV()
	}
	if gen == nil {
		gen = problemgen.New()
	}
	prefs := settings.Load(ctx, kv)
	return &Deps{
		Generator:     gen,
		KV:            kv,
		Prefs:         &prefs,
		Tracker:       session.NewTracker(ctx, kv, prefs.Tier),
		FeedbackDelay: DefaultFeedbackDelay,
		Now:           time.Now,
	}
}

// Tier is the tier the next game is played at.
func (d *Deps) Tier() problemgen.Tier {
	if d.TierOverride != nil {
		return *d.TierOverride
	}
	return d.Prefs.Tier
}

// SessionLength is the number of answers the next game lasts; 0 is
// unlimited.
func (d *Deps) SessionLength() int {
	if d.LengthOverride != nil {
		return *d.LengthOverride
	}
	return d.Prefs.SessionLength
}

// Clock returns the current time through Now when set.
func (d *Deps) Clock() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// HighScore returns the stored high score of the next game's tier.
func (d *Deps) HighScore(ctx context.Context) int {
	if d.Tracker.Tier() != d.Tier() {
		d.Tracker.LoadHighScore(ctx, d.Tier())
	}
	return d.Tracker.Stats().HighScore
}
