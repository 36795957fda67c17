// Package settings persists the player's preferences and owns the
// "reset all progress" operation.
package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/abhisek/mathwhiz/internal/problemgen"
	"github.com/abhisek/mathwhiz/internal/session"
	"github.com/abhisek/mathwhiz/internal/store"
)

// Store keys.
const (
	KeyDifficulty    = "difficulty"
	KeySoundEnabled  = "soundEnabled"
	KeyMusicEnabled  = "musicEnabled"
	KeySessionLength = "sessionLength"
)

// SessionLengths are the choices the settings screen cycles through.
var SessionLengths = []int{0, 10, 20, 50}

// Preferences are the player's stored choices.
type Preferences struct {
	Tier          problemgen.Tier
	SoundEnabled  bool
	MusicEnabled  bool
	SessionLength int // 0 = unlimited
}

// Defaults returns the preferences of a fresh install.
func Defaults() Preferences {
	return Preferences{
		Tier:         problemgen.TierEasy,
		SoundEnabled: true,
		MusicEnabled: true,
	}
}

// Keys lists every key the preferences occupy.
func Keys() []string {
	return []string{KeyDifficulty, KeySoundEnabled, KeyMusicEnabled, KeySessionLength}
}

// Load reads preferences from kv. Absent or unreadable values fall back to
// their defaults individually.
func Load(ctx context.Context, kv store.KV) Preferences {
	p := Defaults()
	if kv == nil {
		return p
	}

	if v, ok := get(ctx, kv, KeyDifficulty); ok {
		if tier, err := problemgen.ParseTier(v); err == nil {
			p.Tier = tier
		} else {
			slog.WarnContext(ctx, "Ignoring stored difficulty", "value", v)
		}
	}
	if v, ok := get(ctx, kv, KeySoundEnabled); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			p.SoundEnabled = b
		}
	}
	if v, ok := get(ctx, kv, KeyMusicEnabled); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			p.MusicEnabled = b
		}
	}
	if v, ok := get(ctx, kv, KeySessionLength); ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			p.SessionLength = n
		}
	}
	return p
}

func get(ctx context.Context, kv store.KV, key string) (string, bool) {
	v, ok, err := kv.Get(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "Failed to read preference", "key", key, "error", err)
		return "", false
	}
	return v, ok
}

// Save writes every preference to kv.
func (p Preferences) Save(ctx context.Context, kv store.KV) error {
	if err := p.Validate(); err != nil {
		return err
	}
	var errs []error
	for key, value := range p.encode() {
		if err := kv.Set(ctx, key, value); err != nil {
			errs = append(errs, fmt.Errorf("save %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// Validate checks that the preferences can be stored.
func (p Preferences) Validate() error {
	if !p.Tier.Valid() {
		return fmt.Errorf("invalid tier %d", int(p.Tier))
	}
	if p.SessionLength < 0 {
		return fmt.Errorf("session length must be >= 0, got %d", p.SessionLength)
	}
	return nil
}

func (p Preferences) encode() map[string]string {
	return map[string]string{
		KeyDifficulty:    p.Tier.String(),
		KeySoundEnabled:  strconv.FormatBool(p.SoundEnabled),
		KeyMusicEnabled:  strconv.FormatBool(p.MusicEnabled),
		KeySessionLength: strconv.Itoa(p.SessionLength),
	}
}

// Get returns the stored text form of one preference key.
func (p Preferences) Get(key string) (string, error) {
	v, ok := p.encode()[key]
	if !ok {
		return "", fmt.Errorf("unknown setting %q", key)
	}
	return v, nil
}

// Set parses value for key, updates p and persists the single key.
func (p *Preferences) Set(ctx context.Context, kv store.KV, key, value string) error {
	next := *p
	switch key {
	case KeyDifficulty:
		tier, err := problemgen.ParseTier(value)
		if err != nil {
			return err
		}
		next.Tier = tier
	case KeySoundEnabled, KeyMusicEnabled:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: want true or false, got %q", key, value)
		}
		if key == KeySoundEnabled {
			next.SoundEnabled = b
		} else {
			next.MusicEnabled = b
		}
	case KeySessionLength:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%s: want a whole number >= 0, got %q", key, value)
		}
		next.SessionLength = n
	default:
		return fmt.Errorf("unknown setting %q", key)
	}

	stored, _ := next.Get(key)
	if err := kv.Set(ctx, key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	*p = next
	return nil
}

// SetTier changes and persists the difficulty.
func (p *Preferences) SetTier(ctx context.Context, kv store.KV, tier problemgen.Tier) error {
	return p.Set(ctx, kv, KeyDifficulty, tier.String())
}

// ToggleSound flips and persists the sound preference.
func (p *Preferences) ToggleSound(ctx context.Context, kv store.KV) error {
	return p.Set(ctx, kv, KeySoundEnabled, strconv.FormatBool(!p.SoundEnabled))
}

// ToggleMusic flips and persists the music preference.
func (p *Preferences) ToggleMusic(ctx context.Context, kv store.KV) error {
	return p.Set(ctx, kv, KeyMusicEnabled, strconv.FormatBool(!p.MusicEnabled))
}

// CycleSessionLength advances to the next entry of SessionLengths. A value
// outside the list restarts the cycle.
func (p *Preferences) CycleSessionLength(ctx context.Context, kv store.KV) error {
	next := SessionLengths[0]
	for i, n := range SessionLengths {
		if n == p.SessionLength {
			next = SessionLengths[(i+1)%len(SessionLengths)]
			break
		}
	}
	return p.Set(ctx, kv, KeySessionLength, strconv.Itoa(next))
}

// ResetProgress deletes every stored key under the high score prefix and
// reloads the tracker's high score for its active tier, when a tracker is
// given. Preferences are kept.
func ResetProgress(ctx context.Context, kv store.KV, tracker *session.Tracker) error {
	keys, err := kv.Keys(ctx, session.HighScoreKeyPrefix)
	if err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	if err := kv.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	if tracker != nil {
		tracker.LoadHighScore(ctx, tracker.Tier())
	}
	slog.InfoContext(ctx, "Progress reset", "keys", len(keys))
	return nil
}
