// Package session holds the score state of a play session: the running
// tally, the per-tier high score and the summary shown when a session ends.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mathwhiz/internal/problemgen"
)

// Session identifies one run of the game screen.
type Session struct {
	ID      string
	Tier    problemgen.Tier
	Length  int // answers before the session ends; 0 = unlimited
	Started time.Time
}

// New starts a session for tier. A negative length is treated as unlimited.
func New(tier problemgen.Tier, length int) Session {
	return Session{
		ID:      uuid.New().String(),
		Tier:    tier,
		Length:  max(0, length),
		Started: time.Now(),
	}
}

// Complete reports whether a session with this many judged answers is over.
// Unlimited sessions never complete on their own.
func (s Session) Complete(answered int) bool {
	return s.Length > 0 && answered >= s.Length
}

// Remaining is how many answers are left, or -1 for unlimited sessions.
func (s Session) Remaining(answered int) int {
	if s.Length == 0 {
		return -1
	}
	return max(0, s.Length-answered)
}

// Elapsed is the wall time since the session began.
func (s Session) Elapsed(now time.Time) time.Duration {
	return now.Sub(s.Started)
}
