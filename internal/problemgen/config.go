package problemgen

import "fmt"

// Config bounds the distractor search.
type Config struct {
	// DistractorAttempts is how many candidates are drawn per round.
	DistractorAttempts int

	// DistractorMaxRounds caps the number of rounds. The offset spread
	// doubles after each round that leaves slots unfilled.
	DistractorMaxRounds int

	// DistractorSpread is the initial maximum offset from the answer.
	DistractorSpread int

	// FallbackStep is the stride used to fill any slots still empty after
	// the last round.
	FallbackStep int
}

// DefaultConfig returns the standard distractor search bounds.
func DefaultConfig() Config {
	return Config{
		DistractorAttempts:  16,
		DistractorMaxRounds: 4,
		DistractorSpread:    10,
		FallbackStep:        1,
	}
}

// Validate checks that every bound is positive.
func (c Config) Validate() error {
	if c.DistractorAttempts <= 0 {
		return fmt.Errorf("distractor attempts must be positive, got %d", c.DistractorAttempts)
	}
	if c.DistractorMaxRounds <= 0 {
		return fmt.Errorf("distractor rounds must be positive, got %d", c.DistractorMaxRounds)
	}
	if c.DistractorSpread <= 0 {
		return fmt.Errorf("distractor spread must be positive, got %d", c.DistractorSpread)
	}
	if c.FallbackStep <= 0 {
		return fmt.Errorf("fallback step must be positive, got %d", c.FallbackStep)
	}
	return nil
}
