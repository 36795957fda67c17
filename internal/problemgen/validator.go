package problemgen

import (
	"errors"
	"fmt"
)

// Validator checks a generated puzzle for correctness.
// Implementations are stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in error messages, e.g.
	// "structural" or "math-check".
	Name() string

	// Validate returns nil if the puzzle passes the check.
	Validate(p *Puzzle) *ValidationError
}

// ValidationError describes why a puzzle failed validation.
type ValidationError struct {
	Validator string
	PuzzleID  string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q rejected puzzle %s: %s", e.Validator, e.PuzzleID, e.Message)
}

// DefaultValidators returns the validators every generated puzzle must pass.
func DefaultValidators() []Validator {
	return []Validator{
		&StructuralValidator{},
		&MathCheckValidator{},
	}
}

// Validate runs all validators and joins their failures.
func Validate(p *Puzzle, validators ...Validator) error {
	if len(validators) == 0 {
		validators = DefaultValidators()
	}
	var errs []error
	for _, v := range validators {
		if verr := v.Validate(p); verr != nil {
			errs = append(errs, verr)
		}
	}
	return errors.Join(errs...)
}
