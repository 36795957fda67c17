package problemgen

import "fmt"

// StructuralValidator checks the option set: exactly four distinct,
// non-negative values, one of which is the answer.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(p *Puzzle) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{
			Validator: v.Name(),
			PuzzleID:  p.ID,
			Message:   fmt.Sprintf(format, args...),
		}
	}

	if p.ID == "" {
		return fail("missing id")
	}
	if !p.Tier.Valid() {
		return fail("unknown tier %d", int(p.Tier))
	}
	if !tierAllows(p.Tier, p.Operator) {
		return fail("operator %s is not used on %s", p.Operator, p.Tier)
	}
	if p.CorrectAnswer < 0 {
		return fail("negative answer %d", p.CorrectAnswer)
	}

	seen := make(map[int]bool, OptionCount)
	for i, o := range p.Options {
		if o < 0 {
			return fail("option %d is negative (%d)", i+1, o)
		}
		if seen[o] {
			return fail("option %d duplicates value %d", i+1, o)
		}
		seen[o] = true
	}
	if !seen[p.CorrectAnswer] {
		return fail("answer %d missing from options %v", p.CorrectAnswer, p.Options)
	}
	return nil
}

func tierAllows(t Tier, op Operator) bool {
	switch t {
	case TierEasy:
		return op == OpAdd || op == OpSubtract
	case TierMedium:
		return op == OpAdd || op == OpSubtract || op == OpMultiply
	case TierHard:
		return op >= OpAdd && op <= OpDivide
	}
	return false
}
