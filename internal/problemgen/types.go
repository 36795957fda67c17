package problemgen

import (
	"fmt"
	"strings"
)

// Tier is the difficulty level a puzzle is generated for.
type Tier int

const (
	TierEasy Tier = iota
	TierMedium
	TierHard
)

// AllTiers lists every tier in ascending difficulty.
var AllTiers = []Tier{TierEasy, TierMedium, TierHard}

func (t Tier) String() string {
	switch t {
	case TierEasy:
		return "Easy"
	case TierMedium:
		return "Medium"
	case TierHard:
		return "Hard"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// Description is the short blurb shown next to the tier in settings.
func (t Tier) Description() string {
	switch t {
	case TierEasy:
		return "1-10, Add & Sub"
	case TierMedium:
		return "1-50, Add, Sub & Mult"
	case TierHard:
		return "1-100, All Operations"
	default:
		return ""
	}
}

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	return t >= TierEasy && t <= TierHard
}

// ParseTier parses a tier name case-insensitively.
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return TierEasy, nil
	case "medium":
		return TierMedium, nil
	case "hard":
		return TierHard, nil
	}
	return TierEasy, fmt.Errorf("unknown tier %q (want easy, medium or hard)", s)
}

// MarshalText implements encoding.TextMarshaler so tiers round-trip through
// YAML and JSON as their names.
func (t Tier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid tier %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(b []byte) error {
	parsed, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Operator is one of the four arithmetic operations.
type Operator int

const (
	OpAdd Operator = iota
	OpSubtract
	OpMultiply
	OpDivide
)

// Glyph returns the symbol rendered in the question text.
func (o Operator) Glyph() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "×"
	case OpDivide:
		return "÷"
	default:
		return "?"
	}
}

func (o Operator) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpDivide:
		return "divide"
	default:
		return fmt.Sprintf("Operator(%d)", int(o))
	}
}

// Apply computes a op b. Division is integer division and only meaningful
// for the exact quotients the generator produces.
func (o Operator) Apply(a, b int) (int, error) {
	switch o {
	case OpAdd:
		return a + b, nil
	case OpSubtract:
		return a - b, nil
	case OpMultiply:
		return a * b, nil
	case OpDivide:
		if b == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		if a%b != 0 {
			return 0, fmt.Errorf("%d is not divisible by %d", a, b)
		}
		return a / b, nil
	}
	return 0, fmt.Errorf("unknown operator %d", int(o))
}

// OptionCount is the number of answer options on every puzzle.
const OptionCount = 4

// Puzzle is a single generated arithmetic problem. It is never mutated after
// Generate returns it.
type Puzzle struct {
	ID            string
	Tier          Tier
	Operator      Operator
	Operand1      int
	Operand2      int
	Question      string
	CorrectAnswer int
	Options       [OptionCount]int
}

// Check reports whether choice is the correct answer.
func (p *Puzzle) Check(choice int) bool {
	return choice == p.CorrectAnswer
}

// IndexOf returns the option slot holding value, or -1.
func (p *Puzzle) IndexOf(value int) int {
	for i, o := range p.Options {
		if o == value {
			return i
		}
	}
	return -1
}

// CorrectIndex returns the option slot holding the correct answer.
func (p *Puzzle) CorrectIndex() int {
	return p.IndexOf(p.CorrectAnswer)
}

// RenderQuestion formats operands the way puzzles display them.
func RenderQuestion(a int, op Operator, b int) string {
	return fmt.Sprintf("%d %s %d = ?", a, op.Glyph(), b)
}
