package problemgen

import (
	"fmt"
	"regexp"
	"strconv"
)

// MathCheckValidator re-parses the rendered question and recomputes the
// answer independently of the generator.
type MathCheckValidator struct{}

func (v *MathCheckValidator) Name() string { return "math-check" }

func (v *MathCheckValidator) Validate(p *Puzzle) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{
			Validator: v.Name(),
			PuzzleID:  p.ID,
			Message:   fmt.Sprintf(format, args...),
		}
	}

	a, op, b, err := ParseQuestion(p.Question)
	if err != nil {
		return fail("%v", err)
	}
	if a != p.Operand1 || b != p.Operand2 || op != p.Operator {
		return fail("question %q does not match operands %d %s %d",
			p.Question, p.Operand1, p.Operator.Glyph(), p.Operand2)
	}

	computed, err := op.Apply(a, b)
	if err != nil {
		return fail("%v", err)
	}
	if computed != p.CorrectAnswer {
		return fail("computed %d but puzzle claims %d", computed, p.CorrectAnswer)
	}
	return nil
}

var questionRe = regexp.MustCompile(`^\s*(\d+)\s*([+\-×÷])\s*(\d+)\s*=\s*\?\s*$`)

// ParseQuestion extracts the operands and operator from a rendered question
// such as "28 ÷ 4 = ?".
func ParseQuestion(q string) (a int, op Operator, b int, err error) {
	m := questionRe.FindStringSubmatch(q)
	if m == nil {
		return 0, 0, 0, fmt.Errorf("unrecognised question %q", q)
	}

	a, err = strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("parse operand %q: %w", m[1], err)
	}
	b, err = strconv.Atoi(m[3])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("parse operand %q: %w", m[3], err)
	}

	switch m[2] {
	case "+":
		op = OpAdd
	case "-":
		op = OpSubtract
	case "×":
		op = OpMultiply
	case "÷":
		op = OpDivide
	}
	return a, op, b, nil
}
