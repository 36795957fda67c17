package problemgen

import "testing"

func validPuzzle() *Puzzle {
	return &Puzzle{
		ID:            "p1",
		Tier:          TierEasy,
		Operator:      OpAdd,
		Operand1:      3,
		Operand2:      4,
		Question:      "3 + 4 = ?",
		CorrectAnswer: 7,
		Options:       [OptionCount]int{5, 7, 9, 8},
	}
}

func TestStructural_ValidPuzzle(t *testing.T) {
	v := &StructuralValidator{}
	if err := v.Validate(validPuzzle()); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestStructural_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Puzzle)
	}{
		{"missing id", func(p *Puzzle) { p.ID = "" }},
		{"unknown tier", func(p *Puzzle) { p.Tier = Tier(9) }},
		{"divide on easy", func(p *Puzzle) { p.Operator = OpDivide }},
		{"multiply on easy", func(p *Puzzle) { p.Operator = OpMultiply }},
		{"negative option", func(p *Puzzle) { p.Options[0] = -1 }},
		{"duplicate option", func(p *Puzzle) { p.Options[3] = 9 }},
		{"answer missing", func(p *Puzzle) { p.Options[1] = 6 }},
		{"negative answer", func(p *Puzzle) { p.CorrectAnswer = -2 }},
	}

	v := &StructuralValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPuzzle()
			tt.mutate(p)
			err := v.Validate(p)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if err.Validator != "structural" {
				t.Errorf("Validator = %q, want %q", err.Validator, "structural")
			}
		})
	}
}

func TestStructural_HardAllowsDivide(t *testing.T) {
	p := validPuzzle()
	p.Tier = TierHard
	p.Operator = OpDivide
	if err := (&StructuralValidator{}).Validate(p); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
