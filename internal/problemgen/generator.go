package problemgen

import (
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/xid"
)

// Generator produces puzzles for a difficulty tier.
type Generator interface {
	Generate(tier Tier) Puzzle
}

// Option configures an ArithmeticGenerator.
type Option func(*ArithmeticGenerator)

// WithRand sets the random source. Tests pass a seeded source for
// reproducible puzzles.
func WithRand(r *rand.Rand) Option {
	return func(g *ArithmeticGenerator) { g.rng = r }
}

// WithIDFunc overrides how puzzle IDs are minted.
func WithIDFunc(fn func() string) Option {
	return func(g *ArithmeticGenerator) { g.newID = fn }
}

// WithConfig overrides the distractor search bounds.
func WithConfig(cfg Config) Option {
	return func(g *ArithmeticGenerator) { g.cfg = cfg }
}

// ArithmeticGenerator builds puzzles locally from a random source.
// It is safe for concurrent use.
type ArithmeticGenerator struct {
	mu    sync.Mutex
	rng   *rand.Rand
	newID func() string
	cfg   Config
}

var _ Generator = (*ArithmeticGenerator)(nil)

// New creates a generator seeded from the clock unless WithRand is given.
func New(opts ...Option) *ArithmeticGenerator {
	g := &ArithmeticGenerator{
		newID: func() string { return xid.New().String() },
		cfg:   DefaultConfig(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		seed := uint64(time.Now().UnixNano())
		g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	if err := g.cfg.Validate(); err != nil {
		slog.Warn("Invalid puzzle generator config, using defaults", "error", err)
		g.cfg = DefaultConfig()
	}
	return g
}

// Generate returns a fresh puzzle for tier. Unknown tiers are treated as Easy.
func (g *ArithmeticGenerator) Generate(tier Tier) Puzzle {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !tier.Valid() {
		tier = TierEasy
	}

	op := g.pickOperator(tier)
	a, b, answer := g.operands(tier, op)
	return g.assemble(tier, op, a, b, answer)
}

// pickOperator draws uniformly from the operators a tier allows.
func (g *ArithmeticGenerator) pickOperator(tier Tier) Operator {
	switch tier {
	case TierMedium:
		return Operator(g.rng.IntN(3))
	case TierHard:
		return Operator(g.rng.IntN(4))
	default:
		return Operator(g.rng.IntN(2))
	}
}

// operands returns the operands in display order and the answer.
func (g *ArithmeticGenerator) operands(tier Tier, op Operator) (a, b, answer int) {
	switch tier {
	case TierMedium:
		if op == OpMultiply {
			return multiply(g.intRange(2, 9), g.intRange(2, 9))
		}
		a, b = g.intRange(10, 50), g.intRange(1, 50)
	case TierHard:
		switch op {
		case OpMultiply:
			return multiply(g.intRange(3, 12), g.intRange(3, 12))
		case OpDivide:
			return divide(g.intRange(2, 10), g.intRange(2, 12))
		}
		a, b = g.intRange(20, 100), g.intRange(10, 100)
	default:
		a, b = g.intRange(1, 10), g.intRange(1, 10)
	}

	if op == OpSubtract {
		return subtract(a, b)
	}
	return a, b, a + b
}

func multiply(a, b int) (int, int, int) {
	return a, b, a * b
}

// subtract orders the operands so the difference is never negative.
func subtract(a, b int) (int, int, int) {
	if a < b {
		a, b = b, a
	}
	return a, b, a - b
}

// divide builds an exact division from its divisor and quotient. The
// rendered operands are dividend and divisor; the quotient is the answer.
func divide(divisor, quotient int) (int, int, int) {
	return divisor * quotient, divisor, quotient
}

func (g *ArithmeticGenerator) assemble(tier Tier, op Operator, a, b, answer int) Puzzle {
	return Puzzle{
		ID:            g.newID(),
		Tier:          tier,
		Operator:      op,
		Operand1:      a,
		Operand2:      b,
		Question:      RenderQuestion(a, op, b),
		CorrectAnswer: answer,
		Options:       g.options(answer),
	}
}

// intRange returns a uniform integer in [lo, hi].
func (g *ArithmeticGenerator) intRange(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}
