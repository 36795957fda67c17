package problemgen

import "log/slog"

// options collects the answer plus three distinct non-negative distractors
// and shuffles them.
//
// Candidates are answer ± offset with offset in [1, spread]. Each round
// draws up to DistractorAttempts candidates; a round that leaves slots open
// doubles the spread. After DistractorMaxRounds the remaining slots are
// filled walking upward from the answer in FallbackStep strides, which
// always terminates.
func (g *ArithmeticGenerator) options(answer int) [OptionCount]int {
	values := make([]int, 0, OptionCount)
	values = append(values, answer)
	taken := map[int]bool{answer: true}

	add := func(v int) bool {
		if v < 0 || taken[v] {
			return false
		}
		taken[v] = true
		values = append(values, v)
		return true
	}

	spread := g.cfg.DistractorSpread
	for round := 0; round < g.cfg.DistractorMaxRounds && len(values) < OptionCount; round++ {
		for i := 0; i < g.cfg.DistractorAttempts && len(values) < OptionCount; i++ {
			offset := 1 + g.rng.IntN(spread)
			if g.rng.IntN(2) == 0 {
				offset = -offset
			}
			add(answer + offset)
		}
		spread *= 2
	}

	if len(values) < OptionCount {
		slog.Debug("Distractor search exhausted, filling deterministically",
			"answer", answer, "found", len(values)-1)
		for k := 1; len(values) < OptionCount; k++ {
			add(answer + k*g.cfg.FallbackStep)
		}
	}

	g.rng.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})

	var out [OptionCount]int
	copy(out[:], values)
	return out
}
