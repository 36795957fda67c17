package session

import (
	"fmt"
	"strconv"

	"github.com/abhisek/mathwhiz/internal/problemgen"
)

// Scoring constants.
const (
	PointsCorrect = 10
	PenaltyWrong  = 5
)

// HighScoreKeyPrefix prefixes every persisted high score key.
const HighScoreKeyPrefix = "highScore_"

// HighScoreKey is the store key holding the best score for a tier.
func HighScoreKey(tier problemgen.Tier) string {
	return HighScoreKeyPrefix + tier.String()
}

// HighScoreKeys lists the keys for every tier.
func HighScoreKeys() []string {
	keys := make([]string, 0, len(problemgen.AllTiers))
	for _, t := range problemgen.AllTiers {
		keys = append(keys, HighScoreKey(t))
	}
	return keys
}

// Stats is the running tally for one session. Every field is non-negative.
type Stats struct {
	Score          int
	CorrectCount   int
	IncorrectCount int
	HighScore      int
}

// Apply returns the stats after judging one answer. A correct answer adds
// PointsCorrect; a wrong one subtracts PenaltyWrong without going below
// zero. HighScore rises to Score when Score passes it and never falls.
func (s Stats) Apply(correct bool) Stats {
	if correct {
		s.Score += PointsCorrect
		s.CorrectCount++
	} else {
		s.Score = max(0, s.Score-PenaltyWrong)
		s.IncorrectCount++
	}
	if s.Score > s.HighScore {
		s.HighScore = s.Score
	}
	return s
}

// Answered is the number of answers judged so far.
func (s Stats) Answered() int {
	return s.CorrectCount + s.IncorrectCount
}

func (s Stats) String() string {
	return fmt.Sprintf("score=%d correct=%d incorrect=%d high=%d",
		s.Score, s.CorrectCount, s.IncorrectCount, s.HighScore)
}

// parseHighScore decodes a stored high score. Anything unparseable or
// negative reads as zero.
func parseHighScore(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
