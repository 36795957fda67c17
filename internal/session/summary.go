package session

import (
	"math"
	"time"
)

// Summary is what the result screen shows after a session.
type Summary struct {
	SessionID    string
	Tier         string
	Score        int
	Correct      int
	Incorrect    int
	HighScore    int
	NewHighScore bool
	Duration     time.Duration
}

// Summarize builds the end-of-session summary from a tracker.
func Summarize(s Session, t *Tracker, now time.Time) Summary {
	st := t.Stats()
	return Summary{
		SessionID:    s.ID,
		Tier:         t.Tier().String(),
		Score:        st.Score,
		Correct:      st.CorrectCount,
		Incorrect:    st.IncorrectCount,
		HighScore:    st.HighScore,
		NewHighScore: t.NewHighScore(),
		Duration:     s.Elapsed(now),
	}
}

// Accuracy is round(correct / answered * 100), or 0 with no answers.
func (s Summary) Accuracy() int {
	return Accuracy(s.Correct, s.Incorrect)
}

// Message is the encouragement line for the summary's accuracy.
func (s Summary) Message() string {
	return ResultMessage(s.Accuracy())
}

// Accuracy returns the rounded percentage of correct answers.
func Accuracy(correct, incorrect int) int {
	total := correct + incorrect
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// ResultMessage picks the encouragement line for an accuracy percentage.
func ResultMessage(accuracy int) string {
	switch {
	case accuracy >= 100:
		return "Perfect Score! 🌟"
	case accuracy >= 80:
		return "Awesome Job! 🎉"
	case accuracy >= 50:
		return "Good Effort! 💪"
	default:
		return "Keep Practicing! 📚"
	}
}
