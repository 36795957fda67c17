package game

import "github.com/abhisek/mathwhiz/internal/hints"

// hintMsg carries a hint back for the puzzle it was requested for.
type hintMsg struct {
	PuzzleID string
	Result   hints.Result
}

// feedbackDoneMsg ends the feedback pause numbered Seq.
type feedbackDoneMsg struct {
	Seq int
}
