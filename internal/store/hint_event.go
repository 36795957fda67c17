package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) AppendHintEvent(ctx context.Context, data HintEventData) error {
	err := r.insert(ctx, hintEventsTable,
		[]string{"session_id", "puzzle_id", "question", "hint", "source", "latency_ms"},
		[]any{data.SessionID, data.PuzzleID, data.Question, data.Hint, data.Source, data.LatencyMs},
	)
	if err != nil {
		return fmt.Errorf("save hint event: %w", err)
	}
	return nil
}
