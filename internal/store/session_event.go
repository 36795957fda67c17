package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	err := r.insert(ctx, sessionEventsTable,
		[]string{"session_id", "action", "tier", "score", "correct_count", "incorrect_count", "high_score", "duration_secs"},
		[]any{data.SessionID, data.Action, data.Tier, data.Score, data.CorrectCount, data.IncorrectCount, data.HighScore, data.DurationSecs},
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	err := r.insert(ctx, answerEventsTable,
		[]string{"session_id", "puzzle_id", "tier", "question", "chosen", "correct_answer", "correct", "score_after", "time_ms"},
		[]any{data.SessionID, data.PuzzleID, data.Tier, data.Question, data.Chosen, data.CorrectAnswer, data.Correct, data.ScoreAfter, data.TimeMs},
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentSessions(ctx context.Context, limit int) ([]SessionEvent, error) {
	b := entsql.Dialect(dialect.SQLite)
	sel := b.Select("id", "sequence", "timestamp", "session_id", "action", "tier",
		"score", "correct_count", "incorrect_count", "high_score", "duration_secs").
		From(b.Table(sessionEventsTable)).
		Where(entsql.EQ("action", SessionEnd)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel.Limit(limit)
	}

	var out []SessionEvent
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var e SessionEvent
		if err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp, &e.SessionID, &e.Action, &e.Tier,
			&e.Score, &e.CorrectCount, &e.IncorrectCount, &e.HighScore, &e.DurationSecs); err != nil {
			return fmt.Errorf("scan session event: %w", err)
		}
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	return out, nil
}

func (r *eventRepo) AnswersForSession(ctx context.Context, sessionID string) ([]AnswerEvent, error) {
	b := entsql.Dialect(dialect.SQLite)
	sel := b.Select("id", "sequence", "timestamp", "session_id", "puzzle_id", "tier", "question",
		"chosen", "correct_answer", "correct", "score_after", "time_ms").
		From(b.Table(answerEventsTable)).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("sequence")

	var out []AnswerEvent
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var e AnswerEvent
		if err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp, &e.SessionID, &e.PuzzleID, &e.Tier, &e.Question,
			&e.Chosen, &e.CorrectAnswer, &e.Correct, &e.ScoreAfter, &e.TimeMs); err != nil {
			return fmt.Errorf("scan answer event: %w", err)
		}
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	return out, nil
}

func (r *eventRepo) TierTotals(ctx context.Context) ([]TierTotals, error) {
	b := entsql.Dialect(dialect.SQLite)
	sel := b.Select(
		"tier",
		entsql.As(entsql.Count("*"), "answers"),
		entsql.As(entsql.Sum("correct"), "correct"),
		entsql.As(entsql.Max("score_after"), "best"),
	).
		From(b.Table(answerEventsTable)).
		GroupBy("tier").
		OrderBy("tier")

	var out []TierTotals
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var t TierTotals
		if err := rows.Scan(&t.Tier, &t.Answers, &t.Correct, &t.BestScore); err != nil {
			return fmt.Errorf("scan tier totals: %w", err)
		}
		out = append(out, t)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query tier totals: %w", err)
	}
	return out, nil
}
