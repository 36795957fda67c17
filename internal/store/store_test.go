package store

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Driver() == nil {
		t.Fatal("expected non-nil driver")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL falls back to "memory" for in-memory databases; see
		// TestOpenFileUsesWAL.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		if err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpenFileUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mathwhiz.db")
	if err := EnsureDir(path); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mathwhiz.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.KV().Set(ctx, "highScore_Easy", "40"); err != nil {
		t.Fatalf("set: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	v, ok, err := s.KV().Get(ctx, "highScore_Easy")
	if err != nil || !ok || v != "40" {
		t.Errorf("Get after reopen = %q, %v, %v", v, ok, err)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Run("env override", func(t *testing.T) {
		want := filepath.Join(dir, "custom", "x.db")
		t.Setenv("MATHWHIZ_DB", want)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("DefaultDBPath: %v", err)
		}
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("xdg data home", func(t *testing.T) {
		t.Setenv("MATHWHIZ_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("DefaultDBPath: %v", err)
		}
		want := filepath.Join(dir, "mathwhiz", "mathwhiz.db")
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}

func TestSequenceMonotonic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var prev int64
	for i := 0; i < 5; i++ {
		n, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if n <= prev {
			t.Fatalf("sequence went from %d to %d", prev, n)
		}
		prev = n
	}
}

func TestSequenceConcurrent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	const workers = 8
	var (
		mu   sync.Mutex
		seen = map[int64]bool{}
		wg   sync.WaitGroup
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				n, err := s.seq.Next(ctx)
				if err != nil {
					t.Errorf("next: %v", err)
					return
				}
				mu.Lock()
				if seen[n] {
					t.Errorf("duplicate sequence %d", n)
				}
				seen[n] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers*10 {
		t.Errorf("got %d sequence numbers, want %d", len(seen), workers*10)
	}
}

func TestSessionAndAnswerEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Action: SessionStart, Tier: "Easy"}); err != nil {
		t.Fatalf("append start: %v", err)
	}
	answers := []AnswerEventData{
		{SessionID: "s1", PuzzleID: "p1", Tier: "Easy", Question: "1 + 2 = ?", Chosen: 3, CorrectAnswer: 3, Correct: true, ScoreAfter: 10},
		{SessionID: "s1", PuzzleID: "p2", Tier: "Easy", Question: "5 - 2 = ?", Chosen: 4, CorrectAnswer: 3, Correct: false, ScoreAfter: 5},
		{SessionID: "s2", PuzzleID: "p3", Tier: "Hard", Question: "28 ÷ 4 = ?", Chosen: 7, CorrectAnswer: 7, Correct: true, ScoreAfter: 10},
	}
	for _, a := range answers {
		if err := repo.AppendAnswerEvent(ctx, a); err != nil {
			t.Fatalf("append answer: %v", err)
		}
	}
	if err := repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "s1", Action: SessionEnd, Tier: "Easy",
		Score: 5, CorrectCount: 1, IncorrectCount: 1, HighScore: 10, DurationSecs: 30,
	}); err != nil {
		t.Fatalf("append end: %v", err)
	}

	got, err := repo.AnswersForSession(ctx, "s1")
	if err != nil {
		t.Fatalf("answers: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("answers = %d, want 2", len(got))
	}
	if got[0].PuzzleID != "p1" || !got[0].Correct || got[1].Correct {
		t.Errorf("unexpected answers: %+v", got)
	}
	if got[0].Sequence >= got[1].Sequence {
		t.Errorf("answers out of order: %d, %d", got[0].Sequence, got[1].Sequence)
	}
	if got[0].Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}

	sessions, err := repo.RecentSessions(ctx, 10)
	if err != nil {
		t.Fatalf("recent sessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("sessions = %d, want 1 (only completed)", len(sessions))
	}
	if sessions[0].Score != 5 || sessions[0].HighScore != 10 || sessions[0].DurationSecs != 30 {
		t.Errorf("unexpected session: %+v", sessions[0])
	}

	totals, err := repo.TierTotals(ctx)
	if err != nil {
		t.Fatalf("tier totals: %v", err)
	}
	want := map[string]TierTotals{
		"Easy": {Tier: "Easy", Answers: 2, Correct: 1, BestScore: 10},
		"Hard": {Tier: "Hard", Answers: 1, Correct: 1, BestScore: 10},
	}
	if len(totals) != len(want) {
		t.Fatalf("totals = %+v", totals)
	}
	for _, tt := range totals {
		if tt != want[tt.Tier] {
			t.Errorf("totals[%s] = %+v, want %+v", tt.Tier, tt, want[tt.Tier])
		}
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "hint", InputTokens: 40, OutputTokens: 20, LatencyMs: 100, Success: true, RequestBody: "req", ResponseBody: "res"},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "hint", InputTokens: 60, OutputTokens: 30, LatencyMs: 300, Success: true},
		{Provider: "anthropic", Model: "claude-haiku-4-5", Purpose: "cli-hint", LatencyMs: 50, Success: false, ErrorMessage: "boom"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	list, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[0].ErrorMessage != "boom" {
		t.Errorf("expected newest first, got %+v", list[0])
	}

	after, err := repo.QueryLLMEvents(ctx, QueryOpts{After: list[1].Sequence})
	if err != nil {
		t.Fatalf("query after: %v", err)
	}
	if len(after) != 1 {
		t.Errorf("after filter returned %d events, want 1", len(after))
	}

	oldest := list[len(list)-1]
	full, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query all: %v", err)
	}
	first := full[len(full)-1]
	got, err := repo.GetLLMEvent(ctx, first.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.RequestBody != "req" || got.ResponseBody != "res" || !got.Success {
		t.Errorf("unexpected event: %+v", got)
	}
	if oldest.ID == first.ID {
		t.Error("limit did not apply")
	}

	_, err = repo.GetLLMEvent(ctx, 9999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetLLMEvent(9999) error = %v, want ErrNotFound", err)
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 || byPurpose[0].Purpose != "hint" || byPurpose[0].Calls != 2 {
		t.Fatalf("usage by purpose = %+v", byPurpose)
	}
	if byPurpose[0].InputTokens != 100 || byPurpose[0].OutputTokens != 50 || byPurpose[0].AvgLatencyMs != 200 {
		t.Errorf("hint usage = %+v", byPurpose[0])
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "gemini-2.5-flash" {
		t.Errorf("usage by model = %+v", byModel)
	}
}

func TestQueryOptsTimeRange(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "hint", Success: true}); err != nil {
		t.Fatalf("append: %v", err)
	}

	future := time.Now().Add(time.Hour)
	got, err := repo.QueryLLMEvents(ctx, QueryOpts{From: future})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no events after %v, got %d", future, len(got))
	}
}

func TestHintEvents(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.EventRepo().AppendHintEvent(ctx, HintEventData{
		SessionID: "s1", PuzzleID: "p1", Question: "3 + 4 = ?", Hint: "Count up from 3!", Source: "llm", LatencyMs: 120,
	})
	if err != nil {
		t.Fatalf("append hint: %v", err)
	}

	var count int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM hint_events").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("hint rows = %d, want 1", count)
	}
}
