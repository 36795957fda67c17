package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a looked-up row does not exist.
var ErrNotFound = errors.New("not found")

// KV is the string key-value contract gameplay code depends on.
// Get reports ok=false for absent keys.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	// Keys lists stored keys starting with prefix in lexical order.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// AnswerEventData captures one judged answer.
type AnswerEventData struct {
	SessionID     string
	PuzzleID      string
	Tier          string
	Question      string
	Chosen        int
	CorrectAnswer int
	Correct       bool
	ScoreAfter    int
	TimeMs        int64
}

// AnswerEvent is a persisted AnswerEventData.
type AnswerEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AnswerEventData
}

// Session event actions.
const (
	SessionStart = "start"
	SessionEnd   = "end"
)

// SessionEventData captures the start or end of a play session.
type SessionEventData struct {
	SessionID      string
	Action         string
	Tier           string
	Score          int
	CorrectCount   int
	IncorrectCount int
	HighScore      int
	DurationSecs   int
}

// SessionEvent is a persisted SessionEventData.
type SessionEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// HintEventData captures one hint shown to the player.
type HintEventData struct {
	SessionID string
	PuzzleID  string
	Question  string
	Hint      string
	Source    string
	LatencyMs int64
}

// LLMRequestEventData captures a single LLM request.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a persisted LLMRequestEventData.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM calls grouped by purpose or model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// TierTotals aggregates answers for one tier across all sessions.
type TierTotals struct {
	Tier      string
	Answers   int
	Correct   int
	BestScore int
}

// EventRepo provides append and query access to the event log.
type EventRepo interface {
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendHintEvent(ctx context.Context, data HintEventData) error
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// RecentSessions returns completed sessions, newest first.
	RecentSessions(ctx context.Context, limit int) ([]SessionEvent, error)

	// AnswersForSession returns a session's answers in the order given.
	AnswersForSession(ctx context.Context, sessionID string) ([]AnswerEvent, error)

	// TierTotals aggregates answers per tier.
	TierTotals(ctx context.Context) ([]TierTotals, error)

	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns ErrNotFound if no event has the id.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
