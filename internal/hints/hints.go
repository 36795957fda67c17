// Package hints asks a language model for a short, kid-friendly
// explanation of a puzzle. Every failure degrades to a fixed message; a
// hint never blocks or ends a game.
package hints

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/maypok86/otter"

	"github.com/abhisek/mathwhiz/internal/llm"
	"github.com/abhisek/mathwhiz/internal/logging"
	"github.com/abhisek/mathwhiz/internal/store"
)

// Fallback messages.
const (
	MsgNoProvider = "AI Hint unavailable (No API Key)."
	MsgError      = "Oops! I couldn't think of a hint right now."
	MsgEmpty      = "Could not generate a hint."
)

// Source says where a hint came from.
type Source string

const (
	SourceLLM      Source = "llm"
	SourceCache    Source = "cache"
	SourceFallback Source = "fallback"
)

// Result is a hint ready to show.
type Result struct {
	Text   string
	Source Source
}

// Config tunes the service.
type Config struct {
	Timeout   time.Duration
	CacheSize int
	CacheTTL  time.Duration
	MaxTokens int
}

func DefaultConfig() Config {
	return Config{
		Timeout:   15 * time.Second,
		CacheSize: 512,
		CacheTTL:  24 * time.Hour,
		MaxTokens: 256,
	}
}

// Service fetches hints. It is safe for concurrent use.
type Service struct {
	provider llm.Provider
	events   store.EventRepo
	cache    otter.Cache[string, string]
	cfg      Config
}

type Option func(*Service)

// WithEventRepo records every hint shown.
func WithEventRepo(repo store.EventRepo) Option {
	return func(s *Service) { s.events = repo }
}

// NewService creates a hint service. A nil provider is allowed: every hint
// is then MsgNoProvider.
func NewService(provider llm.Provider, cfg Config, opts ...Option) (*Service, error) {
	def := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = def.CacheSize
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = def.CacheTTL
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = def.MaxTokens
	}

	cache, err := otter.MustBuilder[string, string](cfg.CacheSize).
		WithTTL(cfg.CacheTTL).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build hint cache: %w", err)
	}

	s := &Service{provider: provider, cache: cache, cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Available reports whether a provider is configured.
func (s *Service) Available() bool {
	return s != nil && s.provider != nil
}

// Hint returns a hint for question. It never fails; problems are logged
// and replaced by one of the fallback messages.
func (s *Service) Hint(ctx context.Context, question string) Result {
	if !s.Available() {
		return Result{Text: MsgNoProvider, Source: SourceFallback}
	}

	key := cacheKey(question)
	if text, ok := s.cache.Get(key); ok {
		slog.Log(ctx, logging.LevelTrace, "Hint cache hit", "question", question)
		return Result{Text: text, Source: SourceCache}
	}

	if llm.PurposeFrom(ctx) == "unknown" {
		ctx = llm.WithPurpose(ctx, llm.PurposeHint)
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	req := llm.UserPrompt(systemPrompt, Prompt(question))
	req.Schema = schema
	req.MaxTokens = s.cfg.MaxTokens
	req.Temperature = 0.7

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			slog.DebugContext(ctx, "Hint request canceled", "question", question)
		} else {
			slog.WarnContext(ctx, "Hint request failed", "question", question, "error", err)
		}
		return Result{Text: MsgError, Source: SourceFallback}
	}

	text := parseHint(resp.Content)
	if text == "" {
		return Result{Text: MsgEmpty, Source: SourceFallback}
	}
	s.cache.Set(key, text)
	return Result{Text: text, Source: SourceLLM}
}

// Lookup is Hint plus a hint event in the event log, when one is set.
func (s *Service) Lookup(ctx context.Context, sessionID, puzzleID, question string) Result {
	start := time.Now()
	res := s.Hint(ctx, question)

	if s != nil && s.events != nil && ctx.Err() == nil {
		err := s.events.AppendHintEvent(ctx, store.HintEventData{
			SessionID: sessionID,
			PuzzleID:  puzzleID,
			Question:  question,
			Hint:      res.Text,
			Source:    string(res.Source),
			LatencyMs: time.Since(start).Milliseconds(),
		})
		if err != nil {
			slog.WarnContext(ctx, "Failed to record hint event", "error", err)
		}
	}
	return res
}

// Close stops the cache's background goroutines.
func (s *Service) Close() {
	if s != nil {
		s.cache.Close()
	}
}

func cacheKey(question string) string {
	return strings.Join(strings.Fields(question), " ")
}

// parseHint accepts the schema shape {"hint": "..."} and, from providers
// that ignore the schema, a bare JSON string or plain text.
func parseHint(raw json.RawMessage) string {
	var obj struct {
		Hint string `json:"hint"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Hint != "" {
		return strings.TrimSpace(obj.Hint)
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return strings.TrimSpace(str)
	}
	if json.Valid(raw) {
		return ""
	}
	return strings.TrimSpace(string(raw))
}
