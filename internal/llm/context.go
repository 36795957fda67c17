package llm

import "context"

type contextKey string

const purposeKey contextKey = "llm_purpose"

// Request purposes recorded in the event log.
const (
	PurposeHint    = "hint"
	PurposeCLIHint = "cli-hint"
)

// WithPurpose labels requests made with ctx for the event log.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}
