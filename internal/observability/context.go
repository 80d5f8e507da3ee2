package observability

import (
	"context"
)

// Context keys for observability data.
type contextKey string

const (
	runIDKey contextKey = "run_id"
	modeKey  contextKey = "mode"
)

// WithRunID adds a collection-run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// RunIDFromContext retrieves the run ID from context.
// Returns empty string if not present.
func RunIDFromContext(ctx context.Context) string {
	if v := ctx.Value(runIDKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// WithMode adds the run mode to the context.
func WithMode(ctx context.Context, mode string) context.Context {
	return context.WithValue(ctx, modeKey, mode)
}

// ModeFromContext retrieves the run mode from context.
// Returns empty string if not present.
func ModeFromContext(ctx context.Context) string {
	if v := ctx.Value(modeKey); v != nil {
		if mode, ok := v.(string); ok {
			return mode
		}
	}
	return ""
}
