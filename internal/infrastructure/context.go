package infrastructure

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const runIDContextKey contextKey = "run_id"

// NewRunID creates a unique identifier for one pipeline execution.
func NewRunID() string {
	return uuid.New().String()
}

// WithRunID stores a run ID in the context.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDContextKey, id)
}

// RunID returns the run ID from the context, or "" when absent.
func RunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDContextKey).(string); ok {
		return id
	}
	return ""
}

// EnsureRunID returns a context that carries a run ID, generating one
// when the context has none.
func EnsureRunID(ctx context.Context) context.Context {
	if RunID(ctx) == "" {
		return WithRunID(ctx, NewRunID())
	}
	return ctx
}
