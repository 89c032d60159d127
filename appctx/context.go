package appctx

import "context"

// Context key for storing the invocation ID
type contextKey string

const InvocationIDContextKey contextKey = "invocation_id"

// SetInvocationID adds the dispatch invocation ID to the context so log lines
// across the dispatch pipeline can be correlated
func SetInvocationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, InvocationIDContextKey, id)
}

// GetInvocationID extracts the dispatch invocation ID from the context
func GetInvocationID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(InvocationIDContextKey).(string)
	return id, ok
}
