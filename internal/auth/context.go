package auth

import "context"

// ContextKey is a type for context keys to avoid collisions
type ContextKey string

// ContextKeyAdmin holds the logged-in admin username.
const ContextKeyAdmin ContextKey = "admin"

func ContextWithAdmin(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, ContextKeyAdmin, username)
}

func AdminFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(ContextKeyAdmin).(string)
	return username, ok && username != ""
}
