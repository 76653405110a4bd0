package api

import (
	"context"
)

type contextKey string

const gameIDContextKey contextKey = "game_id"

// GameIDFromContext extracts the game id set by the routing middleware
func GameIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(gameIDContextKey).(string)
	return id
}

// ContextWithGameID adds a game id to context
func ContextWithGameID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, gameIDContextKey, id)
}
