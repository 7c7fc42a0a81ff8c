package middleware

import (
	"context"

	"github.com/praxisbill/lpm_backend/internal/core/domain"
)

const actorCtxKey = contextKey("actor")

// GetActorFromContext retrieves the authenticated actor from a context.
func GetActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorCtxKey).(domain.Actor)
	return actor, ok
}

// WithActor stores an actor in the context. Exposed for tests and the auth middleware.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorCtxKey, actor)
}
