package middleware

import (
	"context"
	"net/http"

	"sampleroom-api/internal/model"
)

// ActorKey is the context key for the acting user.
const ActorKey contextKey = "actor"

// Actor injects the acting user's identity into the request context. The
// caller supplies it via the X-Actor-ID header; without one, mutations are
// attributed to the configured default actor. Real authentication can replace
// this middleware without touching handlers or services.
func Actor(defaultActorID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actorID := r.Header.Get("X-Actor-ID")
			if actorID == "" {
				actorID = defaultActorID
			}

			ctx := context.WithValue(r.Context(), ActorKey, model.ActorContext{UserID: actorID})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetActor retrieves the acting user from context.
func GetActor(ctx context.Context) model.ActorContext {
	if actor, ok := ctx.Value(ActorKey).(model.ActorContext); ok {
		return actor
	}
	return model.ActorContext{UserID: "system"}
}
