package middleware

import (
	"context"
	"net/http"
	"strings"

	"binder-backend/internal/services"
)

type contextKey string

const actorIDKey contextKey = "actor_id"

// AuthMiddleware creates a middleware enforcing the bearer-credential
// boundary. Without a valid actor token no engine logic runs.
func AuthMiddleware(tokenService *services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondError(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondError(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			actorID, err := tokenService.ValidateToken(parts[1])
			if err != nil {
				respondError(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), actorIDKey, actorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetActorID extracts the actor ID from context
func GetActorID(ctx context.Context) string {
	actorID, ok := ctx.Value(actorIDKey).(string)
	if !ok {
		return ""
	}
	return actorID
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
