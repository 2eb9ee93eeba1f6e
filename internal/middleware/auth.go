package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dvloasia/pagehost/internal/domain"
)

type contextKey string

const userContextKey contextKey = "user"

// Authenticator resolves an opaque session token to a user. Implemented
// by the auth service; the hosting core never sees credentials.
type Authenticator interface {
	UserByToken(ctx context.Context, token string) (*domain.User, error)
}

// RequireUser rejects requests without a valid session token and stores
// the resolved user in the request context.
func RequireUser(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				writeAuthError(w, "missing authorization header")
				return
			}

			user, err := auth.UserByToken(r.Context(), token)
			if err != nil {
				writeAuthError(w, "invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser retrieves the authenticated user from the request context.
func GetUser(ctx context.Context) *domain.User {
	u, _ := ctx.Value(userContextKey).(*domain.User)
	return u
}

// SessionToken extracts the bearer token from a request, for handlers
// that need the raw token (logout).
func SessionToken(r *http.Request) string {
	return extractBearerToken(r)
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
