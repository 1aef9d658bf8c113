package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jcheng-dev/sportlog/internal/repositories"
	"github.com/jcheng-dev/sportlog/internal/utils"
)

type contextKey string

const userIDKey contextKey = "userID"

// RequireAuth resolves the bearer token against the session store before
// the wrapped handler runs. Requests with a missing or unknown token are
// rejected here; no other component sees them.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		token := bearerToken(r)
		if token == "" {
			utils.JSONError(w, http.StatusUnauthorized, "Unauthorized.")
			return
		}

		userID, err := repositories.ResolveSession(token)
		if err != nil {
			if !errors.Is(err, repositories.ErrNotFound) {
				log.Printf("session lookup failed: %v", err)
			}
			utils.JSONError(w, http.StatusUnauthorized, "Unauthorized.")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID returns the authenticated caller set by RequireAuth.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
