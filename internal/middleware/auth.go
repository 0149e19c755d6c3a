package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/KehaoC/GF/internal/model"
)

type contextKey string

const userKey contextKey = "user"

// UserResolver resolves a bearer token to the user it names.
type UserResolver interface {
	ResolveToken(ctx context.Context, token string) (*model.User, error)
	RequireActive(user *model.User) error
}

// Auth returns middleware that authenticates requests via a Bearer token in
// the Authorization header and rejects inactive accounts. Every token
// failure answers the same 401 with a WWW-Authenticate hint; only the
// inactive-account case is distinguishable, since it follows successful
// authentication.
func Auth(resolver UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || token == "" {
				unauthorized(w)
				return
			}

			user, err := resolver.ResolveToken(r.Context(), token)
			if err != nil {
				unauthorized(w)
				return
			}

			if err := resolver.RequireActive(user); err != nil {
				writeJSONError(w, http.StatusBadRequest, "inactive user")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext extracts the authenticated user from the request context.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeJSONError(w, http.StatusUnauthorized, "could not validate credentials")
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
