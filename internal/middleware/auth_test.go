package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KehaoC/GF/internal/model"
)

type fakeResolver struct {
	users map[string]*model.User
}

func (f *fakeResolver) ResolveToken(_ context.Context, token string) (*model.User, error) {
	user, ok := f.users[token]
	if !ok {
		return nil, errors.New("could not validate credentials")
	}
	return user, nil
}

func (f *fakeResolver) RequireActive(user *model.User) error {
	if !user.IsActive {
		return errors.New("inactive user")
	}
	return nil
}

func protected(resolver *fakeResolver) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(user.Username))
	})
	return Auth(resolver)(next)
}

func newResolver() *fakeResolver {
	return &fakeResolver{users: map[string]*model.User{
		"good-token":     {ID: 1, Username: "alice", IsActive: true},
		"inactive-token": {ID: 2, Username: "bob", IsActive: false},
	}}
}

func request(handler http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAuthMissingHeader(t *testing.T) {
	rec := request(protected(newResolver()), "")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if got := rec.Header().Get("WWW-Authenticate"); got != "Bearer" {
		t.Errorf("WWW-Authenticate = %q, want %q", got, "Bearer")
	}
}

func TestAuthWrongScheme(t *testing.T) {
	rec := request(protected(newResolver()), "Basic YWxpY2U6cHc=")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthInvalidToken(t *testing.T) {
	rec := request(protected(newResolver()), "Bearer bad-token")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if got := rec.Header().Get("WWW-Authenticate"); got != "Bearer" {
		t.Errorf("WWW-Authenticate = %q, want %q", got, "Bearer")
	}
}

func TestAuthUniformRejection(t *testing.T) {
	// A missing header and an invalid token must answer identically.
	handler := protected(newResolver())

	missing := request(handler, "")
	invalid := request(handler, "Bearer bad-token")

	if missing.Code != invalid.Code {
		t.Errorf("status mismatch: %d vs %d", missing.Code, invalid.Code)
	}
	if missing.Body.String() != invalid.Body.String() {
		t.Errorf("body mismatch: %q vs %q", missing.Body.String(), invalid.Body.String())
	}
}

func TestAuthValidToken(t *testing.T) {
	rec := request(protected(newResolver()), "Bearer good-token")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Body.String() != "alice" {
		t.Errorf("body = %q, want %q", rec.Body.String(), "alice")
	}
}

func TestAuthInactiveUser(t *testing.T) {
	rec := request(protected(newResolver()), "Bearer inactive-token")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
