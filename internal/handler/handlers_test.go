package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/KehaoC/GF/internal/crypto"
	"github.com/KehaoC/GF/internal/middleware"
	"github.com/KehaoC/GF/internal/model"
	"github.com/KehaoC/GF/internal/repository"
	"github.com/KehaoC/GF/internal/service"
)

// memUserRepo and memProjectRepo are minimal in-memory stand-ins for the
// MySQL repositories, enough to drive the handlers end to end.

type memUserRepo struct {
	nextID int64
	users  map[string]*model.User
}

func (r *memUserRepo) Create(_ context.Context, u *model.User) error {
	if _, ok := r.users[u.Username]; ok {
		return repository.ErrDuplicateUsername
	}
	r.nextID++
	u.ID = r.nextID
	r.users[u.Username] = u
	return nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) Update(_ context.Context, u *model.User) error { return nil }

type memProjectRepo struct {
	nextID   int64
	projects map[int64]*model.Project
}

func (r *memProjectRepo) Create(_ context.Context, p *model.Project) error {
	r.nextID++
	p.ID = r.nextID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.projects[p.ID] = p
	return nil
}

func (r *memProjectRepo) GetByID(_ context.Context, id int64) (*model.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, repository.ErrProjectNotFound
	}
	return p, nil
}

func (r *memProjectRepo) ListByOwner(_ context.Context, ownerID int64, offset, limit int) ([]model.Project, error) {
	var result []model.Project
	for _, p := range r.projects {
		if p.OwnerID == ownerID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *memProjectRepo) ListExamples(_ context.Context, offset, limit int) ([]model.Project, error) {
	var result []model.Project
	for _, p := range r.projects {
		if p.IsExample {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *memProjectRepo) Update(_ context.Context, p *model.Project) error {
	if _, ok := r.projects[p.ID]; !ok {
		return repository.ErrProjectNotFound
	}
	r.projects[p.ID] = p
	return nil
}

func (r *memProjectRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.projects[id]; !ok {
		return repository.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

func newTestRouter() *chi.Mux {
	tokens := crypto.NewTokenService("test-secret", time.Hour)
	authService := service.NewAuthService(&memUserRepo{users: make(map[string]*model.User)}, tokens)
	projectService := service.NewProjectService(&memProjectRepo{projects: make(map[int64]*model.Project)})

	authHandler := NewAuthHandler(authService)
	projectHandler := NewProjectHandler(projectService)

	r := chi.NewRouter()
	r.Post("/api/v1/auth/register", authHandler.HandleRegister)
	r.Post("/api/v1/auth/login", authHandler.HandleLogin)
	r.Get("/api/v1/projects/examples", projectHandler.HandleListExamples)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(authService))
		r.Post("/api/v1/projects", projectHandler.HandleCreate)
		r.Get("/api/v1/projects/{project_id}", projectHandler.HandleGet)
		r.Delete("/api/v1/projects/{project_id}", projectHandler.HandleDelete)
	})
	return r
}

func do(t *testing.T, router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func registerAndLogin(t *testing.T, router http.Handler, username string) string {
	t.Helper()
	rec := do(t, router, http.MethodPost, "/api/v1/auth/register", "",
		`{"username":"`+username+`","password":"password123"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	rec = do(t, router, http.MethodPost, "/api/v1/auth/login", "",
		`{"username":"`+username+`","password":"password123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp model.TokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding login response: %v", err)
	}
	if resp.AccessToken == "" || resp.TokenType != "bearer" {
		t.Fatalf("unexpected login response: %+v", resp)
	}
	return resp.AccessToken
}

func TestLoginFailuresAreByteIdentical(t *testing.T) {
	router := newTestRouter()
	registerAndLogin(t, router, "alice")

	unknown := do(t, router, http.MethodPost, "/api/v1/auth/login", "",
		`{"username":"nobody","password":"password123"}`)
	wrongPw := do(t, router, http.MethodPost, "/api/v1/auth/login", "",
		`{"username":"alice","password":"wrong"}`)

	if unknown.Code != http.StatusUnauthorized || wrongPw.Code != http.StatusUnauthorized {
		t.Fatalf("statuses = %d, %d, want both %d", unknown.Code, wrongPw.Code, http.StatusUnauthorized)
	}
	if unknown.Body.String() != wrongPw.Body.String() {
		t.Errorf("error bodies differ: %q vs %q", unknown.Body.String(), wrongPw.Body.String())
	}
}

func TestProjectOwnershipScenario(t *testing.T) {
	router := newTestRouter()
	aliceToken := registerAndLogin(t, router, "alice")
	bobToken := registerAndLogin(t, router, "bob")

	rec := do(t, router, http.MethodPost, "/api/v1/projects", aliceToken, `{"title":"Sketch"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var created model.ProjectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decoding create response: %v", err)
	}

	// bob cannot read or delete alice's private project
	if rec := do(t, router, http.MethodGet, "/api/v1/projects/1", bobToken, ""); rec.Code != http.StatusForbidden {
		t.Errorf("foreign get status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if rec := do(t, router, http.MethodDelete, "/api/v1/projects/1", bobToken, ""); rec.Code != http.StatusForbidden {
		t.Errorf("foreign delete status = %d, want %d", rec.Code, http.StatusForbidden)
	}

	// alice deletes it, then a subsequent get is 404
	if rec := do(t, router, http.MethodDelete, "/api/v1/projects/1", aliceToken, ""); rec.Code != http.StatusNoContent {
		t.Errorf("owner delete status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if rec := do(t, router, http.MethodGet, "/api/v1/projects/1", aliceToken, ""); rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestProjectMissingIsNotFoundForAnyone(t *testing.T) {
	router := newTestRouter()
	token := registerAndLogin(t, router, "alice")

	if rec := do(t, router, http.MethodGet, "/api/v1/projects/999", token, ""); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestExampleProjectPubliclyListed(t *testing.T) {
	router := newTestRouter()
	token := registerAndLogin(t, router, "alice")

	rec := do(t, router, http.MethodPost, "/api/v1/projects", token, `{"title":"Demo","is_example":true}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}

	// No Authorization header at all.
	rec = do(t, router, http.MethodGet, "/api/v1/projects/examples", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("examples status = %d, want %d", rec.Code, http.StatusOK)
	}
	var projects []model.ProjectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &projects); err != nil {
		t.Fatalf("decoding examples response: %v", err)
	}
	if len(projects) != 1 || projects[0].Title != "Demo" {
		t.Errorf("examples = %+v, want one project titled Demo", projects)
	}
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	router := newTestRouter()

	rec := do(t, router, http.MethodPost, "/api/v1/projects", "", `{"title":"Sketch"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if got := rec.Header().Get("WWW-Authenticate"); got != "Bearer" {
		t.Errorf("WWW-Authenticate = %q, want %q", got, "Bearer")
	}
}
