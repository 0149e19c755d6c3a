package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/KehaoC/GF/internal/middleware"
	"github.com/KehaoC/GF/internal/model"
	"github.com/KehaoC/GF/internal/service"
)

// ProjectHandler handles HTTP requests for project operations.
type ProjectHandler struct {
	service *service.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(svc *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: svc}
}

// HandleList handles GET /api/v1/projects requests.
func (h *ProjectHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("could not validate credentials"))
		return
	}

	offset, limit := pagination(r)
	projects, err := h.service.List(r.Context(), user.ID, offset, limit)
	if err != nil {
		serviceError(w, err)
		return
	}

	if projects == nil {
		projects = []model.ProjectResponse{}
	}
	writeJSON(w, http.StatusOK, projects)
}

// HandleListExamples handles GET /api/v1/projects/examples requests.
// Example projects are public: no authentication required.
func (h *ProjectHandler) HandleListExamples(w http.ResponseWriter, r *http.Request) {
	offset, limit := pagination(r)
	projects, err := h.service.ListExamples(r.Context(), offset, limit)
	if err != nil {
		serviceError(w, err)
		return
	}

	if projects == nil {
		projects = []model.ProjectResponse{}
	}
	writeJSON(w, http.StatusOK, projects)
}

// HandleCreate handles POST /api/v1/projects requests.
func (h *ProjectHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("could not validate credentials"))
		return
	}

	var req model.CreateProjectRequest
	if !decodeJSON(w, r, 10<<20, &req) {
		return
	}

	resp, err := h.service.Create(r.Context(), user.ID, req)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleGet handles GET /api/v1/projects/{project_id} requests.
func (h *ProjectHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("could not validate credentials"))
		return
	}

	projectID, ok := pathID(w, r, "project_id")
	if !ok {
		return
	}

	resp, err := h.service.Get(r.Context(), user.ID, projectID)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleUpdate handles PUT /api/v1/projects/{project_id} requests.
func (h *ProjectHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("could not validate credentials"))
		return
	}

	projectID, ok := pathID(w, r, "project_id")
	if !ok {
		return
	}

	var req model.UpdateProjectRequest
	if !decodeJSON(w, r, 10<<20, &req) {
		return
	}

	resp, err := h.service.Update(r.Context(), user.ID, projectID, req)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleDelete handles DELETE /api/v1/projects/{project_id} requests.
func (h *ProjectHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("could not validate credentials"))
		return
	}

	projectID, ok := pathID(w, r, "project_id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), user.ID, projectID); err != nil {
		serviceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pathID parses a numeric URL parameter, answering 400 on garbage.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid "+name))
		return 0, false
	}
	return id, true
}

// pagination reads skip/limit query params with the defaults 0 and 100.
func pagination(r *http.Request) (offset, limit int) {
	offset, limit = 0, 100
	if v := r.URL.Query().Get("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	return offset, limit
}
