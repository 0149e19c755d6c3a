package model

import (
	"encoding/json"
	"time"
)

// Project represents a design-canvas project. Elements is an opaque,
// client-defined JSON array; the server stores and returns it untouched.
type Project struct {
	ID        int64
	Title     string
	Thumbnail *string
	Elements  json.RawMessage
	IsExample bool
	OwnerID   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Owner returns the owning user ID for authorization checks.
func (p *Project) Owner() int64 { return p.OwnerID }

// IsPublic reports whether the project is readable by any caller.
func (p *Project) IsPublic() bool { return p.IsExample }

// CreateProjectRequest represents a project creation request.
type CreateProjectRequest struct {
	Title     string          `json:"title"`
	Thumbnail *string         `json:"thumbnail"`
	Elements  json.RawMessage `json:"elements"`
	IsExample bool            `json:"is_example"`
}

// UpdateProjectRequest represents a partial project update. Nil fields are
// left unchanged.
type UpdateProjectRequest struct {
	Title     *string         `json:"title"`
	Thumbnail *string         `json:"thumbnail"`
	Elements  json.RawMessage `json:"elements"`
}

// ProjectResponse represents a project in API responses.
type ProjectResponse struct {
	ID        int64           `json:"id"`
	Title     string          `json:"title"`
	Thumbnail *string         `json:"thumbnail"`
	Elements  json.RawMessage `json:"elements"`
	IsExample bool            `json:"is_example"`
	OwnerID   int64           `json:"owner_id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProjectToResponse converts a Project to its API representation.
func ProjectToResponse(p *Project) ProjectResponse {
	elements := p.Elements
	if len(elements) == 0 {
		elements = json.RawMessage("[]")
	}
	return ProjectResponse{
		ID:        p.ID,
		Title:     p.Title,
		Thumbnail: p.Thumbnail,
		Elements:  elements,
		IsExample: p.IsExample,
		OwnerID:   p.OwnerID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ProjectsToResponse converts a slice of projects to API representations.
func ProjectsToResponse(projects []Project) []ProjectResponse {
	result := make([]ProjectResponse, len(projects))
	for i := range projects {
		result[i] = ProjectToResponse(&projects[i])
	}
	return result
}
