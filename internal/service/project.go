package service

import (
	"context"
	"errors"

	"github.com/KehaoC/GF/internal/model"
	"github.com/KehaoC/GF/internal/repository"
)

var ErrProjectNotFound = errors.New("project not found")

// ProjectRepository is the persistence surface the project service needs.
type ProjectRepository interface {
	Create(ctx context.Context, p *model.Project) error
	GetByID(ctx context.Context, id int64) (*model.Project, error)
	ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]model.Project, error)
	ListExamples(ctx context.Context, offset, limit int) ([]model.Project, error)
	Update(ctx context.Context, p *model.Project) error
	Delete(ctx context.Context, id int64) error
}

// ProjectService handles design-project business logic. Every disclosure or
// mutation of a loaded project goes through the authorization checks.
type ProjectService struct {
	repo ProjectRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(repo ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

// Create stores a new project owned by the caller.
func (s *ProjectService) Create(ctx context.Context, userID int64, req model.CreateProjectRequest) (model.ProjectResponse, error) {
	title := req.Title
	if title == "" {
		title = "Untitled"
	}

	project := &model.Project{
		Title:     title,
		Thumbnail: req.Thumbnail,
		Elements:  req.Elements,
		IsExample: req.IsExample,
		OwnerID:   userID,
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return model.ProjectResponse{}, err
	}

	return model.ProjectToResponse(project), nil
}

// Get returns a project readable by the caller: their own, or any example.
func (s *ProjectService) Get(ctx context.Context, userID, projectID int64) (model.ProjectResponse, error) {
	project, err := s.load(ctx, projectID)
	if err != nil {
		return model.ProjectResponse{}, err
	}

	if err := authorizeReadable(project, userID); err != nil {
		return model.ProjectResponse{}, err
	}

	return model.ProjectToResponse(project), nil
}

// List returns a page of the caller's projects, most recently updated first.
func (s *ProjectService) List(ctx context.Context, userID int64, offset, limit int) ([]model.ProjectResponse, error) {
	projects, err := s.repo.ListByOwner(ctx, userID, offset, limit)
	if err != nil {
		return nil, err
	}
	return model.ProjectsToResponse(projects), nil
}

// ListExamples returns a page of public example projects, newest first.
func (s *ProjectService) ListExamples(ctx context.Context, offset, limit int) ([]model.ProjectResponse, error) {
	projects, err := s.repo.ListExamples(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return model.ProjectsToResponse(projects), nil
}

// Update applies a partial update to a project owned by the caller.
func (s *ProjectService) Update(ctx context.Context, userID, projectID int64, req model.UpdateProjectRequest) (model.ProjectResponse, error) {
	project, err := s.load(ctx, projectID)
	if err != nil {
		return model.ProjectResponse{}, err
	}

	if err := authorizeOwner(project, userID); err != nil {
		return model.ProjectResponse{}, err
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Thumbnail != nil {
		project.Thumbnail = req.Thumbnail
	}
	if req.Elements != nil {
		project.Elements = req.Elements
	}

	if err := s.repo.Update(ctx, project); err != nil {
		return model.ProjectResponse{}, err
	}

	return model.ProjectToResponse(project), nil
}

// Delete removes a project owned by the caller.
func (s *ProjectService) Delete(ctx context.Context, userID, projectID int64) error {
	project, err := s.load(ctx, projectID)
	if err != nil {
		return err
	}

	if err := authorizeOwner(project, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return ErrProjectNotFound
		}
		return err
	}
	return nil
}

func (s *ProjectService) load(ctx context.Context, id int64) (*model.Project, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}
