package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/KehaoC/GF/internal/model"
)

var ErrProjectNotFound = errors.New("project not found")

// ProjectRepository handles project persistence operations.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, title, thumbnail, elements, is_example, owner_id, created_at, updated_at`

// Create inserts a new project and sets the generated ID on the struct.
func (r *ProjectRepository) Create(ctx context.Context, p *model.Project) error {
	query := `INSERT INTO projects (title, thumbnail, elements, is_example, owner_id) VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, p.Title, p.Thumbnail, elementsOrEmpty(p.Elements), p.IsExample, p.OwnerID)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	p.ID = id
	return nil
}

// GetByID retrieves a project by its ID.
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`

	p := &model.Project{}
	var elements []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Thumbnail, &elements, &p.IsExample,
		&p.OwnerID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	p.Elements = json.RawMessage(elements)

	return p, nil
}

// ListByOwner retrieves a page of a user's projects, most recently updated first.
func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects
		WHERE owner_id = ? ORDER BY updated_at DESC LIMIT ? OFFSET ?`
	return r.list(ctx, query, ownerID, limit, offset)
}

// ListExamples retrieves a page of public example projects, newest first.
func (r *ProjectRepository) ListExamples(ctx context.Context, offset, limit int) ([]model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects
		WHERE is_example = TRUE ORDER BY created_at DESC LIMIT ? OFFSET ?`
	return r.list(ctx, query, limit, offset)
}

// Update persists title, thumbnail, elements and example-flag changes.
func (r *ProjectRepository) Update(ctx context.Context, p *model.Project) error {
	query := `UPDATE projects SET title = ?, thumbnail = ?, elements = ?, is_example = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, p.Title, p.Thumbnail, elementsOrEmpty(p.Elements), p.IsExample, p.ID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		// Row may exist with unchanged values; distinguish via lookup.
		if _, err := r.GetByID(ctx, p.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a project by ID.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) list(ctx context.Context, query string, args ...any) ([]model.Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var p model.Project
		var elements []byte
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Thumbnail, &elements, &p.IsExample,
			&p.OwnerID, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		p.Elements = json.RawMessage(elements)
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

func elementsOrEmpty(elements json.RawMessage) []byte {
	if len(elements) == 0 {
		return []byte("[]")
	}
	return elements
}
