package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dailyworklog/server/internal/models"
)

// ProjectRepository persists the project catalog.
type ProjectRepository struct {
	db *sqlx.DB
}

// NewProjectRepository creates a project repository around a db handle.
func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, project_name, client, project_lead, category, modules, created_at, updated_at`

// Create inserts a new project row.
func (r *ProjectRepository) Create(ctx context.Context, p *models.Project) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO projects (`+projectColumns+`)
		VALUES (:id, :project_name, :client, :project_lead, :category, :modules, :created_at, :updated_at)`,
		p)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// List returns all projects, newest first.
func (r *ProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.SelectContext(ctx, &projects,
		`SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}
