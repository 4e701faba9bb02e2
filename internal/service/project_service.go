package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dailyworklog/server/internal/models"
	"github.com/dailyworklog/server/internal/repository"
)

// ProjectService maintains the project catalog employees report against.
type ProjectService struct {
	projects *repository.ProjectRepository
}

// NewProjectService creates a project service.
func NewProjectService(projects *repository.ProjectRepository) *ProjectService {
	return &ProjectService{projects: projects}
}

// CreateProjectInput is a new catalog entry.
type CreateProjectInput struct {
	ProjectName string   `json:"projectName"`
	Client      string   `json:"client"`
	ProjectLead string   `json:"projectLead"`
	Category    string   `json:"category"`
	Modules     []string `json:"modules"`
}

// Create validates and persists a new project.
func (s *ProjectService) Create(ctx context.Context, in CreateProjectInput) (*models.Project, error) {
	switch {
	case in.ProjectName == "":
		return nil, models.NewValidationError("projectName", "is required")
	case in.Client == "":
		return nil, models.NewValidationError("client", "is required")
	case in.ProjectLead == "":
		return nil, models.NewValidationError("projectLead", "is required")
	case in.Category == "":
		return nil, models.NewValidationError("category", "is required")
	case len(in.Modules) == 0:
		return nil, models.NewValidationError("modules", "at least one module is required")
	}

	now := time.Now().UTC()
	project := &models.Project{
		ID:          uuid.New().String(),
		ProjectName: in.ProjectName,
		Client:      in.Client,
		ProjectLead: in.ProjectLead,
		Category:    in.Category,
		Modules:     models.StringList(in.Modules),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// List returns the full catalog.
func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	return s.projects.List(ctx)
}
