package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dailyworklog/server/internal/service"
)

// ProjectHandler exposes the project catalog.
type ProjectHandler struct {
	projects *service.ProjectService
}

// NewProjectHandler creates a project handler.
func NewProjectHandler(projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

type createProjectRequest struct {
	ProjectName string   `json:"projectName" binding:"required"`
	Client      string   `json:"client" binding:"required"`
	ProjectLead string   `json:"projectLead" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Modules     []string `json:"modules" binding:"required,min=1"`
}

// Create handles POST /api/projects (admin).
func (h *ProjectHandler) Create(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}

	project, err := h.projects.Create(c.Request.Context(), service.CreateProjectInput{
		ProjectName: req.ProjectName,
		Client:      req.Client,
		ProjectLead: req.ProjectLead,
		Category:    req.Category,
		Modules:     req.Modules,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Project submitted successfully!",
		"project": project,
	})
}

// List handles GET /api/projects.
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projects.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}
