package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dailyworklog/server/internal/middleware"
	"github.com/dailyworklog/server/internal/models"
	"github.com/dailyworklog/server/internal/service"
)

// TaskHandler exposes the task lifecycle and the admin listing/search
// surfaces.
type TaskHandler struct {
	tasks *service.TaskService
}

// NewTaskHandler creates a task handler.
func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

type remarkRequest struct {
	Text    string `json:"text" binding:"required,max=200"`
	Minutes int    `json:"minutes" binding:"min=0"`
	Status  string `json:"status" binding:"required,remarkstatus"`
}

type createTaskRequest struct {
	UserName      string          `json:"user_name" binding:"required"`
	Team          string          `json:"team"`
	Date          string          `json:"date" binding:"required"`
	Projects      []string        `json:"projects" binding:"required,min=1"`
	Modules       []string        `json:"modules" binding:"required,min=1"`
	ActivityLeads []string        `json:"activity_leads" binding:"required,min=1"`
	Remarks       []remarkRequest `json:"remarks" binding:"required,min=1,dive"`
}

// Create handles POST /api/tasks. The employee identity comes from the
// token, not the payload.
func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondError(c, err)
		return
	}

	in := service.CreateTaskInput{
		UserName:      req.UserName,
		Team:          req.Team,
		Date:          date,
		Projects:      req.Projects,
		Modules:       req.Modules,
		ActivityLeads: req.ActivityLeads,
		Remarks:       make([]service.RemarkInput, 0, len(req.Remarks)),
	}
	for _, r := range req.Remarks {
		in.Remarks = append(in.Remarks, service.RemarkInput{
			Text:    r.Text,
			Minutes: r.Minutes,
			Status:  r.Status,
		})
	}

	task, err := h.tasks.Create(c.Request.Context(), in, middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"task":    task,
	})
}

type updateRemarkRequest struct {
	Minutes *int    `json:"minutes" binding:"omitempty,min=0"`
	Status  *string `json:"status" binding:"omitempty,remarkstatus"`
}

// UpdateRemark handles PATCH /api/tasks/:taskId/remarks/:remarkId.
func (h *TaskHandler) UpdateRemark(c *gin.Context) {
	var req updateRemarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	task, err := h.tasks.UpdateRemark(
		c.Request.Context(),
		c.Param("taskId"),
		c.Param("remarkId"),
		service.UpdateRemarkInput{Minutes: req.Minutes, Status: req.Status},
		middleware.Actor(c),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Remark updated",
		"task":    task,
	})
}

// List handles GET /api/tasks (admin). All query filters are optional and
// combine with AND.
func (h *TaskHandler) List(c *gin.Context) {
	filter := service.TaskListFilter{
		EmployeeID:  c.Query("employeeId"),
		Team:        c.Query("team"),
		Status:      c.Query("status"),
		FinalStatus: c.Query("finalStatus"),
	}
	if raw := c.Query("date"); raw != "" {
		date, err := parseDate(raw)
		if err != nil {
			respondError(c, err)
			return
		}
		filter.Date = &date
	}

	tasks, err := h.tasks.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// ListMine handles GET /api/tasks/mine: the caller's tasks narrowed to
// remarks still pending.
func (h *TaskHandler) ListMine(c *gin.Context) {
	actor := middleware.Actor(c)
	tasks, err := h.tasks.ListPendingForEmployee(c.Request.Context(), actor.EmployeeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// SearchEmployees handles GET /api/employees/search?q=.
func (h *TaskHandler) SearchEmployees(c *gin.Context) {
	results, err := h.tasks.SearchEmployees(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// parseDate accepts the date formats clients send: plain dates and full
// RFC 3339 timestamps.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, models.NewValidationError("date", "malformed date")
}
