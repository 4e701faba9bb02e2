package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dailyworklog/server/internal/lifecycle"
	"github.com/dailyworklog/server/internal/models"
	"github.com/dailyworklog/server/internal/repository"
)

// employeeSearchLimit caps the search-by-name/id surface.
const employeeSearchLimit = 10

// TaskService owns the task lifecycle: construction, remark updates, and
// the admin listing/search surfaces. Every mutation runs the lifecycle
// reducer before persisting and records an audit entry afterwards.
type TaskService struct {
	tasks *repository.TaskRepository
	audit *AuditLogger
	log   *logrus.Logger
	now   func() time.Time
}

// NewTaskService creates a task service.
func NewTaskService(tasks *repository.TaskRepository, audit *AuditLogger, log *logrus.Logger) *TaskService {
	return &TaskService{
		tasks: tasks,
		audit: audit,
		log:   log,
		now:   time.Now,
	}
}

// RemarkInput is one remark of a daily entry.
type RemarkInput struct {
	Text    string `json:"text"`
	Minutes int    `json:"minutes"`
	Status  string `json:"status"`
}

// CreateTaskInput is an employee's daily entry. The employee identity
// comes from the actor, never from the payload.
type CreateTaskInput struct {
	UserName      string        `json:"user_name"`
	Team          string        `json:"team"`
	Date          time.Time     `json:"date"`
	Projects      []string      `json:"projects"`
	Modules       []string      `json:"modules"`
	ActivityLeads []string      `json:"activity_leads"`
	Remarks       []RemarkInput `json:"remarks"`
}

// UpdateRemarkInput carries the optional fields of a remark update.
// Minutes is additive: it represents additional time logged, not a new
// total.
type UpdateRemarkInput struct {
	Minutes *int    `json:"minutes"`
	Status  *string `json:"status"`
}

// TaskListFilter narrows the admin listing. Empty fields are ignored;
// present fields combine with AND.
type TaskListFilter struct {
	Date        *time.Time
	EmployeeID  string
	Team        string
	Status      string
	FinalStatus string
}

// Create validates a daily entry, builds the task with one remark per
// tuple, derives its status and durations, and persists it. Nothing is
// persisted when validation fails.
func (s *TaskService) Create(ctx context.Context, in CreateTaskInput, actor ActorContext) (*models.Task, error) {
	if err := s.validateCreate(in, actor); err != nil {
		return nil, err
	}

	now := s.now()
	task := &models.Task{
		ID:            uuid.New().String(),
		UserName:      in.UserName,
		EmployeeID:    actor.EmployeeID,
		Team:          in.Team,
		Date:          in.Date,
		Projects:      models.StringList(in.Projects),
		Modules:       models.StringList(in.Modules),
		ActivityLeads: models.StringList(in.ActivityLeads),
		Remarks:       make(models.RemarkList, 0, len(in.Remarks)),
		Status:        models.TaskStatusPending,
		FinalStatus:   models.TaskStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, r := range in.Remarks {
		task.Remarks = append(task.Remarks, models.Remark{
			ID:          uuid.New().String(),
			Text:        r.Text,
			Status:      r.Status,
			FinalStatus: r.Status,
			Minutes:     r.Minutes,
			WorkDate:    now,
		})
	}

	lifecycle.Reduce(task, now)

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	s.audit.RecordTaskCreate(ctx, task, actor)

	s.log.WithFields(logrus.Fields{
		"taskId":     task.ID,
		"employeeId": task.EmployeeID,
		"remarks":    len(task.Remarks),
	}).Info("task created")
	return task, nil
}

// UpdateRemark applies a remark update inside one load-reduce-persist
// cycle and records the before/after snapshots.
func (s *TaskService) UpdateRemark(ctx context.Context, taskID, remarkID string, in UpdateRemarkInput, actor ActorContext) (*models.Task, error) {
	if in.Minutes != nil && *in.Minutes < 0 {
		return nil, models.NewValidationError("minutes", "must not be negative")
	}
	if in.Status != nil && !models.IsValidRemarkStatus(*in.Status) {
		return nil, models.NewValidationError("status", "invalid status value")
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	oldSnapshot := task.Clone()

	remark := task.RemarkByID(remarkID)
	if remark == nil {
		return nil, models.ErrRemarkNotFound
	}

	now := s.now()
	if in.Status != nil {
		remark.Status = *in.Status
	}
	if in.Minutes != nil {
		remark.Minutes += *in.Minutes
	}
	remark.WorkDate = now

	lifecycle.Reduce(task, now)
	task.UpdatedAt = now

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	s.audit.RecordTaskUpdate(ctx, oldSnapshot, task, actor)
	return task, nil
}

// List returns tasks for the admin surface, newest date first.
func (s *TaskService) List(ctx context.Context, f TaskListFilter) ([]models.Task, error) {
	repoFilter := repository.TaskFilter{Date: f.Date}
	if f.EmployeeID != "" {
		repoFilter.EmployeeID = &f.EmployeeID
	}
	if f.Team != "" {
		repoFilter.Team = &f.Team
	}
	if f.Status != "" {
		if !models.IsValidTaskStatus(f.Status) {
			return nil, models.NewValidationError("status", "invalid status value")
		}
		repoFilter.Status = &f.Status
	}
	if f.FinalStatus != "" {
		if !models.IsValidTaskStatus(f.FinalStatus) {
			return nil, models.NewValidationError("finalStatus", "invalid status value")
		}
		repoFilter.FinalStatus = &f.FinalStatus
	}
	return s.tasks.List(ctx, repoFilter)
}

// ListPendingForEmployee returns the caller's tasks with remarks narrowed
// to those still In Progress historically; tasks with nothing pending are
// omitted.
func (s *TaskService) ListPendingForEmployee(ctx context.Context, employeeID string) ([]models.Task, error) {
	tasks, err := s.tasks.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	out := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		pending := make(models.RemarkList, 0, len(task.Remarks))
		for _, r := range task.Remarks {
			if r.FinalStatus == models.RemarkStatusInProgress {
				pending = append(pending, r)
			}
		}
		if len(pending) == 0 {
			continue
		}
		task.Remarks = pending
		out = append(out, task)
	}
	return out, nil
}

// SearchEmployees finds employees by case-insensitive substring of name
// or employee id, deduplicated by employee id.
func (s *TaskService) SearchEmployees(ctx context.Context, q string) ([]repository.EmployeeRef, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []repository.EmployeeRef{}, nil
	}
	return s.tasks.SearchEmployees(ctx, q, employeeSearchLimit)
}

func (s *TaskService) validateCreate(in CreateTaskInput, actor ActorContext) error {
	if actor.EmployeeID == "" {
		return models.NewValidationError("employeeId", "is required")
	}
	if in.UserName == "" {
		return models.NewValidationError("user_name", "is required")
	}
	if in.Date.IsZero() {
		return models.NewValidationError("date", "is required")
	}
	if len(in.Projects) == 0 {
		return models.NewValidationError("projects", "at least one project is required")
	}
	if len(in.Modules) == 0 {
		return models.NewValidationError("modules", "at least one module is required")
	}
	// Activity leads are required alongside projects and modules even
	// though reports never group by them; entries without a lead are not
	// accepted.
	if len(in.ActivityLeads) == 0 {
		return models.NewValidationError("activity_leads", "at least one activity lead is required")
	}
	if len(in.Remarks) == 0 {
		return models.NewValidationError("remarks", "at least one remark is required")
	}
	for _, r := range in.Remarks {
		if strings.TrimSpace(r.Text) == "" {
			return models.NewValidationError("remarks.text", "is required")
		}
		if len(r.Text) > models.MaxRemarkTextLength {
			return models.NewValidationError("remarks.text", "must not exceed 200 characters")
		}
		if !models.IsValidRemarkStatus(r.Status) {
			return models.NewValidationError("remarks.status", "invalid status value")
		}
		if r.Minutes < 0 {
			return models.NewValidationError("remarks.minutes", "must not be negative")
		}
	}
	return nil
}
