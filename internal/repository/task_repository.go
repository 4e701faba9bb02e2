package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/dailyworklog/server/internal/models"
)

// TaskRepository persists tasks. Each task row carries its remark list as
// a JSON column, so a single INSERT or UPDATE is one atomic
// load-reduce-persist cycle.
type TaskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository creates a task repository around a db handle.
func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// TaskFilter narrows List. All fields are optional and combined with AND.
type TaskFilter struct {
	Date        *time.Time
	EmployeeID  *string
	Team        *string
	Status      *string
	FinalStatus *string
}

// EmployeeRef is a search hit from SearchEmployees.
type EmployeeRef struct {
	UserName   string `db:"user_name" json:"user_name"`
	EmployeeID string `db:"employee_id" json:"employeeId"`
}

const taskColumns = `id, user_name, employee_id, team, date, projects, modules, activity_leads,
	remarks, status, final_status, total_time_spent, completed_at, on_hold_at, created_at, updated_at`

// Create inserts a new task row.
func (r *TaskRepository) Create(ctx context.Context, t *models.Task) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (:id, :user_name, :employee_id, :team, :date, :projects, :modules, :activity_leads,
			:remarks, :status, :final_status, :total_time_spent, :completed_at, :on_hold_at, :created_at, :updated_at)`,
		t)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// GetByID fetches a task by id.
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	var t models.Task
	err := r.db.GetContext(ctx, &t, r.db.Rebind(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &t, nil
}

// Update rewrites the full task row.
func (r *TaskRepository) Update(ctx context.Context, t *models.Task) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE tasks SET
			user_name = :user_name, employee_id = :employee_id, team = :team, date = :date,
			projects = :projects, modules = :modules, activity_leads = :activity_leads,
			remarks = :remarks, status = :status, final_status = :final_status,
			total_time_spent = :total_time_spent, completed_at = :completed_at,
			on_hold_at = :on_hold_at, updated_at = :updated_at
		WHERE id = :id`,
		t)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrTaskNotFound
	}
	return nil
}

// List returns tasks matching the filter, newest date first.
func (r *TaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	where := make([]string, 0, 5)
	args := make([]interface{}, 0, 5)

	if filter.Date != nil {
		where = append(where, "date = ?")
		args = append(args, *filter.Date)
	}
	if filter.EmployeeID != nil {
		where = append(where, "employee_id = ?")
		args = append(args, *filter.EmployeeID)
	}
	if filter.Team != nil {
		where = append(where, "team = ?")
		args = append(args, *filter.Team)
	}
	if filter.Status != nil {
		where = append(where, "status = ?")
		args = append(args, *filter.Status)
	}
	if filter.FinalStatus != nil {
		where = append(where, "final_status = ?")
		args = append(args, *filter.FinalStatus)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date DESC, created_at DESC"

	var tasks []models.Task
	if err := r.db.SelectContext(ctx, &tasks, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// ListByEmployee returns all of one employee's tasks, newest date first.
func (r *TaskRepository) ListByEmployee(ctx context.Context, employeeID string) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.SelectContext(ctx, &tasks,
		r.db.Rebind(`SELECT `+taskColumns+` FROM tasks WHERE employee_id = ? ORDER BY date DESC, created_at DESC`),
		employeeID)
	if err != nil {
		return nil, fmt.Errorf("list tasks for employee: %w", err)
	}
	return tasks, nil
}

// ListInWindow returns tasks whose date falls in [start, end).
func (r *TaskRepository) ListInWindow(ctx context.Context, start, end time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.SelectContext(ctx, &tasks,
		r.db.Rebind(`SELECT `+taskColumns+` FROM tasks WHERE date >= ? AND date < ? ORDER BY date ASC`),
		start, end)
	if err != nil {
		return nil, fmt.Errorf("list tasks in window: %w", err)
	}
	return tasks, nil
}

// SearchEmployees matches a case-insensitive substring against user_name
// or employee_id, deduplicated by employee id.
func (r *TaskRepository) SearchEmployees(ctx context.Context, q string, limit int) ([]EmployeeRef, error) {
	pattern := "%" + escapeLike(strings.ToLower(q)) + "%"

	var rows []EmployeeRef
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(`
		SELECT user_name, employee_id FROM tasks
		WHERE LOWER(user_name) LIKE ? ESCAPE '\' OR LOWER(employee_id) LIKE ? ESCAPE '\'
		ORDER BY user_name ASC
		LIMIT ?`),
		pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search employees: %w", err)
	}

	seen := make(map[string]bool, len(rows))
	out := make([]EmployeeRef, 0, len(rows))
	for _, row := range rows {
		if seen[row.EmployeeID] {
			continue
		}
		seen[row.EmployeeID] = true
		out = append(out, row)
	}
	return out, nil
}

func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
