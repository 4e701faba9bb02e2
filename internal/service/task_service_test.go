package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailyworklog/server/internal/models"
)

func dailyEntry(date time.Time, remarks ...RemarkInput) CreateTaskInput {
	return CreateTaskInput{
		UserName:      "Asha Verma",
		Team:          "Programmer",
		Date:          date,
		Projects:      []string{"Alpha"},
		Modules:       []string{"Core"},
		ActivityLeads: []string{"Lead A"},
		Remarks:       remarks,
	}
}

func TestCreateTaskDerivesStatusAndDurations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	date := time.Date(2025, 5, 12, 9, 0, 0, 0, time.UTC)

	task, err := env.tasks.Create(ctx, dailyEntry(date,
		RemarkInput{Text: "A", Minutes: 30, Status: models.RemarkStatusInProgress},
		RemarkInput{Text: "B", Minutes: 20, Status: models.RemarkStatusOnHold},
	), testActor("EMP001"))
	require.NoError(t, err)

	assert.Equal(t, models.TaskStatusInProgress, task.Status)
	assert.Equal(t, 50, task.TotalTimeSpent)
	assert.Equal(t, 30, task.Remarks[0].TotalRemarkDuration)
	assert.Equal(t, 50, task.Remarks[1].TotalRemarkDuration)
	assert.Equal(t, "EMP001", task.EmployeeID)
	assert.NotEmpty(t, task.ID)
	assert.NotEmpty(t, task.Remarks[0].ID)
}

func TestCreateTaskValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	date := time.Date(2025, 5, 12, 9, 0, 0, 0, time.UTC)
	valid := dailyEntry(date, RemarkInput{Text: "A", Minutes: 10, Status: models.RemarkStatusInProgress})

	tests := []struct {
		name   string
		mutate func(*CreateTaskInput)
		actor  ActorContext
		field  string
	}{
		{"missing employee id", func(in *CreateTaskInput) {}, ActorContext{}, "employeeId"},
		{"missing projects", func(in *CreateTaskInput) { in.Projects = nil }, testActor("EMP001"), "projects"},
		{"missing modules", func(in *CreateTaskInput) { in.Modules = nil }, testActor("EMP001"), "modules"},
		{"missing date", func(in *CreateTaskInput) { in.Date = time.Time{} }, testActor("EMP001"), "date"},
		{"no remarks", func(in *CreateTaskInput) { in.Remarks = nil }, testActor("EMP001"), "remarks"},
		{"blank remark text", func(in *CreateTaskInput) { in.Remarks[0].Text = "  " }, testActor("EMP001"), "remarks.text"},
		{"bad remark status", func(in *CreateTaskInput) { in.Remarks[0].Status = "Done" }, testActor("EMP001"), "remarks.status"},
		{"negative minutes", func(in *CreateTaskInput) { in.Remarks[0].Minutes = -5 }, testActor("EMP001"), "remarks.minutes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			in.Remarks = append([]RemarkInput(nil), valid.Remarks...)
			tt.mutate(&in)

			_, err := env.tasks.Create(ctx, in, tt.actor)
			var ve *models.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	// Nothing was persisted by the rejected attempts.
	all, err := env.tasks.List(ctx, TaskListFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUpdateRemarkAdditiveMinutes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	date := time.Date(2025, 5, 12, 9, 0, 0, 0, time.UTC)

	task, err := env.tasks.Create(ctx, dailyEntry(date,
		RemarkInput{Text: "A", Minutes: 5, Status: models.RemarkStatusInProgress},
	), testActor("EMP001"))
	require.NoError(t, err)

	add := 10
	for i := 0; i < 2; i++ {
		task, err = env.tasks.UpdateRemark(ctx, task.ID, task.Remarks[0].ID, UpdateRemarkInput{Minutes: &add}, testActor("EMP001"))
		require.NoError(t, err)
	}

	assert.Equal(t, 25, task.Remarks[0].Minutes)
	assert.Equal(t, 25, task.TotalTimeSpent)
}

func TestUpdateRemarkRejectsNegativeMinutes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	date := time.Date(2025, 5, 12, 9, 0, 0, 0, time.UTC)

	task, err := env.tasks.Create(ctx, dailyEntry(date,
		RemarkInput{Text: "A", Minutes: 5, Status: models.RemarkStatusInProgress},
	), testActor("EMP001"))
	require.NoError(t, err)

	bad := -1
	_, err = env.tasks.UpdateRemark(ctx, task.ID, task.Remarks[0].ID, UpdateRemarkInput{Minutes: &bad}, testActor("EMP001"))
	assert.True(t, models.IsValidation(err))
}

func TestUpdateRemarkNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	date := time.Date(2025, 5, 12, 9, 0, 0, 0, time.UTC)

	task, err := env.tasks.Create(ctx, dailyEntry(date,
		RemarkInput{Text: "A", Minutes: 5, Status: models.RemarkStatusInProgress},
	), testActor("EMP001"))
	require.NoError(t, err)

	status := models.RemarkStatusCompleted
	_, err = env.tasks.UpdateRemark(ctx, "no-such-task", task.Remarks[0].ID, UpdateRemarkInput{Status: &status}, testActor("EMP001"))
	assert.ErrorIs(t, err, models.ErrTaskNotFound)

	_, err = env.tasks.UpdateRemark(ctx, task.ID, "no-such-remark", UpdateRemarkInput{Status: &status}, testActor("EMP001"))
	assert.ErrorIs(t, err, models.ErrRemarkNotFound)
}

// Full lifecycle: create two remarks, complete one with extra minutes, and
// verify the derived state after the round trip through the store.
func TestTaskLifecycleEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	date := time.Date(2025, 5, 12, 9, 0, 0, 0, time.UTC)

	task, err := env.tasks.Create(ctx, dailyEntry(date,
		RemarkInput{Text: "A", Minutes: 30, Status: models.RemarkStatusInProgress},
		RemarkInput{Text: "B", Minutes: 20, Status: models.RemarkStatusOnHold},
	), testActor("EMP001"))
	require.NoError(t, err)
	require.Equal(t, models.TaskStatusInProgress, task.Status)
	require.Equal(t, 50, task.TotalTimeSpent)

	status := models.RemarkStatusCompleted
	add := 10
	task, err = env.tasks.UpdateRemark(ctx, task.ID, task.Remarks[1].ID,
		UpdateRemarkInput{Status: &status, Minutes: &add}, testActor("EMP001"))
	require.NoError(t, err)

	remarkB := task.Remarks[1]
	assert.Equal(t, 30, remarkB.Minutes)
	assert.Equal(t, models.RemarkStatusCompleted, remarkB.FinalStatus)
	assert.NotNil(t, remarkB.CompletedAt)
	// Remark A is still in progress, so the task is too.
	assert.Equal(t, models.TaskStatusInProgress, task.Status)
	assert.Equal(t, 60, task.TotalTimeSpent)
	assert.Equal(t, 30, task.Remarks[0].TotalRemarkDuration)
	assert.Equal(t, 60, remarkB.TotalRemarkDuration)
}

func TestUpdateRemarkRatchetSurvivesReopen(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	date := time.Date(2025, 5, 12, 9, 0, 0, 0, time.UTC)

	task, err := env.tasks.Create(ctx, dailyEntry(date,
		RemarkInput{Text: "A", Minutes: 30, Status: models.RemarkStatusCompleted},
	), testActor("EMP001"))
	require.NoError(t, err)
	require.Equal(t, models.TaskStatusCompleted, task.Status)
	completedAt := *task.Remarks[0].CompletedAt

	reopen := models.RemarkStatusInProgress
	task, err = env.tasks.UpdateRemark(ctx, task.ID, task.Remarks[0].ID, UpdateRemarkInput{Status: &reopen}, testActor("EMP001"))
	require.NoError(t, err)

	assert.Equal(t, models.TaskStatusInProgress, task.Status)
	assert.Equal(t, models.RemarkStatusCompleted, task.Remarks[0].FinalStatus)
	assert.Equal(t, models.TaskStatusCompleted, task.FinalStatus)
	assert.True(t, completedAt.Equal(*task.Remarks[0].CompletedAt))
}

func TestMutationsAreAudited(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	date := time.Date(2025, 5, 12, 9, 0, 0, 0, time.UTC)

	task, err := env.tasks.Create(ctx, dailyEntry(date,
		RemarkInput{Text: "A", Minutes: 30, Status: models.RemarkStatusInProgress},
	), testActor("EMP001"))
	require.NoError(t, err)

	status := models.RemarkStatusCompleted
	_, err = env.tasks.UpdateRemark(ctx, task.ID, task.Remarks[0].ID, UpdateRemarkInput{Status: &status}, testActor("EMP001"))
	require.NoError(t, err)

	trail, err := env.auditRepo.ListByDocument(ctx, "Task", task.ID)
	require.NoError(t, err)
	require.Len(t, trail, 2)

	assert.Equal(t, models.AuditActionCreate, trail[0].Action)
	assert.Nil(t, trail[0].OldValue)
	assert.Equal(t, "EMP001", trail[0].PerformedBy)
	assert.Equal(t, "127.0.0.1", trail[0].IP)
	assert.Equal(t, "go-test", trail[0].UserAgent)

	assert.Equal(t, models.AuditActionUpdate, trail[1].Action)
	require.NotNil(t, trail[1].OldValue)
	assert.Contains(t, *trail[1].OldValue, `"In Progress"`)
	assert.Contains(t, trail[1].NewValue, `"Completed"`)
}

func TestListPendingForEmployee(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	date := time.Date(2025, 5, 12, 9, 0, 0, 0, time.UTC)

	task, err := env.tasks.Create(ctx, dailyEntry(date,
		RemarkInput{Text: "open", Minutes: 10, Status: models.RemarkStatusInProgress},
		RemarkInput{Text: "done", Minutes: 20, Status: models.RemarkStatusCompleted},
	), testActor("EMP001"))
	require.NoError(t, err)

	_, err = env.tasks.Create(ctx, dailyEntry(date,
		RemarkInput{Text: "all done", Minutes: 15, Status: models.RemarkStatusCompleted},
	), testActor("EMP001"))
	require.NoError(t, err)

	got, err := env.tasks.ListPendingForEmployee(ctx, "EMP001")
	require.NoError(t, err)

	// Fully completed tasks disappear; pending remarks are narrowed.
	require.Len(t, got, 1)
	assert.Equal(t, task.ID, got[0].ID)
	require.Len(t, got[0].Remarks, 1)
	assert.Equal(t, "open", got[0].Remarks[0].Text)
}

func TestSearchEmployeesBlankQuery(t *testing.T) {
	env := newTestEnv(t)

	got, err := env.tasks.SearchEmployees(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, got)
}
