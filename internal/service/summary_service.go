package service

import (
	"context"
	"time"

	"github.com/dailyworklog/server/internal/repository"
	"github.com/dailyworklog/server/internal/summary"
)

// SummaryService produces the daily and per-project reports. Reads are
// eventually-consistent snapshots; no locking is involved.
type SummaryService struct {
	tasks *repository.TaskRepository
	now   func() time.Time
}

// NewSummaryService creates a summary service.
func NewSummaryService(tasks *repository.TaskRepository) *SummaryService {
	return &SummaryService{tasks: tasks, now: time.Now}
}

// DailySummary builds today's per-employee report.
func (s *SummaryService) DailySummary(ctx context.Context) ([]summary.EmployeeSummary, error) {
	return s.DailySummaryFor(ctx, s.now())
}

// DailySummaryFor builds the per-employee report for the business-hours
// window of the given date.
func (s *SummaryService) DailySummaryFor(ctx context.Context, asOf time.Time) ([]summary.EmployeeSummary, error) {
	start, end := summary.DailyWindow(asOf)
	tasks, err := s.tasks.ListInWindow(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return summary.BuildDailySummary(tasks), nil
}

// ProjectSummaryToday builds today's per-project totals.
func (s *SummaryService) ProjectSummaryToday(ctx context.Context) ([]summary.ProjectTotal, error) {
	start, end := summary.DailyWindow(s.now())
	tasks, err := s.tasks.ListInWindow(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return summary.BuildProjectSummary(tasks), nil
}
