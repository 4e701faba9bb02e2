// Package lifecycle derives task and remark state from the task's ordered
// remark list. Reduce is pure apart from the caller-supplied clock and is
// idempotent: durations are recomputed from scratch on every run and the
// final-status ratchets only ever advance.
package lifecycle

import (
	"time"

	"github.com/dailyworklog/server/internal/models"
)

// Reduce recomputes every derived field on the task from its remark list:
// per-remark cumulative durations, per-remark final-status ratchets, the
// task-level live status, the task-level final-status ratchet, and the
// total time spent. The remark list order is significant and preserved.
func Reduce(t *models.Task, now time.Time) {
	if len(t.Remarks) == 0 {
		// An empty task resets instead of ratchet-locking.
		t.TotalTimeSpent = 0
		t.Status = models.TaskStatusPending
		t.FinalStatus = models.TaskStatusPending
		return
	}

	total := 0
	cumulative := 0
	for i := range t.Remarks {
		r := &t.Remarks[i]
		total += r.Minutes
		cumulative += r.Minutes
		r.TotalRemarkDuration = cumulative

		ratchet(r.Status, &r.FinalStatus, &r.CompletedAt, &r.OnHoldAt, now)
	}
	t.TotalTimeSpent = total

	t.Status = DeriveTaskStatus(remarkStatuses(t.Remarks))
	ratchet(t.Status, &t.FinalStatus, &t.CompletedAt, &t.OnHoldAt, now)
}

// DeriveTaskStatus maps the live statuses of a task's remarks to the task's
// live status. Precedence order is load-bearing: a task with one In Progress
// and one On Hold remark is In Progress, not On Hold.
func DeriveTaskStatus(statuses []string) string {
	if len(statuses) == 0 {
		return models.TaskStatusPending
	}

	allCompleted := true
	anyInProgress := false
	anyOnHold := false
	for _, s := range statuses {
		switch s {
		case models.RemarkStatusCompleted:
		case models.RemarkStatusInProgress:
			allCompleted = false
			anyInProgress = true
		case models.RemarkStatusOnHold:
			allCompleted = false
			anyOnHold = true
		default:
			allCompleted = false
		}
	}

	switch {
	case allCompleted:
		return models.TaskStatusCompleted
	case anyInProgress:
		return models.TaskStatusInProgress
	case anyOnHold:
		return models.TaskStatusOnHold
	default:
		return models.TaskStatusPending
	}
}

// ratchet advances the historical status when the live status first reaches
// Completed or On Hold. It never moves the historical status away from
// either value, and the transition timestamps are written exactly once.
func ratchet(live string, final *string, completedAt, onHoldAt **time.Time, now time.Time) {
	switch live {
	case models.RemarkStatusCompleted:
		*final = models.RemarkStatusCompleted
		if *completedAt == nil {
			at := now
			*completedAt = &at
		}
	case models.RemarkStatusOnHold:
		*final = models.RemarkStatusOnHold
		if *onHoldAt == nil {
			at := now
			*onHoldAt = &at
		}
	}
}

func remarkStatuses(remarks []models.Remark) []string {
	statuses := make([]string, len(remarks))
	for i, r := range remarks {
		statuses[i] = r.Status
	}
	return statuses
}
