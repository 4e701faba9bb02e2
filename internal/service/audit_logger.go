package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dailyworklog/server/internal/models"
	"github.com/dailyworklog/server/internal/repository"
)

// AuditLogger writes before/after snapshots of task mutations to the
// append-only audit store. Recording is best-effort: a failed write is
// logged and never blocks the mutation it describes.
type AuditLogger struct {
	repo *repository.AuditRepository
	log  *logrus.Logger
}

// NewAuditLogger creates an audit logger.
func NewAuditLogger(repo *repository.AuditRepository, log *logrus.Logger) *AuditLogger {
	return &AuditLogger{repo: repo, log: log}
}

// RecordTaskCreate appends a CREATE entry for a freshly persisted task.
func (l *AuditLogger) RecordTaskCreate(ctx context.Context, task *models.Task, actor ActorContext) {
	l.record(ctx, models.AuditActionCreate, task.ID, nil, task, actor)
}

// RecordTaskUpdate appends an UPDATE entry with full before/after
// snapshots of the task.
func (l *AuditLogger) RecordTaskUpdate(ctx context.Context, oldTask, newTask *models.Task, actor ActorContext) {
	l.record(ctx, models.AuditActionUpdate, newTask.ID, oldTask, newTask, actor)
}

func (l *AuditLogger) record(ctx context.Context, action, documentID string, oldTask, newTask *models.Task, actor ActorContext) {
	entry := &models.AuditLog{
		ID:          uuid.New().String(),
		Collection:  "Task",
		DocumentID:  documentID,
		Action:      action,
		PerformedBy: actor.Identity(),
		IP:          actor.IP,
		UserAgent:   actor.UserAgent,
		Timestamp:   time.Now().UTC(),
	}

	if oldTask != nil {
		snapshot, err := json.Marshal(oldTask)
		if err != nil {
			l.warn(action, documentID, err)
			return
		}
		s := string(snapshot)
		entry.OldValue = &s
	}

	snapshot, err := json.Marshal(newTask)
	if err != nil {
		l.warn(action, documentID, err)
		return
	}
	entry.NewValue = string(snapshot)

	if err := l.repo.Append(ctx, entry); err != nil {
		l.warn(action, documentID, err)
	}
}

func (l *AuditLogger) warn(action, documentID string, err error) {
	l.log.WithFields(logrus.Fields{
		"action":     action,
		"documentId": documentID,
	}).WithError(err).Warn("audit record dropped")
}
