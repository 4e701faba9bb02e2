package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dailyworklog/server/internal/models"
)

// AuditRepository appends to the audit log. Records are never updated or
// deleted; the log is consumed externally for compliance.
type AuditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository creates an audit repository around a db handle.
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

const auditColumns = `id, collection, document_id, action, performed_by, ip, user_agent, old_value, new_value, timestamp`

// Append inserts one audit record.
func (r *AuditRepository) Append(ctx context.Context, entry *models.AuditLog) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO audit_logs (`+auditColumns+`)
		VALUES (:id, :collection, :document_id, :action, :performed_by, :ip, :user_agent, :old_value, :new_value, :timestamp)`,
		entry)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// ListByDocument returns the audit trail for one document, oldest first.
func (r *AuditRepository) ListByDocument(ctx context.Context, collection, documentID string) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	err := r.db.SelectContext(ctx, &entries,
		r.db.Rebind(`SELECT `+auditColumns+` FROM audit_logs WHERE collection = ? AND document_id = ? ORDER BY timestamp ASC`),
		collection, documentID)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return entries, nil
}
