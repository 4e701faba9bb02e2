package models

import "time"

// Audit actions.
const (
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
)

// AuditLog is one append-only before/after record of a mutation. OldValue
// is nil for CREATE. Snapshots are JSON-encoded documents.
type AuditLog struct {
	ID          string    `db:"id" json:"id"`
	Collection  string    `db:"collection" json:"collection"`
	DocumentID  string    `db:"document_id" json:"documentId"`
	Action      string    `db:"action" json:"action"`
	PerformedBy string    `db:"performed_by" json:"performedBy"`
	IP          string    `db:"ip" json:"ip"`
	UserAgent   string    `db:"user_agent" json:"userAgent"`
	OldValue    *string   `db:"old_value" json:"oldValue,omitempty"`
	NewValue    string    `db:"new_value" json:"newValue"`
	Timestamp   time.Time `db:"timestamp" json:"timestamp"`
}
