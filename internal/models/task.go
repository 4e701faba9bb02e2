package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Remark status values (live and final).
const (
	RemarkStatusInProgress = "In Progress"
	RemarkStatusOnHold     = "On Hold"
	RemarkStatusCompleted  = "Completed"
)

// Task status values. Tasks additionally start out Pending until the
// reducer derives a status from their remarks.
const (
	TaskStatusPending    = "Pending"
	TaskStatusInProgress = "In Progress"
	TaskStatusOnHold     = "On Hold"
	TaskStatusCompleted  = "Completed"
)

// MaxRemarkTextLength caps the free-text description of a remark.
const MaxRemarkTextLength = 200

// IsValidRemarkStatus reports whether s is a valid remark status.
func IsValidRemarkStatus(s string) bool {
	switch s {
	case RemarkStatusInProgress, RemarkStatusOnHold, RemarkStatusCompleted:
		return true
	}
	return false
}

// IsValidTaskStatus reports whether s is a valid task status.
func IsValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusOnHold, TaskStatusCompleted:
		return true
	}
	return false
}

// Remark is one timed, statused note of work attached to a task. Remarks
// are owned exclusively by their task and have no independent lifecycle.
type Remark struct {
	ID   string `json:"id"`
	Text string `json:"text"`

	// Status is the live status and may change freely at any time.
	Status string `json:"status"`

	// FinalStatus is the historical status. Once it reaches Completed or
	// On Hold it never reverts, even if Status later moves back to
	// In Progress.
	FinalStatus string `json:"finalStatus"`

	// Minutes accumulates time logged against this remark. Updates add to
	// it, they never overwrite it.
	Minutes int `json:"minutes"`

	// TotalRemarkDuration is the running sum of minutes over this remark
	// and every remark before it in the task's remark list.
	TotalRemarkDuration int `json:"totalRemarkDuration"`

	WorkDate    time.Time  `json:"workDate"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	OnHoldAt    *time.Time `json:"onHoldAt,omitempty"`
}

// Task is one employee's reported work on one or more projects/modules on
// a given date. The task row, including its embedded remarks, is the unit
// of atomicity in the store.
type Task struct {
	ID            string     `db:"id" json:"id"`
	UserName      string     `db:"user_name" json:"user_name"`
	EmployeeID    string     `db:"employee_id" json:"employeeId"`
	Team          string     `db:"team" json:"team"`
	Date          time.Time  `db:"date" json:"date"`
	Projects      StringList `db:"projects" json:"projects"`
	Modules       StringList `db:"modules" json:"modules"`
	ActivityLeads StringList `db:"activity_leads" json:"activity_leads"`
	Remarks       RemarkList `db:"remarks" json:"remarks"`

	// Status and FinalStatus are derived by the lifecycle reducer, never
	// set directly by a client.
	Status      string `db:"status" json:"status"`
	FinalStatus string `db:"final_status" json:"finalStatus"`

	TotalTimeSpent int        `db:"total_time_spent" json:"totalTimeSpent"`
	CompletedAt    *time.Time `db:"completed_at" json:"completedAt,omitempty"`
	OnHoldAt       *time.Time `db:"on_hold_at" json:"onHoldAt,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updatedAt"`
}

// RemarkByID returns a pointer into the task's remark list, or nil if no
// remark has the given id.
func (t *Task) RemarkByID(id string) *Remark {
	for i := range t.Remarks {
		if t.Remarks[i].ID == id {
			return &t.Remarks[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the task, used for before/after audit
// snapshots.
func (t *Task) Clone() *Task {
	c := *t
	c.Projects = append(StringList(nil), t.Projects...)
	c.Modules = append(StringList(nil), t.Modules...)
	c.ActivityLeads = append(StringList(nil), t.ActivityLeads...)
	c.Remarks = append(RemarkList(nil), t.Remarks...)
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		c.CompletedAt = &at
	}
	if t.OnHoldAt != nil {
		at := *t.OnHoldAt
		c.OnHoldAt = &at
	}
	for i := range c.Remarks {
		if at := t.Remarks[i].CompletedAt; at != nil {
			v := *at
			c.Remarks[i].CompletedAt = &v
		}
		if at := t.Remarks[i].OnHoldAt; at != nil {
			v := *at
			c.Remarks[i].OnHoldAt = &v
		}
	}
	return &c
}

// StringList is a []string stored as a JSON column so the schema stays
// portable between PostgreSQL and SQLite.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// RemarkList is a []Remark stored as a JSON column on the task row, which
// keeps the remark list inside the task's unit of atomicity.
type RemarkList []Remark

// Value implements driver.Valuer.
func (l RemarkList) Value() (driver.Value, error) {
	if l == nil {
		l = RemarkList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *RemarkList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
}
