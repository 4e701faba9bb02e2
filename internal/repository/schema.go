package repository

// Schema is portable between PostgreSQL (production) and SQLite (tests).
// List-valued columns hold JSON so the task row, remarks included, stays
// the unit of atomicity.
const Schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id               TEXT PRIMARY KEY,
	user_name        TEXT NOT NULL,
	employee_id      TEXT NOT NULL,
	team             TEXT NOT NULL DEFAULT '',
	date             TIMESTAMP NOT NULL,
	projects         TEXT NOT NULL,
	modules          TEXT NOT NULL,
	activity_leads   TEXT NOT NULL,
	remarks          TEXT NOT NULL,
	status           TEXT NOT NULL,
	final_status     TEXT NOT NULL,
	total_time_spent INTEGER NOT NULL DEFAULT 0,
	completed_at     TIMESTAMP,
	on_hold_at       TIMESTAMP,
	created_at       TIMESTAMP NOT NULL,
	updated_at       TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_employee_date ON tasks (employee_id, date);
CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks (status);
CREATE INDEX IF NOT EXISTS idx_tasks_date ON tasks (date);

CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL,
	team          TEXT NOT NULL DEFAULT '',
	employee_id   TEXT NOT NULL UNIQUE,
	created_at    TIMESTAMP NOT NULL,
	updated_at    TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS projects (
	id           TEXT PRIMARY KEY,
	project_name TEXT NOT NULL,
	client       TEXT NOT NULL,
	project_lead TEXT NOT NULL,
	category     TEXT NOT NULL,
	modules      TEXT NOT NULL,
	created_at   TIMESTAMP NOT NULL,
	updated_at   TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS audit_logs (
	id           TEXT PRIMARY KEY,
	collection   TEXT NOT NULL,
	document_id  TEXT NOT NULL,
	action       TEXT NOT NULL,
	performed_by TEXT NOT NULL,
	ip           TEXT NOT NULL DEFAULT '',
	user_agent   TEXT NOT NULL DEFAULT '',
	old_value    TEXT,
	new_value    TEXT NOT NULL,
	timestamp    TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_audit_logs_document ON audit_logs (collection, document_id);
`
