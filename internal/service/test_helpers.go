package service

import (
	"io"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/dailyworklog/server/internal/repository"

	_ "github.com/mattn/go-sqlite3"
)

// Test helpers

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	_, err = db.Exec(repository.Schema)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type testEnv struct {
	db        *sqlx.DB
	tasks     *TaskService
	summaries *SummaryService
	auditRepo *repository.AuditRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupTestDB(t)
	log := newTestLogger()
	auditRepo := repository.NewAuditRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	audit := NewAuditLogger(auditRepo, log)

	return &testEnv{
		db:        db,
		tasks:     NewTaskService(taskRepo, audit, log),
		summaries: NewSummaryService(taskRepo),
		auditRepo: auditRepo,
	}
}

func testActor(employeeID string) ActorContext {
	return ActorContext{
		UserID:     "user-" + employeeID,
		EmployeeID: employeeID,
		Username:   "tester",
		Role:       "user",
		IP:         "127.0.0.1",
		UserAgent:  "go-test",
	}
}
