package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailyworklog/server/internal/models"
	"github.com/dailyworklog/server/internal/repository"
	"github.com/dailyworklog/server/internal/service"
	"github.com/dailyworklog/server/pkg/auth"

	_ "github.com/mattn/go-sqlite3"
)

type apiEnv struct {
	router *gin.Engine
	auth   *service.AuthService
}

func setupAPI(t *testing.T) *apiEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	_, err = db.Exec(repository.Schema)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	auditLogger := service.NewAuditLogger(repository.NewAuditRepository(db), log)
	taskRepo := repository.NewTaskRepository(db)
	taskService := service.NewTaskService(taskRepo, auditLogger, log)
	authService := service.NewAuthService(repository.NewUserRepository(db), tokens, auth.NewPasswordManager(), log)

	router := NewRouter(Deps{
		Log:       log,
		Tokens:    tokens,
		Auth:      authService,
		Tasks:     taskService,
		Summaries: service.NewSummaryService(taskRepo),
		Projects:  service.NewProjectService(repository.NewProjectRepository(db)),
	})

	return &apiEnv{router: router, auth: authService}
}

func (e *apiEnv) registerAndLogin(t *testing.T, username, role, employeeID string) string {
	t.Helper()
	in := service.RegisterInput{
		Username:   username,
		Password:   "StrongPass1",
		Role:       role,
		Team:       "Programmer",
		EmployeeID: employeeID,
	}
	_, err := e.auth.Register(context.Background(), in)
	require.NoError(t, err)

	token, _, err := e.auth.Login(context.Background(), username, "StrongPass1")
	require.NoError(t, err)
	return "Bearer " + token
}

func doRequest(t *testing.T, r http.Handler, method, path string, body any, bearer string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func taskPayload(date string) map[string]any {
	return map[string]any{
		"user_name":      "Asha Verma",
		"team":           "Programmer",
		"date":           date,
		"projects":       []string{"Alpha"},
		"modules":        []string{"Core"},
		"activity_leads": []string{"Lead A"},
		"remarks": []map[string]any{
			{"text": "implemented import", "minutes": 30, "status": "In Progress"},
			{"text": "reviewed mapping", "minutes": 20, "status": "On Hold"},
		},
	}
}

func TestCreateTaskEndpoint(t *testing.T) {
	env := setupAPI(t)
	bearer := env.registerAndLogin(t, "asha", "user", "EMP001")

	w := doRequest(t, env.router, http.MethodPost, "/api/tasks", taskPayload("2025-05-12"), bearer)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Task models.Task `json:"task"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "EMP001", resp.Task.EmployeeID)
	assert.Equal(t, models.TaskStatusInProgress, resp.Task.Status)
	assert.Equal(t, 50, resp.Task.TotalTimeSpent)
}

func TestCreateTaskRequiresAuth(t *testing.T) {
	env := setupAPI(t)

	w := doRequest(t, env.router, http.MethodPost, "/api/tasks", taskPayload("2025-05-12"), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateTaskRejectsBadStatus(t *testing.T) {
	env := setupAPI(t)
	bearer := env.registerAndLogin(t, "asha", "user", "EMP001")

	payload := taskPayload("2025-05-12")
	payload["remarks"] = []map[string]any{{"text": "x", "minutes": 5, "status": "Done"}}
	w := doRequest(t, env.router, http.MethodPost, "/api/tasks", payload, bearer)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateRemarkEndpoint(t *testing.T) {
	env := setupAPI(t)
	bearer := env.registerAndLogin(t, "asha", "user", "EMP001")

	w := doRequest(t, env.router, http.MethodPost, "/api/tasks", taskPayload("2025-05-12"), bearer)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Task models.Task `json:"task"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	update := map[string]any{"status": "Completed", "minutes": 10}
	path := "/api/tasks/" + created.Task.ID + "/remarks/" + created.Task.Remarks[1].ID
	w = doRequest(t, env.router, http.MethodPatch, path, update, bearer)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated struct {
		Task models.Task `json:"task"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, 30, updated.Task.Remarks[1].Minutes)
	assert.Equal(t, models.RemarkStatusCompleted, updated.Task.Remarks[1].FinalStatus)
	assert.Equal(t, models.TaskStatusInProgress, updated.Task.Status)
	assert.Equal(t, 60, updated.Task.TotalTimeSpent)
}

func TestUpdateRemarkUnknownTask(t *testing.T) {
	env := setupAPI(t)
	bearer := env.registerAndLogin(t, "asha", "user", "EMP001")

	update := map[string]any{"minutes": 10}
	w := doRequest(t, env.router, http.MethodPatch, "/api/tasks/nope/remarks/nope", update, bearer)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminListRequiresAdminRole(t *testing.T) {
	env := setupAPI(t)
	userBearer := env.registerAndLogin(t, "asha", "user", "EMP001")
	adminBearer := env.registerAndLogin(t, "boss", "admin", "EMP900")

	w := doRequest(t, env.router, http.MethodGet, "/api/tasks", nil, userBearer)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, env.router, http.MethodGet, "/api/tasks", nil, adminBearer)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminListFilters(t *testing.T) {
	env := setupAPI(t)
	bearer := env.registerAndLogin(t, "asha", "user", "EMP001")
	adminBearer := env.registerAndLogin(t, "boss", "admin", "EMP900")

	w := doRequest(t, env.router, http.MethodPost, "/api/tasks", taskPayload("2025-05-12"), bearer)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, env.router, http.MethodGet, "/api/tasks?employeeId=EMP001&status=In+Progress", nil, adminBearer)
	require.Equal(t, http.StatusOK, w.Code)
	var tasks []models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	assert.Len(t, tasks, 1)

	w = doRequest(t, env.router, http.MethodGet, "/api/tasks?employeeId=EMP999", nil, adminBearer)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	assert.Empty(t, tasks)
}

func TestProjectCatalogEndpoints(t *testing.T) {
	env := setupAPI(t)
	userBearer := env.registerAndLogin(t, "asha", "user", "EMP001")
	adminBearer := env.registerAndLogin(t, "boss", "admin", "EMP900")

	payload := map[string]any{
		"projectName": "Alpha",
		"client":      "Acme",
		"projectLead": "Lead A",
		"category":    "GIS",
		"modules":     []string{"Import", "Export"},
	}
	w := doRequest(t, env.router, http.MethodPost, "/api/projects", payload, userBearer)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, env.router, http.MethodPost, "/api/projects", payload, adminBearer)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(t, env.router, http.MethodGet, "/api/projects", nil, userBearer)
	require.Equal(t, http.StatusOK, w.Code)
	var projects []models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &projects))
	require.Len(t, projects, 1)
	assert.Equal(t, "Alpha", projects[0].ProjectName)
}

func TestHealthz(t *testing.T) {
	env := setupAPI(t)

	w := doRequest(t, env.router, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}
