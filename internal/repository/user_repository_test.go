package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailyworklog/server/internal/models"
)

func TestUserRepositoryCreateAndLookup(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     "asha",
		PasswordHash: "hash",
		Role:         models.RoleUser,
		Team:         "GIS",
		EmployeeID:   "EMP001",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, repo.Create(ctx, user))

	got, err := repo.GetByUsername(ctx, "asha")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "EMP001", got.EmployeeID)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "asha", byID.Username)

	exists, err := repo.Exists(ctx, "someone-else", "EMP001")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, "someone-else", "EMP999")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepositoryNotFound(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	_, err := repo.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestAuditRepositoryAppendAndList(t *testing.T) {
	repo := NewAuditRepository(newTestDB(t))
	ctx := context.Background()
	docID := uuid.New().String()

	old := `{"status":"Pending"}`
	entries := []*models.AuditLog{
		{
			ID:          uuid.New().String(),
			Collection:  "Task",
			DocumentID:  docID,
			Action:      models.AuditActionCreate,
			PerformedBy: "EMP001",
			IP:          "10.0.0.1",
			UserAgent:   "go-test",
			NewValue:    `{"status":"Pending"}`,
			Timestamp:   time.Now().UTC(),
		},
		{
			ID:          uuid.New().String(),
			Collection:  "Task",
			DocumentID:  docID,
			Action:      models.AuditActionUpdate,
			PerformedBy: "EMP001",
			OldValue:    &old,
			NewValue:    `{"status":"In Progress"}`,
			Timestamp:   time.Now().UTC().Add(time.Second),
		},
	}
	for _, e := range entries {
		require.NoError(t, repo.Append(ctx, e))
	}

	got, err := repo.ListByDocument(ctx, "Task", docID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.AuditActionCreate, got[0].Action)
	assert.Nil(t, got[0].OldValue)
	assert.Equal(t, models.AuditActionUpdate, got[1].Action)
	require.NotNil(t, got[1].OldValue)
	assert.JSONEq(t, old, *got[1].OldValue)
}
