package repositories

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/blogem/actionlog/database"
	"github.com/blogem/actionlog/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// Each test gets its own database file, migrated with the real migration set
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	// Test Create
	user := &models.User{
		Username: "alice",
		Email:    "alice@example.com",
		Role:     models.RoleAdmin,
	}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID, "Expected user ID to be set after creation")
	assert.False(t, user.CreatedAt.IsZero(), "Expected CreatedAt to be set after creation")

	// Test FindByUsername with a match
	found, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, "alice", found.Username)
	assert.Equal(t, "alice@example.com", found.Email)
	assert.Equal(t, models.RoleAdmin, found.Role)
	assert.WithinDuration(t, user.CreatedAt, found.CreatedAt, time.Second)

	// Test FindByUsername without a match
	missing, err := repo.FindByUsername(ctx, "bob")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	// Lookups are exact
	missing, err = repo.FindByUsername(ctx, "ALICE")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_DefaultRole(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Username: "carol"}))

	found, err := repo.FindByUsername(ctx, "carol")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, models.RoleUser, found.Role)
	assert.Equal(t, "", found.Email)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Username: "alice"}))

	err := repo.Create(ctx, &models.User{Username: "alice", Email: "other@example.com"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestLogEntryRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLogEntryRepository(db)
	ctx := context.Background()

	ts := time.Date(2025, 10, 6, 9, 30, 0, 0, time.UTC)
	entry := &models.LogEntry{
		Username:  "alice",
		Action:    "POST /api/users",
		Request:   `{"username":"bob"}`,
		Response:  `{"id":2}`,
		Timestamp: ts,
	}
	require.NoError(t, repo.Save(ctx, entry))
	assert.NotEqual(t, uuid.Nil, entry.ID, "Expected entry ID to be assigned")

	stored := readLogEntry(t, db, entry.ID)
	assert.Equal(t, entry.Username, stored.Username)
	assert.Equal(t, entry.Action, stored.Action)
	assert.Equal(t, entry.Request, stored.Request)
	assert.Equal(t, entry.Response, stored.Response)
	assert.True(t, ts.Equal(stored.Timestamp), "Expected timestamp %v, got %v", ts, stored.Timestamp)
}

func TestLogEntryRepository_AssignsDistinctIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLogEntryRepository(db)
	ctx := context.Background()

	first := &models.LogEntry{Username: "alice", Action: "same"}
	second := &models.LogEntry{Username: "alice", Action: "same"}
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, first.Timestamp.IsZero())
	assert.Equal(t, 2, countLogEntries(t, db))
}

func TestLogEntryRepository_KeepsValuesVerbatim(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLogEntryRepository(db)
	ctx := context.Background()

	entry := &models.LogEntry{
		Username: "",
		Action:   "",
		Request:  "line one\nline two\t'quoted' \"double\" <tag> ü",
		Response: "",
	}
	require.NoError(t, repo.Save(ctx, entry))

	stored := readLogEntry(t, db, entry.ID)
	assert.Equal(t, "", stored.Username)
	assert.Equal(t, "", stored.Action)
	assert.Equal(t, entry.Request, stored.Request)
	assert.Equal(t, "", stored.Response)
}

func TestLogEntryRepository_RejectsReusedID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLogEntryRepository(db)
	ctx := context.Background()

	entry := &models.LogEntry{Username: "alice", Action: "first"}
	require.NoError(t, repo.Save(ctx, entry))

	again := &models.LogEntry{ID: entry.ID, Username: "mallory", Action: "overwrite"}
	require.Error(t, repo.Save(ctx, again))

	stored := readLogEntry(t, db, entry.ID)
	assert.Equal(t, "alice", stored.Username)
	assert.Equal(t, "first", stored.Action)
}

func TestNewRepositories(t *testing.T) {
	db := setupTestDB(t)
	repos := NewRepositories(db)

	assert.NotNil(t, repos.Users)
	assert.NotNil(t, repos.LogEntries)
}

func readLogEntry(t *testing.T, db *sql.DB, id uuid.UUID) models.LogEntry {
	t.Helper()

	var entry models.LogEntry
	err := db.QueryRow(
		`SELECT id, username, action, request, response, timestamp FROM log_entries WHERE id = ?`,
		id,
	).Scan(&entry.ID, &entry.Username, &entry.Action, &entry.Request, &entry.Response, &entry.Timestamp)
	require.NoError(t, err)
	return entry
}

func countLogEntries(t *testing.T, db *sql.DB) int {
	t.Helper()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM log_entries`).Scan(&count))
	return count
}
