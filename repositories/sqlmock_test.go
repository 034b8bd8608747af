package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/blogem/actionlog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStorageUnavailable = errors.New("database is unreachable")

func TestUserRepository_FindByUsername_Ambiguous(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, email, role, created_at")).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "role", "created_at"}).
			AddRow(1, "alice", "a@example.com", "user", now).
			AddRow(2, "alice", "b@example.com", "user", now))

	repo := NewUserRepository(db)
	user, err := repo.FindByUsername(context.Background(), "alice")

	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrAmbiguousUsername)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByUsername_StorageError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, email, role, created_at")).
		WithArgs("alice").
		WillReturnError(errStorageUnavailable)

	repo := NewUserRepository(db)
	user, err := repo.FindByUsername(context.Background(), "alice")

	assert.Nil(t, user)
	assert.ErrorIs(t, err, errStorageUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_StorageError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(errStorageUnavailable)

	repo := NewUserRepository(db)
	err = repo.Create(context.Background(), &models.User{Username: "alice"})

	assert.ErrorIs(t, err, errStorageUnavailable)
	assert.NotErrorIs(t, err, ErrDuplicateUsername)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogEntryRepository_Save_StorageError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO log_entries")).
		WithArgs(sqlmock.AnyArg(), "alice", "login", "req", "resp", sqlmock.AnyArg()).
		WillReturnError(errStorageUnavailable)

	repo := NewLogEntryRepository(db)
	err = repo.Save(context.Background(), &models.LogEntry{
		Username: "alice",
		Action:   "login",
		Request:  "req",
		Response: "resp",
	})

	assert.ErrorIs(t, err, errStorageUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogEntryRepository_Save_SingleInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO log_entries")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewLogEntryRepository(db)
	require.NoError(t, repo.Save(context.Background(), &models.LogEntry{Username: "alice", Action: "x"}))

	// Any further statement would fail ExpectationsWereMet or the mock itself
	assert.NoError(t, mock.ExpectationsWereMet())
}
