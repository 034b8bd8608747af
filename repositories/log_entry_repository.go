package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/blogem/actionlog/models"
	"github.com/google/uuid"
)

// LogEntryRepository handles audit record persistence. Entries are append-only.
type LogEntryRepository interface {
	// Save inserts the entry, assigning an ID when it has none
	Save(ctx context.Context, entry *models.LogEntry) error
}

type logEntryRepository struct {
	db *sql.DB
}

// NewLogEntryRepository creates a new log entry repository
func NewLogEntryRepository(db *sql.DB) LogEntryRepository {
	return &logEntryRepository{db: db}
}

// Save inserts a new log entry
func (r *logEntryRepository) Save(ctx context.Context, entry *models.LogEntry) error {
	query := `
		INSERT INTO log_entries (id, username, action, request, response, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	prepareLogEntry(entry)

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.Username,
		entry.Action,
		entry.Request,
		entry.Response,
		entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to save log entry: %w", err)
	}

	return nil
}

// prepareLogEntry fills the system-assigned fields of a new entry
func prepareLogEntry(entry *models.LogEntry) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	// The writer stamps entries itself; this only covers direct repository callers
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
}
