package models

import (
	"time"

	"github.com/google/uuid"
)

// LogEntry is an audit record of a single user action.
// Entries are written once and never updated.
type LogEntry struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	Username  string    `json:"username" db:"username" gorm:"type:text;not null;index:idx_log_entries_username"`
	Action    string    `json:"action" db:"action" gorm:"type:text;not null"`
	Request   string    `json:"request" db:"request" gorm:"type:text"`
	Response  string    `json:"response" db:"response" gorm:"type:text"`
	Timestamp time.Time `json:"timestamp" db:"timestamp" gorm:"not null;index:idx_log_entries_timestamp"`
}

// TableName sets the table name for the LogEntry model
func (LogEntry) TableName() string {
	return "log_entries"
}
