package repositories

import (
	"database/sql"

	"gorm.io/gorm"
)

// Repositories struct holds all repository interfaces
type Repositories struct {
	Users      UserRepository
	LogEntries LogEntryRepository
}

// NewRepositories creates SQLite-backed repositories
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Users:      NewUserRepository(db),
		LogEntries: NewLogEntryRepository(db),
	}
}

// NewGormRepositories creates GORM-backed repositories (used for PostgreSQL)
func NewGormRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:      NewGormUserRepository(db),
		LogEntries: NewGormLogEntryRepository(db),
	}
}
