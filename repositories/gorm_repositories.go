package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/blogem/actionlog/models"
	"gorm.io/gorm"
)

// gormUserRepository implements UserRepository using GORM (works with SQLite or PostgreSQL).
// The connection must be opened with TranslateError so unique violations map to gorm.ErrDuplicatedKey.
type gormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a GORM-backed user repository
func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

// FindByUsername retrieves a user by username
func (r *gormUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var users []models.User
	result := r.db.WithContext(ctx).
		Where("username = ?", username).
		Limit(2).
		Find(&users)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to query user: %w", result.Error)
	}

	return singleUser(users, username)
}

// Create creates a new user
func (r *gormUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", ErrDuplicateUsername, user.Username)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// gormLogEntryRepository implements LogEntryRepository using GORM
type gormLogEntryRepository struct {
	db *gorm.DB
}

// NewGormLogEntryRepository creates a GORM-backed log entry repository
func NewGormLogEntryRepository(db *gorm.DB) LogEntryRepository {
	return &gormLogEntryRepository{db: db}
}

// Save inserts a new log entry
func (r *gormLogEntryRepository) Save(ctx context.Context, entry *models.LogEntry) error {
	prepareLogEntry(entry)

	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to save log entry: %w", err)
	}
	return nil
}
