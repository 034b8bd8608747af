package services

import (
	"context"
	"fmt"

	"github.com/blogem/actionlog/models"
	"github.com/blogem/actionlog/repositories"
)

// UserService interface defines user lookup and provisioning
type UserService interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, form *models.UserForm) (*models.User, error)
}

// userService implements UserService interface
type userService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// FindByUsername retrieves a user by username; a nil user with a nil error means no such user
func (s *userService) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.userRepo.FindByUsername(ctx, username)
}

// CreateUser validates the form and creates a new user
func (s *userService) CreateUser(ctx context.Context, form *models.UserForm) (*models.User, error) {
	if messages := form.Validate(); len(messages) > 0 {
		var ve models.ValidationErrors
		for _, msg := range messages {
			ve = append(ve, models.ValidationError{Field: "user", Message: msg})
		}
		return nil, ve
	}

	user := form.ToUser()

	existing, err := s.userRepo.FindByUsername(ctx, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", repositories.ErrDuplicateUsername, user.Username)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}
