package models

import (
	"strings"
	"time"
)

// Roles a user can hold
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account that can authenticate against the API
type User struct {
	ID        int64     `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Username  string    `json:"username" db:"username" gorm:"type:varchar(100);not null;uniqueIndex"`
	Email     string    `json:"email,omitempty" db:"email" gorm:"type:varchar(255)"`
	Role      string    `json:"role" db:"role" gorm:"type:varchar(20);not null;default:user"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TableName sets the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserForm represents the payload for creating users
type UserForm struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Validate validates the user form data
func (f *UserForm) Validate() []string {
	var errors []string

	username := strings.TrimSpace(f.Username)
	if username == "" {
		errors = append(errors, "Username is required")
	}

	if len(username) > 100 {
		errors = append(errors, "Username must be less than 100 characters")
	}

	if strings.ContainsAny(username, " \t\r\n") {
		errors = append(errors, "Username must not contain whitespace")
	}

	if f.Email != "" && len(f.Email) > 255 {
		errors = append(errors, "Email must be less than 255 characters")
	}

	if f.Email != "" && !isValidEmail(f.Email) {
		errors = append(errors, "Email format is invalid")
	}

	if f.Role != "" && f.Role != RoleUser && f.Role != RoleAdmin {
		errors = append(errors, "Role must be either user or admin")
	}

	return errors
}

// ToUser converts the form into a User, applying defaults
func (f *UserForm) ToUser() *User {
	role := f.Role
	if role == "" {
		role = RoleUser
	}
	return &User{
		Username: strings.TrimSpace(f.Username),
		Email:    strings.TrimSpace(f.Email),
		Role:     role,
	}
}

// isValidEmail performs basic email validation
func isValidEmail(email string) bool {
	// Simple validation: must contain @ and at least one dot after @
	atIndex := -1
	for i, char := range email {
		if char == '@' {
			if atIndex != -1 {
				return false // Multiple @ symbols
			}
			atIndex = i
		}
	}

	if atIndex == -1 || atIndex == 0 || atIndex == len(email)-1 {
		return false // No @, or @ at start/end
	}

	// Check for dot after @
	for i := atIndex + 1; i < len(email); i++ {
		if email[i] == '.' && i < len(email)-1 {
			return true
		}
	}

	return false
}
