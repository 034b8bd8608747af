package services

import (
	"github.com/blogem/actionlog/repositories"
	"go.uber.org/zap"
)

// Services holds all service instances
type Services struct {
	Users   UserService
	Logging LoggingService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories, logger *zap.Logger) *Services {
	return &Services{
		Users:   NewUserService(repos.Users),
		Logging: NewLoggingService(repos.LogEntries, logger),
	}
}
