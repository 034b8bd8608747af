package services

import (
	"context"
	"time"

	"github.com/blogem/actionlog/models"
	"github.com/blogem/actionlog/repositories"
	"go.uber.org/zap"
)

// LoggingService records user actions to the operational log and the audit store
type LoggingService interface {
	// LogAction writes one log line, then persists one LogEntry.
	// The two writes are not atomic: a failed save leaves the log line in place.
	LogAction(ctx context.Context, username, action, request, response string) (*models.LogEntry, error)
}

// loggingService implements LoggingService interface
type loggingService struct {
	logEntryRepo repositories.LogEntryRepository
	logger       *zap.Logger
	now          func() time.Time
}

// NewLoggingService creates a new logging service
func NewLoggingService(logEntryRepo repositories.LogEntryRepository, logger *zap.Logger) LoggingService {
	return &loggingService{
		logEntryRepo: logEntryRepo,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// LogAction records a user action. Inputs are stored exactly as given.
func (s *loggingService) LogAction(ctx context.Context, username, action, request, response string) (*models.LogEntry, error) {
	s.logger.Info("user action",
		zap.String("username", username),
		zap.String("action", action),
		zap.String("request", request),
		zap.String("response", response),
	)

	entry := &models.LogEntry{
		Username:  username,
		Action:    action,
		Request:   request,
		Response:  response,
		Timestamp: s.now(),
	}

	if err := s.logEntryRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}
