package middleware

import (
	"context"
	"errors"
	"sync"

	"github.com/blogem/actionlog/models"
)

// fakeUsers is an in-memory UserFinder
type fakeUsers struct {
	users map[string]*models.User
	err   error
}

func (f *fakeUsers) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[username], nil
}

type loggedAction struct {
	Username string
	Action   string
	Request  string
	Response string
	CtxErr   error
}

// recordingLoggingService captures LogAction calls
type recordingLoggingService struct {
	mu      sync.Mutex
	actions []loggedAction
	err     error
}

func (s *recordingLoggingService) LogAction(ctx context.Context, username, action, request, response string) (*models.LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.actions = append(s.actions, loggedAction{
		Username: username,
		Action:   action,
		Request:  request,
		Response: response,
		CtxErr:   ctx.Err(),
	})
	if s.err != nil {
		return nil, s.err
	}
	return &models.LogEntry{Username: username, Action: action, Request: request, Response: response}, nil
}

var errStorage = errors.New("storage unavailable")
