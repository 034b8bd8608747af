package controllers

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/blogem/actionlog/authenticator"
	"github.com/blogem/actionlog/database"
	"github.com/blogem/actionlog/models"
	"github.com/blogem/actionlog/repositories"
	"github.com/blogem/actionlog/services"
)

var errStorage = errors.New("storage unavailable")

// testStore is a migrated SQLite database with repositories and services on top
type testStore struct {
	db       *sql.DB
	repos    *repositories.Repositories
	services *services.Services
}

func newTestStore(t *testing.T) *testStore {
	t.Helper()

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "controllers.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repos := repositories.NewRepositories(db)
	return &testStore{
		db:       db,
		repos:    repos,
		services: services.NewServices(repos, zap.NewNop()),
	}
}

func (s *testStore) addUser(t *testing.T, username, role string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Role: role}
	require.NoError(t, s.repos.Users.Create(context.Background(), user))
	return user
}

func (s *testStore) logEntries(t *testing.T) []models.LogEntry {
	t.Helper()
	rows, err := s.db.Query(`SELECT username, action, request, response FROM log_entries ORDER BY timestamp`)
	require.NoError(t, err)
	defer rows.Close()

	var entries []models.LogEntry
	for rows.Next() {
		var e models.LogEntry
		require.NoError(t, rows.Scan(&e.Username, &e.Action, &e.Request, &e.Response))
		entries = append(entries, e)
	}
	require.NoError(t, rows.Err())
	return entries
}

// fakeProvider is a Provider that accepts any code and returns fixed claims
type fakeProvider struct {
	claims      authenticator.Claims
	exchangeErr error
	claimsErr   error
}

func (p *fakeProvider) GetAuthURL(state string) string {
	return "https://idp.example/authorize?state=" + url.QueryEscape(state)
}

func (p *fakeProvider) ExchangeCode(ctx context.Context, code string) (*authenticator.Token, error) {
	if p.exchangeErr != nil {
		return nil, p.exchangeErr
	}
	return &authenticator.Token{AccessToken: "access-" + code, IDToken: "id-" + code, Expiry: 1760000000}, nil
}

func (p *fakeProvider) GetClaims(ctx context.Context, token *authenticator.Token) (authenticator.Claims, error) {
	if p.claimsErr != nil {
		return nil, p.claimsErr
	}
	return p.claims, nil
}

// failingLoggingService rejects every action
type failingLoggingService struct {
	calls int
}

func (s *failingLoggingService) LogAction(ctx context.Context, username, action, request, response string) (*models.LogEntry, error) {
	s.calls++
	return nil, errStorage
}

// loginClient drives the login flow against a test server, keeping the session cookie
type loginClient struct {
	server *httptest.Server
	client *http.Client
}

func newLoginClient(t *testing.T, ctrl *AuthController) *loginClient {
	t.Helper()

	sessionHandler, err := session.Sessioner(session.Options{
		Provider:    "memory",
		CookieName:  "test_session",
		Gclifetime:  3600,
		Maxlifetime: 3600,
	})
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(sessionHandler)
	r.Get("/login", ctrl.Login)
	r.Get("/callback", ctrl.Callback)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &loginClient{
		server: server,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (c *loginClient) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := c.client.Get(c.server.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

// login starts the flow and returns the state handed to the identity provider
func (c *loginClient) login(t *testing.T) string {
	t.Helper()
	resp := c.get(t, "/login")
	require.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)

	location, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	state := location.Query().Get("state")
	require.NotEmpty(t, state)
	return state
}
