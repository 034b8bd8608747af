package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"gitea.com/go-chi/session"
	"github.com/blogem/actionlog/authenticator"
	"github.com/blogem/actionlog/config"
	"github.com/blogem/actionlog/controllers"
	"github.com/blogem/actionlog/database"
	"github.com/blogem/actionlog/logging"
	"github.com/blogem/actionlog/metrics"
	authmiddleware "github.com/blogem/actionlog/middleware"
	"github.com/blogem/actionlog/models"
	"github.com/blogem/actionlog/repositories"
	"github.com/blogem/actionlog/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func main() {
	bootstrapAdmin := flag.String("bootstrap-admin", "", "create an admin user with this username if it does not exist")
	issueToken := flag.String("issue-token", "", "print a signed bearer token for this username and exit (requires JWT_SECRET)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	defer logger.Sync()

	if *issueToken != "" {
		if err := printToken(cfg, *issueToken); err != nil {
			log.Fatalf("Failed to issue token: %v", err)
		}
		return
	}

	// Initialize storage
	repos, closeDB, err := openRepositories(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer closeDB()

	// Initialize services
	srvs := services.NewServices(repos, logger)

	if *bootstrapAdmin != "" {
		if err := ensureAdmin(context.Background(), srvs, *bootstrapAdmin); err != nil {
			log.Fatalf("Failed to bootstrap admin: %v", err)
		}
	}

	// Initialize auth
	provider, verifier, err := setupAuth(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize authentication: %v", err)
	}

	// Initialize controllers
	ctrl := controllers.NewControllers(srvs, provider, logger)

	// Set up router
	r, err := setupRouter(ctrl, srvs, verifier, metrics.New(), logger, routerOptions{
		UseHTTPS:    cfg.UseHTTPS,
		EnableLogin: provider != nil,
	})
	if err != nil {
		log.Fatalf("Failed to setup router: %v", err)
	}

	fmt.Printf("🚀 actionlog starting on port %s\n", cfg.Port)
	fmt.Printf("📂 Visit: http://localhost:%s/health\n", cfg.Port)
	fmt.Printf("🗃️  Database: %s\n", cfg.DBDriver)
	if provider != nil {
		fmt.Printf("🔐 OIDC login: https://%s\n", cfg.OIDCDomain)
	}

	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}

// openRepositories opens the configured storage backend and returns its repositories
// together with a function that releases the connection
func openRepositories(cfg *config.Config) (*repositories.Repositories, func(), error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		gdb, err := database.OpenPostgres(database.PostgresConfig{
			DSN:             cfg.DatabaseURL,
			MaxOpenConns:    cfg.DBMaxOpenConns,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			ConnMaxLifetime: cfg.DBConnLifetime,
		})
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if sqlDB, err := gdb.DB(); err == nil {
				sqlDB.Close()
			}
		}
		return repositories.NewGormRepositories(gdb), closeFn, nil
	default:
		if err := database.InitializeDatabase(cfg.DBPath); err != nil {
			return nil, nil, err
		}
		closeFn := func() { database.CloseDB() }
		return repositories.NewRepositories(database.GetDB()), closeFn, nil
	}
}

// setupAuth selects the token verifier. An OIDC provider also serves interactive login;
// without one, bearer tokens are HS256 JWTs signed with JWT_SECRET and provider is nil.
func setupAuth(ctx context.Context, cfg *config.Config) (authenticator.Provider, authenticator.TokenVerifier, error) {
	if cfg.OIDCEnabled() {
		p, err := authenticator.NewOpenIDProvider(ctx, authenticator.OpenIDConfig{
			Domain:       cfg.OIDCDomain,
			ClientID:     cfg.OIDCClientID,
			ClientSecret: cfg.OIDCClientSecret,
			CallbackURL:  cfg.OIDCCallbackURL,
		})
		if err != nil {
			return nil, nil, err
		}
		return p, p, nil
	}

	h, err := newHMACProvider(cfg)
	if err != nil {
		return nil, nil, err
	}
	return nil, h, nil
}

func newHMACProvider(cfg *config.Config) (*authenticator.HMACProvider, error) {
	return authenticator.NewHMACProvider(authenticator.HMACConfig{
		Secret: cfg.JWTSecret,
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.JWTTTL,
	})
}

// printToken writes a signed token for username to stdout
func printToken(cfg *config.Config, username string) error {
	h, err := newHMACProvider(cfg)
	if err != nil {
		return err
	}
	token, expiresAt, err := h.IssueToken(username)
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", token)
	fmt.Printf("# expires %s\n", expiresAt.Format(time.RFC3339))
	return nil
}

// ensureAdmin creates an admin user unless the username is already taken
func ensureAdmin(ctx context.Context, srvs *services.Services, username string) error {
	_, err := srvs.Users.CreateUser(ctx, &models.UserForm{Username: username, Role: models.RoleAdmin})
	if errors.Is(err, repositories.ErrDuplicateUsername) {
		fmt.Printf("👤 Admin %s already exists\n", username)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("👤 Created admin %s\n", username)
	return nil
}

type routerOptions struct {
	UseHTTPS    bool
	EnableLogin bool
}

// setupRouter configures all routes
func setupRouter(ctrl *controllers.Controllers, srvs *services.Services, verifier authenticator.TokenVerifier, m *metrics.Metrics, logger *zap.Logger, opts routerOptions) (*chi.Mux, error) {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(authmiddleware.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second)) // 60 second timeout for OAuth callbacks

	// PUBLIC ROUTES (no authentication required)
	r.Get("/health", ctrl.Health.Index)
	r.Handle("/metrics", m.Handler())

	if opts.EnableLogin {
		// Session middleware, only needed to carry the OAuth state between login and callback
		sessionHandler, err := session.Sessioner(session.Options{
			Provider:       "memory",
			ProviderConfig: "",
			CookieName:     "actionlog_session",
			Secure:         opts.UseHTTPS, // Set to true when USE_HTTPS=true (production)
			Gclifetime:     3600,          // Session lifetime in seconds
			Maxlifetime:    3600,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize session: %w", err)
		}

		r.Group(func(r chi.Router) {
			r.Use(sessionHandler)
			r.Get("/login", ctrl.Auth.Login)
			r.Get("/callback", ctrl.Auth.Callback)
		})
	}

	// PROTECTED ROUTES (authentication required, mutations audited)
	r.Route("/api", func(r chi.Router) {
		r.Use(authmiddleware.RequireAuth(verifier, srvs.Users, m, logger))
		r.Use(authmiddleware.AuditLogger(srvs.Logging, m, logger))

		r.Get("/me", ctrl.Users.Me)
		r.With(authmiddleware.RequireRole(models.RoleAdmin, m)).Post("/users", ctrl.Users.Create)
	})

	return r, nil
}
