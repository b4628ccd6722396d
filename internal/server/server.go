// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the composition root: the entire dependency chain is wired in one
// place (New/setupRoutes) — sqlite.DB at the bottom, services in the middle,
// handlers at the top — rather than scattered across the codebase. Each
// layer receives only what it needs: services get repository interfaces,
// handlers get services, nothing holds state across requests except the
// connection pool itself.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sakif/clubmonkey/internal/auth"
	"github.com/sakif/clubmonkey/internal/handler"
	"github.com/sakif/clubmonkey/internal/middleware"
	sqliteRepo "github.com/sakif/clubmonkey/internal/repository/sqlite"
	"github.com/sakif/clubmonkey/internal/service"
)

// Config holds server configuration, loaded from the environment in main.
type Config struct {
	Port       int
	DBPath     string // path to the SQLite database file
	JWTSecret  string // HMAC secret for session tokens
	CORSOrigin string // browser frontend origin, e.g. http://localhost:3000
}

// Server owns the router and the database connection. The connection is
// closed during graceful shutdown in Start.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server: opens the database, wires services and handlers,
// and registers all routes.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// Handler exposes the router, mainly so tests can drive the full middleware
// and routing stack through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database connection. Start does this itself on
// shutdown; callers that never Start (tests) should Close explicitly.
func (s *Server) Close() error {
	return s.db.Close()
}

// setupRoutes configures middleware, builds the dependency graph, and maps
// every route to its handler.
//
// Middleware order matters: RequestID and RealIP first so the logger sees
// them, Recoverer before our logger so panics still produce a request log
// line, CORS last before routing.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// The frontend is a separate browser app; it needs CORS with
	// credentials so the HttpOnly token cookie survives cross-origin calls.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.config.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	// Repository views over the shared pool.
	users := s.db.Users()
	clubs := s.db.Clubs()
	posts := s.db.Posts()
	projects := s.db.Projects()

	// Services.
	authService := service.NewAuthService(users, tokens, passwords, s.logger)
	userService := service.NewUserService(users, s.logger)
	clubService := service.NewClubService(clubs, posts, users, s.logger)
	projectService := service.NewProjectService(projects, users, s.logger)
	profileService := service.NewProfileService(users, clubs, projects, s.logger)

	// Handlers.
	authHandler := handler.NewAuthHandler(authService, s.logger)
	userHandler := handler.NewUserHandler(userService, s.logger)
	clubHandler := handler.NewClubHandler(clubService, s.logger)
	projectHandler := handler.NewProjectHandler(projectService, s.logger)
	profileHandler := handler.NewProfileHandler(profileService, s.logger)

	s.router.Get("/", handler.HandleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/signup", authHandler.HandleSignup)
		r.Post("/login", authHandler.HandleLogin)

		r.Get("/users", userHandler.HandleList)
		r.Put("/users/preferences", userHandler.HandleUpdatePreferences)

		r.Get("/clubs", clubHandler.HandleList)
		r.Post("/clubs", clubHandler.HandleCreate)
		// The static "recommended" segment must not be swallowed by
		// {clubID}; chi routes static segments with higher precedence.
		r.Get("/clubs/recommended/{userID}", clubHandler.HandleRecommended)
		r.Get("/clubs/{clubID}", clubHandler.HandleDetails)
		r.Delete("/clubs/{clubID}", clubHandler.HandleDelete)
		r.Post("/clubs/{clubID}/join", clubHandler.HandleJoin)
		r.Post("/clubs/{clubID}/posts", clubHandler.HandleCreatePost)

		r.Get("/projects", projectHandler.HandleList)
		r.Post("/projects", projectHandler.HandleCreate)
		r.Get("/projects/{projectID}", projectHandler.HandleDetails)
		r.Post("/projects/{projectID}/join", projectHandler.HandleJoin)

		r.Get("/profile/{userID}", profileHandler.HandleProfile)

		// Routes that need a valid session token.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))
			r.Get("/me", authHandler.HandleMe)
		})
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests for up to
// 30 seconds, close the database (flushes the WAL, releases the file lock).
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
