package services

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Repository is everything the HTTP layer needs from persistence
type Repository interface {
	UserRepository
	PreferenceRepository
	Ping(ctx context.Context) error
}

// Server holds all server dependencies
type Server struct {
	config             *Config
	repo               Repository
	databaseConfigured bool
	completionClient   CompletionClient
	authService        *AuthService
	authEndpoints      *AuthEndpoints
	interviewEndpoints *InterviewEndpoints
}

// NewServer creates a new server instance
func NewServer(config *Config) *Server {
	return &Server{
		config: config,
	}
}

// SetRepository sets the persistence backend. databaseConfigured reports
// whether it is an external database that the health check should ping.
func (s *Server) SetRepository(repo Repository, databaseConfigured bool) {
	s.repo = repo
	s.databaseConfigured = databaseConfigured
}

// SetCompletionClient injects the completion client instead of building one
// from configuration
func (s *Server) SetCompletionClient(client CompletionClient) {
	s.completionClient = client
}

// InitializeServices initializes all server services
func (s *Server) InitializeServices() error {
	if s.completionClient == nil {
		client, err := NewCompletionClient(s.config.AI)
		if err != nil {
			slog.Error("Completion client not configured, AI endpoints will return fallbacks", "error", err, "provider", s.config.AI.Provider)
			client = unavailableClient{reason: err}
		} else {
			slog.Info("Completion client initialized", "provider", s.config.AI.Provider)
		}
		s.completionClient = client
	}

	policy := ParseBatchPolicy(s.config.AI.FeedbackPolicy)
	questions := NewQuestionGenerator(s.completionClient, s.config.AI.Model)
	feedback := NewFeedbackGenerator(s.completionClient, s.config.AI.Model, policy)
	s.interviewEndpoints = NewInterviewEndpoints(s.repo, questions, feedback)

	if s.config.JWT.Secret == "" {
		slog.Warn("JWT secret not configured, login will not issue access tokens")
	}
	s.authService = NewAuthService(s.repo, s.config.JWT.Secret, s.config.IsProduction())
	s.authEndpoints = NewAuthEndpoints(s.authService)

	slog.Info("Services initialized", "feedback_policy", policy)
	return nil
}

// SetupRoutes configures all HTTP routes
func (s *Server) SetupRoutes() *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	allowedOrigins := parseAllowedOrigins(s.config.CORS.AllowedOrigins)
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			return slices.Contains(allowedOrigins, origin)
		},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.homeHandler)
	r.Get("/health", s.healthHandler)

	s.interviewEndpoints.RegisterRoutes(r)
	s.authEndpoints.RegisterRoutes(r)

	return r
}

// Start starts the HTTP server and blocks until SIGINT or SIGTERM
func (s *Server) Start() {
	port := s.config.Server.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: s.SetupRoutes(),
	}

	// Graceful shutdown
	go func() {
		slog.Info("Starting server", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server exited")
}

// parseAllowedOrigins splits a comma-separated origin list. An empty list
// allows no cross-origin requests.
func parseAllowedOrigins(allowedOriginsStr string) []string {
	origins := []string{}
	for _, origin := range strings.Split(allowedOriginsStr, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func (s *Server) homeHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, s.config.App.HomeURL, http.StatusFound)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	dbStatus := "not configured"

	if s.databaseConfigured {
		if err := s.repo.Ping(r.Context()); err != nil {
			slog.Error("Database ping failed", "error", err)
			dbStatus = "down"
			status = "degraded"
		} else {
			dbStatus = "up"
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":   status,
		"database": dbStatus,
	})
}
