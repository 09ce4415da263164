package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// DatabaseSeeder creates demo accounts for local development
type DatabaseSeeder struct {
	auth *AuthService
}

// NewDatabaseSeeder creates a new database seeder
func NewDatabaseSeeder(auth *AuthService) *DatabaseSeeder {
	return &DatabaseSeeder{auth: auth}
}

// SeedDatabase seeds the demo users (idempotent)
func (s *DatabaseSeeder) SeedDatabase(ctx context.Context) error {
	users := []struct {
		username string
		password string
	}{
		{"demo", "password"},
		{"test", "password"},
	}

	for _, u := range users {
		_, err := s.auth.Signup(ctx, u.username, u.password)
		switch {
		case errors.Is(err, ErrUserExists):
			slog.Info("Seed user already exists, skipping", "username", u.username)
		case err != nil:
			return fmt.Errorf("failed to seed user %s: %w", u.username, err)
		default:
			slog.Info("Seeded user", "username", u.username)
		}
	}
	return nil
}

// Seed runs the seeder against the server's repository
func (s *Server) Seed(ctx context.Context) error {
	return NewDatabaseSeeder(s.authService).SeedDatabase(ctx)
}
