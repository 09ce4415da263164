package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/krshsl/interview-simulator/backend/models"
)

// MemoryRepository keeps users and preferences in process memory. It backs
// the server when no database is configured and is used by tests.
type MemoryRepository struct {
	mu          sync.RWMutex
	users       map[string]*models.User // keyed by username
	preferences map[string]*models.InterviewPreference
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:       make(map[string]*models.User),
		preferences: make(map[string]*models.InterviewPreference),
	}
}

func (r *MemoryRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (r *MemoryRepository) CreateUser(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return ErrDuplicateKey
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	r.users[user.Username] = &stored
	return nil
}

func (r *MemoryRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	out := *user
	return &out, nil
}

func (r *MemoryRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.ID == id {
			out := *user
			return &out, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) UserExists(ctx context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.users[username]
	return ok, nil
}

func (r *MemoryRepository) CreatePreference(ctx context.Context, pref *models.InterviewPreference) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if pref.ID == "" {
		pref.ID = uuid.New().String()
	}
	now := time.Now()
	pref.CreatedAt = now
	pref.UpdatedAt = now

	stored := *pref
	r.preferences[pref.ID] = &stored
	return nil
}

// Preferences returns a snapshot of stored preferences
func (r *MemoryRepository) Preferences() []models.InterviewPreference {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.InterviewPreference, 0, len(r.preferences))
	for _, p := range r.preferences {
		out = append(out, *p)
	}
	return out
}
