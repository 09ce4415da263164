package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/krshsl/interview-simulator/backend/models"
	"gorm.io/gorm"
)

// ErrDuplicateKey is returned when a unique constraint rejects a row
var ErrDuplicateKey = errors.New("duplicate key")

type GORMRepository struct {
	db *gorm.DB
}

func NewGORMRepository(db *gorm.DB) *GORMRepository {
	return &GORMRepository{db: db}
}

// AutoMigrate runs database migrations
func (r *GORMRepository) AutoMigrate() error {
	return r.db.AutoMigrate(
		&models.User{},
		&models.InterviewPreference{},
	)
}

// Ping checks the underlying connection pool
func (r *GORMRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// User operations
func (r *GORMRepository) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		slog.Error("Failed to create user", "error", err)
		return err
	}
	slog.Info("User created", "user_id", user.ID, "username", user.Username)
	return nil
}

func (r *GORMRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("Failed to get user by username", "error", err, "username", username)
		return nil, err
	}
	return &user, nil
}

func (r *GORMRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("Failed to get user by ID", "error", err, "user_id", id)
		return nil, err
	}
	return &user, nil
}

func (r *GORMRepository) UserExists(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		slog.Error("Failed to check user existence", "error", err, "username", username)
		return false, err
	}
	return count > 0, nil
}

// Interview preference operations
func (r *GORMRepository) CreatePreference(ctx context.Context, pref *models.InterviewPreference) error {
	if pref.ID == "" {
		pref.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(pref).Error; err != nil {
		slog.Error("Failed to create interview preference", "error", err)
		return err
	}
	slog.Info("Interview preference created", "preference_id", pref.ID, "domain", pref.Domain)
	return nil
}
