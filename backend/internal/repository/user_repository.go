package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"packsite/backend/internal/domain/user"
)

// UserRepository wraps the admin users table.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository constructs the repository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByUsername loads a user by login name.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var entry user.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindByID loads a user by primary key.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var entry user.User
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// Create inserts a user.
func (r *UserRepository) Create(ctx context.Context, entry *user.User) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// TouchLastLogin records a successful login timestamp.
func (r *UserRepository) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&user.User{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
}

// Count returns the number of registered users. The seed command uses
// it to avoid creating a second bootstrap admin.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&user.User{}).Count(&count).Error
	return count, err
}
