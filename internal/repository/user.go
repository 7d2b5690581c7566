// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetBySubject(ctx context.Context, subject string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateSavedPosts(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetBySubject resolves the identity provider's subject to the local user row.
// This runs on every authenticated request, so it sits behind the cache.
func (r *userRepository) GetBySubject(ctx context.Context, subject string) (*models.User, error) {
	var user models.User
	err := cache.Aside(ctx, cache.UserSubjectKey(subject), &user, cache.UserTTL, func() error {
		return r.db.WithContext(ctx).Where("subject = ?", subject).First(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateSavedPosts(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).
		Model(user).
		Update("saved_posts", user.SavedPosts).Error
	if err == nil {
		cache.InvalidateUserSubject(ctx, user.Subject)
	}
	return err
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.User{}, id).Error; err != nil {
		return err
	}
	cache.InvalidateUserSubject(ctx, user.Subject)
	return nil
}
