package service

import (
	"context"
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"gorm.io/gorm"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ResolveSubject maps the identity provider's subject to the local user row.
func (s *UserService) ResolveSubject(ctx context.Context, subject string) (*models.User, error) {
	user, err := s.userRepo.GetBySubject(ctx, subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User not found!")
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) SavedPosts(ctx context.Context, subject string) (models.SavedPostList, error) {
	user, err := s.ResolveSubject(ctx, subject)
	if err != nil {
		return nil, err
	}
	if user.SavedPosts == nil {
		return models.SavedPostList{}, nil
	}
	return user.SavedPosts, nil
}

// ToggleSavedPost adds the post to the user's saved list, or removes it when
// already present. Returns true when the post ended up saved.
func (s *UserService) ToggleSavedPost(ctx context.Context, subject string, postID uint) (bool, error) {
	user, err := s.ResolveSubject(ctx, subject)
	if err != nil {
		return false, err
	}

	saved := !user.SavedPosts.Contains(postID)
	if saved {
		user.SavedPosts = append(user.SavedPosts, postID)
	} else {
		user.SavedPosts = user.SavedPosts.Without(postID)
	}

	if err := s.userRepo.UpdateSavedPosts(ctx, user); err != nil {
		return false, err
	}
	return saved, nil
}
