package service

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

func TestToggleSavedPost(t *testing.T) {
	user := &models.User{Subject: "user_1", Username: "reader"}
	repo := &userRepoStub{
		getBySubjectFn: func(_ context.Context, _ string) (*models.User, error) {
			return user, nil
		},
		updateSavedPostsFn: func(_ context.Context, u *models.User) error {
			user = u
			return nil
		},
	}

	svc := NewUserService(repo)

	saved, err := svc.ToggleSavedPost(context.Background(), "user_1", 42)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !saved {
		t.Fatal("first toggle should save")
	}
	if !user.SavedPosts.Contains(42) {
		t.Fatal("post missing from saved list")
	}

	saved, err = svc.ToggleSavedPost(context.Background(), "user_1", 42)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if saved {
		t.Fatal("second toggle should unsave")
	}
	if user.SavedPosts.Contains(42) {
		t.Fatal("post still in saved list")
	}
}

func TestSavedPostsEmptyListNotNil(t *testing.T) {
	repo := &userRepoStub{
		getBySubjectFn: func(_ context.Context, _ string) (*models.User, error) {
			return &models.User{Subject: "user_1"}, nil
		},
	}

	svc := NewUserService(repo)
	saved, err := svc.SavedPosts(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("SavedPosts: %v", err)
	}
	if saved == nil {
		t.Fatal("expected empty list, got nil")
	}
}

func TestResolveSubjectUnknownIs404(t *testing.T) {
	repo := &userRepoStub{
		getBySubjectFn: func(_ context.Context, _ string) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewUserService(repo)
	_, err := svc.ResolveSubject(context.Background(), "user_missing")

	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Status != 404 {
		t.Fatalf("expected 404 app error, got %v", err)
	}
}
