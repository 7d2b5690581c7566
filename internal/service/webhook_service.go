package service

import (
	"context"
	"errors"
	"fmt"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/webhook"

	"gorm.io/gorm"
)

// WebhookService applies verified identity-provider events to local state.
type WebhookService struct {
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

func NewWebhookService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
) *WebhookService {
	return &WebhookService{
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// Apply dispatches a verified event. Unknown event types are acknowledged
// without effect so the provider does not retry them forever.
func (s *WebhookService) Apply(ctx context.Context, evt webhook.Event) error {
	span, ctx := observability.NewSpan(ctx, fmt.Sprintf("webhook.%s", evt.EventType()))
	defer span.End()

	var err error
	switch e := evt.(type) {
	case webhook.UserCreatedEvent:
		err = s.applyUserCreated(ctx, e)
	case webhook.UserDeletedEvent:
		err = s.applyUserDeleted(ctx, e)
	case webhook.UnknownEvent:
		middleware.WebhookEvents.WithLabelValues(e.EventType(), "ignored").Inc()
		return nil
	}

	outcome := "applied"
	if err != nil {
		outcome = "failed"
		span.SetError(err)
	}
	middleware.WebhookEvents.WithLabelValues(evt.EventType(), outcome).Inc()
	return err
}

func (s *WebhookService) applyUserCreated(ctx context.Context, evt webhook.UserCreatedEvent) error {
	// Redelivery of an event we already applied.
	if _, err := s.userRepo.GetBySubject(ctx, evt.ID); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	user := &models.User{
		Subject:  evt.ID,
		Username: evt.Username,
		Email:    evt.Email,
		Avatar:   evt.Avatar,
	}
	return s.userRepo.Create(ctx, user)
}

// applyUserDeleted removes the user row first, then the posts and comments
// they authored. The three deletes are not wrapped in one transaction; a
// crash after the user delete leaves orphan posts and comments that a
// redelivery cannot reach, since the subject no longer resolves.
func (s *WebhookService) applyUserDeleted(ctx context.Context, evt webhook.UserDeletedEvent) error {
	user, err := s.userRepo.GetBySubject(ctx, evt.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		return err
	}
	if err := s.postRepo.DeleteByUser(ctx, user.ID); err != nil {
		return err
	}
	return s.commentRepo.DeleteByUser(ctx, user.ID)
}
