package service

import (
	"context"
	"errors"
	"strings"

	"inkwell/internal/auth"
	"inkwell/internal/models"
	"inkwell/internal/repository"

	"gorm.io/gorm"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type CreateCommentInput struct {
	UserID uint
	PostID uint
	Desc   string
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if strings.TrimSpace(in.Desc) == "" {
		return nil, models.NewValidationError("Comment text is required")
	}

	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post not found")
		}
		return nil, err
	}

	comment := &models.Comment{
		UserID: in.UserID,
		PostID: in.PostID,
		Desc:   in.Desc,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID)
}

func (s *CommentService) DeleteComment(ctx context.Context, ident auth.Identity, userID, commentID uint) error {
	if ident.Role.Can(auth.CapWriteAny) {
		_, err := s.commentRepo.DeleteByID(ctx, commentID)
		return err
	}

	affected, err := s.commentRepo.DeleteOwned(ctx, commentID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.NewForbiddenError("You can delete only your comment!")
	}
	return nil
}
