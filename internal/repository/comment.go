package repository

import (
	"context"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error)
	DeleteOwned(ctx context.Context, id, userID uint) (int64, error)
	DeleteByID(ctx context.Context, id uint) (int64, error)
	DeleteByUser(ctx context.Context, userID uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Create(comment).Error
	if err == nil {
		cache.InvalidatePostComments(ctx, comment.PostID)
	}
	return err
}

// ListByPost returns every comment on a post, newest first, with the author
// joined in. Comment threads are read whole; there is no pagination here.
func (r *commentRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := cache.Aside(ctx, cache.PostCommentsKey(postID), &comments, cache.CommentsTTL, func() error {
		return r.db.WithContext(ctx).
			Preload("User").
			Where("post_id = ?", postID).
			Order("created_at DESC").
			Find(&comments).Error
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteOwned removes the comment only when it belongs to userID, in one
// statement. Callers inspect the affected-row count.
func (r *commentRepository) DeleteOwned(ctx context.Context, id, userID uint) (int64, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Select("post_id").First(&comment, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, err
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Comment{})
	if result.Error == nil && result.RowsAffected > 0 {
		cache.InvalidatePostComments(ctx, comment.PostID)
	}
	return result.RowsAffected, result.Error
}

func (r *commentRepository) DeleteByID(ctx context.Context, id uint) (int64, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Select("post_id").First(&comment, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, err
	}

	result := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if result.Error == nil && result.RowsAffected > 0 {
		cache.InvalidatePostComments(ctx, comment.PostID)
	}
	return result.RowsAffected, result.Error
}

func (r *commentRepository) DeleteByUser(ctx context.Context, userID uint) error {
	// Collect the posts whose cached comment lists go stale.
	var postIDs []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("user_id = ?", userID).
		Distinct().
		Pluck("post_id", &postIDs).Error; err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Comment{}).Error; err != nil {
		return err
	}

	for _, postID := range postIDs {
		cache.InvalidatePostComments(ctx, postID)
	}
	return nil
}
