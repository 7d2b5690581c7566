package repository

import (
	"context"
	"time"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// ListFilter narrows and orders a post listing. Zero values mean "no filter".
type ListFilter struct {
	Category     string
	AuthorID     uint
	Search       string
	FeaturedOnly bool
	Sort         string
	Limit        int
	Offset       int
}

// TrendingWindow bounds how old a post may be and still rank as trending.
const TrendingWindow = 7 * 24 * time.Hour

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]*models.Post, error)
	CountAll(ctx context.Context) (int64, error)
	IncrementVisit(ctx context.Context, id uint) error
	DeleteOwned(ctx context.Context, id, userID uint) (int64, error)
	DeleteByID(ctx context.Context, id uint) error
	DeleteByUser(ctx context.Context, userID uint) error
	SetFeatured(ctx context.Context, id uint, featured bool) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("slug = ?", slug).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("User").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("slug = ?", slug).
		Count(&count).Error
	return count > 0, err
}

func (r *postRepository) List(ctx context.Context, filter ListFilter) ([]*models.Post, error) {
	var posts []*models.Post
	q := r.db.WithContext(ctx).Preload("User")

	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.AuthorID != 0 {
		q = q.Where("user_id = ?", filter.AuthorID)
	}
	if filter.Search != "" {
		q = q.Where("LOWER(title) LIKE LOWER(?)", "%"+filter.Search+"%")
	}
	if filter.FeaturedOnly {
		q = q.Where("is_featured = ?", true)
	}

	err := r.applySort(q, filter.Sort).
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// applySort appends the ORDER BY (and for trending an extra WHERE) for the
// requested sort type. The cutoff is computed here rather than in SQL so the
// same query runs on both Postgres and the sqlite test database.
func (r *postRepository) applySort(db *gorm.DB, sort string) *gorm.DB {
	switch sort {
	case "oldest":
		return db.Order("created_at ASC")
	case "popular":
		return db.Order("visit DESC")
	case "trending":
		cutoff := time.Now().Add(-TrendingWindow)
		return db.
			Where("created_at >= ?", cutoff).
			Order("visit DESC")
	default: // "newest" and anything unrecognized
		return db.Order("created_at DESC")
	}
}

// CountAll returns the total number of posts regardless of any active filter.
func (r *postRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&count).Error
	return count, err
}

func (r *postRepository) IncrementVisit(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("visit", gorm.Expr("visit + 1")).Error
}

// DeleteOwned removes the post only when it belongs to userID. The ownership
// check and the delete are a single statement, so a concurrent transfer or
// delete cannot slip between them. Callers inspect the affected-row count.
func (r *postRepository) DeleteOwned(ctx context.Context, id, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Post{})
	return result.RowsAffected, result.Error
}

func (r *postRepository) DeleteByID(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Post{}, id).Error
}

func (r *postRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Post{}).Error
}

func (r *postRepository) SetFeatured(ctx context.Context, id uint, featured bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Update("is_featured", featured)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
