// Package service holds the business rules between the HTTP handlers and the
// repositories.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inkwell/internal/auth"
	"inkwell/internal/models"
	"inkwell/internal/repository"

	"gorm.io/gorm"
)

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

type CreatePostInput struct {
	UserID   uint
	Title    string
	Category string
	Desc     string
	Content  string
	Img      string
}

type ListPostsInput struct {
	Page     int
	Limit    int
	Category string
	Author   string
	Search   string
	Featured bool
	Sort     string
}

// PostPage is one page of a listing plus the flag the client's infinite
// scroll keys off of.
type PostPage struct {
	Posts   []*models.Post `json:"posts"`
	HasMore bool           `json:"hasMore"`
}

const (
	defaultPage  = 1
	defaultLimit = 2
	maxLimit     = 50

	maxTitleLen   = 300
	maxContentLen = 50000
)

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}

	slug, err := s.uniqueSlug(ctx, in.Title)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:   in.UserID,
		Title:    in.Title,
		Slug:     slug,
		Category: in.Category,
		Desc:     in.Desc,
		Content:  in.Content,
		Img:      in.Img,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// uniqueSlug derives a slug from the title and probes slug-2, slug-3, ...
// until a free one turns up. Two requests probing the same title at once can
// race to the same candidate; the unique index on slug rejects the loser.
func (s *PostService) uniqueSlug(ctx context.Context, title string) (string, error) {
	slug := Slugify(title)

	candidate := slug
	for counter := 2; ; counter++ {
		exists, err := s.postRepo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", slug, counter)
	}
}

// Slugify lowercases the title and replaces runs of spaces with hyphens.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}

// GetPost fetches a post by slug and bumps its visit counter. The counter
// feeds the popular and trending sorts; the increment is fire-and-forget so
// a failed bump never hides the post.
func (s *PostService) GetPost(ctx context.Context, slug string) (*models.Post, error) {
	post, err := s.postRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post not found")
		}
		return nil, err
	}
	if err := s.postRepo.IncrementVisit(ctx, post.ID); err == nil {
		post.Visit++
	}
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) (*PostPage, error) {
	page := in.Page
	if page < 1 {
		page = defaultPage
	}
	limit := in.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	filter := repository.ListFilter{
		Category:     in.Category,
		Search:       in.Search,
		FeaturedOnly: in.Featured,
		Sort:         in.Sort,
		Limit:        limit,
		Offset:       (page - 1) * limit,
	}

	if in.Author != "" {
		author, err := s.userRepo.GetByUsername(ctx, in.Author)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewNotFoundError("Author not found")
			}
			return nil, err
		}
		filter.AuthorID = author.ID
	}

	posts, err := s.postRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	// hasMore is computed against the full table count, not the filtered
	// count. Filtered listings can report more pages than they have; the
	// client stops on the first empty page regardless.
	total, err := s.postRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	return &PostPage{
		Posts:   posts,
		HasMore: int64(page)*int64(limit) < total,
	}, nil
}

func (s *PostService) DeletePost(ctx context.Context, ident auth.Identity, userID, postID uint) error {
	if ident.Role.Can(auth.CapWriteAny) {
		return s.postRepo.DeleteByID(ctx, postID)
	}

	affected, err := s.postRepo.DeleteOwned(ctx, postID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.NewForbiddenError("You can delete only your posts!")
	}
	return nil
}

// FeaturePost flips the featured flag on a post. Only moderators reach this
// path; the handler enforces the role before calling in.
func (s *PostService) FeaturePost(ctx context.Context, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post not found")
		}
		return nil, err
	}

	if err := s.postRepo.SetFeatured(ctx, post.ID, !post.IsFeatured); err != nil {
		return nil, err
	}
	post.IsFeatured = !post.IsFeatured
	return post, nil
}
