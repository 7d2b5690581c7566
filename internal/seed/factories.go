// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var categories = []string{"general", "web-design", "development", "databases", "search-engines", "marketing"}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db    *gorm.DB
	rng   *rand.Rand
	slugs map[string]bool
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	seed := time.Now().UnixNano()
	gofakeit.Seed(seed)
	return &Factory{
		db:    db,
		rng:   rand.New(rand.NewSource(seed)),
		slugs: make(map[string]bool),
	}
}

// CreateUser constructs and persists a sample user. The subject mimics the
// identity provider's id format. Optional override functions may modify the
// generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Subject:  "user_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:24],
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost constructs and persists a sample post with a unique slug and a
// realistic created_at spread over the last 90 days.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	title := strings.TrimSuffix(gofakeit.Sentence(5), ".")
	post := &models.Post{
		UserID:   user.ID,
		Title:    title,
		Slug:     f.uniqueSlug(title),
		Category: categories[f.rng.Intn(len(categories))],
		Desc:     gofakeit.Sentence(12),
		Content:  gofakeit.Paragraph(3, 5, 12, "\n\n"),
		Img:      fmt.Sprintf("https://picsum.photos/seed/%s/1200/800", gofakeit.UUID()),
		Visit:    f.rng.Intn(500),
	}
	post.CreatedAt = time.Now().Add(-time.Duration(f.rng.Intn(90*24)) * time.Hour)

	for _, override := range overrides {
		override(post)
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment constructs and persists a sample comment on the given post.
func (f *Factory) CreateComment(user *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		UserID: user.ID,
		PostID: post.ID,
		Desc:   gofakeit.Sentence(10),
	}
	for _, override := range overrides {
		override(comment)
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

func (f *Factory) uniqueSlug(title string) string {
	slug := strings.Join(strings.Fields(strings.ToLower(title)), "-")
	candidate := slug
	for counter := 2; f.slugs[candidate]; counter++ {
		candidate = fmt.Sprintf("%s-%d", slug, counter)
	}
	f.slugs[candidate] = true
	return candidate
}
