package seed

import (
	"fmt"
	"log/slog"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// Seeder populates the database with demo users, posts, and comments.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seeded content.
func (s *Seeder) ClearAll() error {
	for _, table := range []string{"comments", "posts", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// Run creates numUsers users, numPosts posts spread across them, and roughly
// three comments per post. A handful of posts get the featured flag so the
// featured listing has content.
func (s *Seeder) Run(numUsers, numPosts int) error {
	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}
	slog.Info("seeded users", "count", len(users))

	posts := make([]*models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		author := users[s.factory.rng.Intn(len(users))]
		featured := i%10 == 0
		post, err := s.factory.CreatePost(author, func(p *models.Post) {
			p.IsFeatured = featured
		})
		if err != nil {
			return fmt.Errorf("seed post: %w", err)
		}
		posts = append(posts, post)
	}
	slog.Info("seeded posts", "count", len(posts))

	var comments int
	for _, post := range posts {
		n := s.factory.rng.Intn(6)
		for i := 0; i < n; i++ {
			commenter := users[s.factory.rng.Intn(len(users))]
			if _, err := s.factory.CreateComment(commenter, post); err != nil {
				return fmt.Errorf("seed comment: %w", err)
			}
			comments++
		}
	}
	slog.Info("seeded comments", "count", comments)

	return nil
}
