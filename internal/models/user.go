// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User mirrors an account at the identity provider. Rows are only written by
// webhook events (user.created / user.deleted), never by the API itself.
type User struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	Subject    string        `gorm:"uniqueIndex;not null" json:"subject"`
	Username   string        `gorm:"uniqueIndex;not null" json:"username"`
	Email      string        `gorm:"uniqueIndex;not null" json:"email"`
	Avatar     string        `json:"img,omitempty"`
	SavedPosts SavedPostList `gorm:"serializer:json" json:"savedPosts"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// SavedPostList is the ordered bookmark list of post IDs. There is no
// referential constraint on the listed posts.
type SavedPostList []uint

// Contains reports whether id is in the list. Linear scan; the list stays
// small in practice.
func (l SavedPostList) Contains(id uint) bool {
	for _, p := range l {
		if p == id {
			return true
		}
	}
	return false
}

// Without returns a copy of the list with id removed.
func (l SavedPostList) Without(id uint) SavedPostList {
	out := make(SavedPostList, 0, len(l))
	for _, p := range l {
		if p != id {
			out = append(out, p)
		}
	}
	return out
}
