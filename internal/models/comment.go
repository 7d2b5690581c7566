package models

import (
	"time"
)

// Comment belongs to a post and a user. Deleting a post does not cascade to
// its comments; only user deletion does (see the webhook service).
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	PostID    uint      `gorm:"not null;index" json:"postId"`
	Desc      string    `gorm:"not null" json:"desc"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
