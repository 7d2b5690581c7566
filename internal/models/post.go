package models

import (
	"time"
)

// Post is a published blog post. The slug is globally unique and derived
// from the title at creation time.
type Post struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"userId"`
	User       User      `gorm:"foreignKey:UserID" json:"user"`
	Title      string    `gorm:"not null" json:"title"`
	Slug       string    `gorm:"uniqueIndex;not null" json:"slug"`
	Desc       string    `json:"desc"`
	Category   string    `gorm:"index;default:general" json:"category"`
	Content    string    `gorm:"type:text" json:"content"`
	Img        string    `json:"img,omitempty"`
	Visit      int       `gorm:"default:0" json:"visit"`
	IsFeatured bool      `gorm:"default:false" json:"isFeatured"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
