package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Content struct {
	ID           uint           `json:"id" gorm:"primarykey"`
	UniqueID     string         `json:"unique_id" gorm:"uniqueIndex;not null"`
	AuthorID     uint           `json:"author_id" gorm:"index;not null"`
	Author       Author         `json:"author" gorm:"foreignKey:AuthorID"`
	Title        string         `json:"title"`
	TitleSearch  string         `json:"-" gorm:"not null;default:''"`
	ThumbnailURL string         `json:"thumbnail_url"`
	LikeCount    int64          `json:"like_count" gorm:"not null;default:0"`
	CommentCount int64          `json:"comment_count" gorm:"not null;default:0"`
	ShareCount   int64          `json:"share_count" gorm:"not null;default:0"`
	ViewCount    int64          `json:"view_count" gorm:"not null;default:0"`
	BigMetadata  datatypes.JSON `json:"-"`
	SecretValue  string         `json:"-"`
	CreatedAt    time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// BeforeSave keeps TitleSearch as the Unicode lower-case form of Title, so
// title filters fold case the same way on every database.
func (c *Content) BeforeSave(tx *gorm.DB) error {
	c.TitleSearch = strings.ToLower(c.Title)
	return nil
}
