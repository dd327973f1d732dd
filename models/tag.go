package models

import (
	"time"
)

type Tag struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TagWithCount is a tag plus the number of contents linked to it.
type TagWithCount struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	ContentCount int64  `json:"content_count"`
}
