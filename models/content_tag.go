package models

import "time"

type ContentTag struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	ContentID uint      `json:"content_id" gorm:"not null;uniqueIndex:idx_content_tag"`
	TagID     uint      `json:"tag_id" gorm:"not null;uniqueIndex:idx_content_tag;index"`
	CreatedAt time.Time `json:"created_at"`
}
