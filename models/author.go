package models

import (
	"time"

	"gorm.io/datatypes"
)

type Author struct {
	ID            uint           `json:"id" gorm:"primarykey"`
	UniqueID      string         `json:"unique_id" gorm:"uniqueIndex;not null"`
	Username      string         `json:"username" gorm:"index;not null"`
	Name          string         `json:"name"`
	URL           string         `json:"url"`
	Title         string         `json:"title"`
	FollowerCount int64          `json:"followers" gorm:"not null;default:0"`
	BigMetadata   datatypes.JSON `json:"-"`
	SecretValue   string         `json:"-"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
