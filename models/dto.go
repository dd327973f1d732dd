package models

import (
	"encoding/json"
	"time"
)

type AuthorSubmission struct {
	UniqueExternalID string          `json:"unique_external_id" validate:"required,max=255"`
	UniqueName       string          `json:"unique_name" validate:"required,max=255"`
	FullName         string          `json:"full_name" validate:"max=255"`
	URL              string          `json:"url" validate:"omitempty,url"`
	Title            string          `json:"title" validate:"max=255"`
	Followers        *int64          `json:"followers" validate:"omitempty,gte=0"`
	BigMetadata      json.RawMessage `json:"big_metadata"`
	SecretValue      string          `json:"secret_value"`
}

type ContentStats struct {
	Likes    int64 `json:"likes" validate:"gte=0"`
	Comments int64 `json:"comments" validate:"gte=0"`
	Shares   int64 `json:"shares" validate:"gte=0"`
	Views    int64 `json:"views" validate:"gte=0"`
}

type ContentBody struct {
	UnqExternalID    string          `json:"unq_external_id" validate:"required,max=255"`
	Title            string          `json:"title" validate:"max=1024"`
	ThumbnailViewURL string          `json:"thumbnail_view_url" validate:"omitempty,url"`
	Timestamp        *time.Time      `json:"timestamp"`
	BigMetadata      json.RawMessage `json:"big_metadata"`
	SecretValue      string          `json:"secret_value"`
	Stats            *ContentStats   `json:"stats" validate:"required"`
}

// ContentSubmission is one element of the ingest request body.
type ContentSubmission struct {
	Author   *AuthorSubmission `json:"author" validate:"required"`
	Content  *ContentBody      `json:"content" validate:"required"`
	Hashtags []string          `json:"hashtags" validate:"omitempty,dive,max=100"`
}

// ContentListQuery holds the raw query string of the list and stats endpoints.
// Values are kept as strings so malformed numbers can be reported by name.
type ContentListQuery struct {
	AuthorID       string `form:"author_id"`
	AuthorUsername string `form:"author_username"`
	TagID          string `form:"tag_id"`
	Tag            string `form:"tag"`
	Timeframe      string `form:"timeframe"`
	Title          string `form:"title"`
	Page           string `form:"page"`
	ItemsPerPage   string `form:"items_per_page"`
	Limit          string `form:"limit"`
}

type ContentFilter struct {
	AuthorID       uint
	AuthorUsername string
	TagID          uint
	TagName        string
	TimeframeDays  *int
	Title          string
}

type PageRequest struct {
	Page         int
	ItemsPerPage int
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.ItemsPerPage
}
