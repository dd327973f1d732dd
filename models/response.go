package models

import "time"

type AuthorResponse struct {
	ID        uint   `json:"id"`
	UniqueID  string `json:"unique_id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	Title     string `json:"title"`
	Followers int64  `json:"followers"`
}

type ContentDetail struct {
	ID              uint      `json:"id"`
	UniqueID        string    `json:"unique_id"`
	Author          uint      `json:"author"`
	Title           string    `json:"title"`
	ThumbnailURL    string    `json:"thumbnail_url"`
	LikeCount       int64     `json:"like_count"`
	CommentCount    int64     `json:"comment_count"`
	ShareCount      int64     `json:"share_count"`
	ViewCount       int64     `json:"view_count"`
	Timestamp       time.Time `json:"timestamp"`
	TotalEngagement int64     `json:"total_engagement"`
	EngagementRate  float64   `json:"engagement_rate"`
	Tags            []string  `json:"tags"`
}

// ContentResponse is the externally published shape of one content item.
type ContentResponse struct {
	Content ContentDetail  `json:"content"`
	Author  AuthorResponse `json:"author"`
}

type PaginationLinks struct {
	First    string `json:"first"`
	Previous string `json:"previous"`
	Next     string `json:"next"`
	Last     string `json:"last"`
}

type Pagination struct {
	TotalRecords int64           `json:"total_records"`
	PerPage      int             `json:"per_page"`
	CurrentPage  int             `json:"current_page"`
	TotalPages   int             `json:"total_pages"`
	Links        PaginationLinks `json:"links"`
}

type ContentListResponse struct {
	Results    []ContentResponse `json:"results"`
	Pagination Pagination        `json:"pagination"`
}

// StatsTotals are the raw sums produced by the aggregate queries.
type StatsTotals struct {
	TotalContents  int64
	TotalLikes     int64
	TotalComments  int64
	TotalShares    int64
	TotalViews     int64
	TotalFollowers int64
}

type ContentStatsResponse struct {
	TotalLikes          int64   `json:"total_likes"`
	TotalShares         int64   `json:"total_shares"`
	TotalViews          int64   `json:"total_views"`
	TotalComments       int64   `json:"total_comments"`
	TotalEngagement     int64   `json:"total_engagement"`
	TotalEngagementRate float64 `json:"total_engagement_rate"`
	TotalContents       int64   `json:"total_contents"`
	TotalFollowers      int64   `json:"total_followers"`
}

type IngestStatus string

const (
	IngestCreated IngestStatus = "created"
	IngestUpdated IngestStatus = "updated"
	IngestError   IngestStatus = "error"
)

type IngestItemResult struct {
	Index    int              `json:"index"`
	UniqueID string           `json:"unique_id,omitempty"`
	Status   IngestStatus     `json:"status"`
	Errors   []string         `json:"errors,omitempty"`
	Item     *ContentResponse `json:"item,omitempty"`
}

type IngestSummary struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

type IngestResponse struct {
	Results []IngestItemResult `json:"results"`
	Summary IngestSummary      `json:"summary"`
}
