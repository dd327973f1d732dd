package services

import (
	"strings"

	"content-analytics-api/models"
)

func TotalEngagement(likes, comments, shares int64) int64 {
	return likes + comments + shares
}

// EngagementRate is engagement per view, zero when nothing was viewed.
func EngagementRate(totalEngagement, views int64) float64 {
	if views <= 0 {
		return 0
	}
	return float64(totalEngagement) / float64(views)
}

// BuildStats derives the aggregate response from the raw sums. The rate is
// computed from the totals, never as a sum of per-row rates.
func BuildStats(totals models.StatsTotals) models.ContentStatsResponse {
	engagement := TotalEngagement(totals.TotalLikes, totals.TotalComments, totals.TotalShares)
	return models.ContentStatsResponse{
		TotalLikes:          totals.TotalLikes,
		TotalShares:         totals.TotalShares,
		TotalViews:          totals.TotalViews,
		TotalComments:       totals.TotalComments,
		TotalEngagement:     engagement,
		TotalEngagementRate: EngagementRate(engagement, totals.TotalViews),
		TotalContents:       totals.TotalContents,
		TotalFollowers:      totals.TotalFollowers,
	}
}

func NewAuthorResponse(author models.Author) models.AuthorResponse {
	return models.AuthorResponse{
		ID:        author.ID,
		UniqueID:  author.UniqueID,
		Username:  author.Username,
		Name:      author.Name,
		URL:       author.URL,
		Title:     author.Title,
		Followers: author.FollowerCount,
	}
}

// NewContentResponse builds the published representation of a content row.
// content.Author must be loaded.
func NewContentResponse(content models.Content, tags []string) models.ContentResponse {
	if tags == nil {
		tags = []string{}
	}
	engagement := TotalEngagement(content.LikeCount, content.CommentCount, content.ShareCount)
	return models.ContentResponse{
		Content: models.ContentDetail{
			ID:              content.ID,
			UniqueID:        content.UniqueID,
			Author:          content.AuthorID,
			Title:           content.Title,
			ThumbnailURL:    content.ThumbnailURL,
			LikeCount:       content.LikeCount,
			CommentCount:    content.CommentCount,
			ShareCount:      content.ShareCount,
			ViewCount:       content.ViewCount,
			Timestamp:       content.CreatedAt,
			TotalEngagement: engagement,
			EngagementRate:  EngagementRate(engagement, content.ViewCount),
			Tags:            tags,
		},
		Author: NewAuthorResponse(content.Author),
	}
}

// NormalizeTagName trims a hashtag, drops leading '#' and lower-cases it.
func NormalizeTagName(name string) string {
	return strings.ToLower(strings.TrimLeft(strings.TrimSpace(name), "#"))
}

// NormalizeHashtags normalizes and de-duplicates, keeping first-seen order.
func NormalizeHashtags(hashtags []string) []string {
	seen := make(map[string]bool, len(hashtags))
	names := make([]string, 0, len(hashtags))
	for _, raw := range hashtags {
		name := NormalizeTagName(raw)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
