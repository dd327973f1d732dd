package handlers

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"content-analytics-api/models"
	"content-analytics-api/services"
)

type PageLimits struct {
	Default int
	Max     int
}

// ParseContentFilter converts the raw filter parameters. Malformed numbers
// are reported by parameter name rather than silently ignored.
func ParseContentFilter(q models.ContentListQuery) (models.ContentFilter, error) {
	var filter models.ContentFilter

	authorID, err := parsePositiveID("author_id", q.AuthorID)
	if err != nil {
		return filter, err
	}
	filter.AuthorID = authorID

	tagID, err := parsePositiveID("tag_id", q.TagID)
	if err != nil {
		return filter, err
	}
	filter.TagID = tagID

	if v := strings.TrimSpace(q.Timeframe); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days < 0 {
			return filter, models.ErrorValidation{Message: "timeframe must be a non-negative integer number of days"}
		}
		filter.TimeframeDays = &days
	}

	filter.AuthorUsername = strings.TrimSpace(q.AuthorUsername)
	filter.Title = strings.TrimSpace(q.Title)
	if q.Tag != "" {
		filter.TagName = services.NormalizeTagName(q.Tag)
		if filter.TagName == "" {
			return filter, models.ErrorValidation{Message: "tag must not be empty"}
		}
	}

	return filter, nil
}

// ParsePageRequest reads page and items_per_page (limit is accepted as an
// alias) and bounds the page size.
func ParsePageRequest(q models.ContentListQuery, limits PageLimits) (models.PageRequest, error) {
	page := models.PageRequest{Page: 1, ItemsPerPage: limits.Default}

	if v := strings.TrimSpace(q.Page); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return page, models.ErrorValidation{Message: "page must be a positive integer"}
		}
		page.Page = n
	}

	perPage := strings.TrimSpace(q.ItemsPerPage)
	if perPage == "" {
		perPage = strings.TrimSpace(q.Limit)
	}
	if perPage != "" {
		n, err := strconv.Atoi(perPage)
		if err != nil || n < 1 || n > limits.Max {
			return page, models.ErrorValidation{Message: fmt.Sprintf("items_per_page must be an integer between 1 and %d", limits.Max)}
		}
		page.ItemsPerPage = n
	}

	// Offsets past what the store can address are rejected before they overflow.
	if int64(page.Page-1) > math.MaxInt32/int64(page.ItemsPerPage) {
		return page, models.ErrorValidation{Message: "page must be a positive integer"}
	}

	return page, nil
}

func parsePositiveID(name, value string) (uint, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil || id == 0 {
		return 0, models.ErrorValidation{Message: name + " must be a positive integer"}
	}
	return uint(id), nil
}
