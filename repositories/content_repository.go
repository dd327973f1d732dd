package repositories

import (
	"strings"
	"time"

	"content-analytics-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContentRepository interface {
	Create(content *models.Content) error
	GetByUniqueID(uniqueID string) (*models.Content, error)
	Update(content *models.Content) error
	List(filter models.ContentFilter, page models.PageRequest, now time.Time) ([]models.Content, int64, error)
	Stats(filter models.ContentFilter, now time.Time) (models.StatsTotals, error)
	TagNamesByContentIDs(ids []uint) (map[uint][]string, error)
}

type contentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ApplyContentFilters narrows a query over the contents table. Every filter
// references contents columns or an uncorrelated subquery, so the result has
// one row per content and can be counted, paged or aggregated as is.
func ApplyContentFilters(query *gorm.DB, filter models.ContentFilter, now time.Time) *gorm.DB {
	if filter.AuthorID > 0 {
		query = query.Where("contents.author_id = ?", filter.AuthorID)
	}
	if filter.AuthorUsername != "" {
		query = query.Where("contents.author_id IN (SELECT authors.id FROM authors WHERE authors.username = ?)", filter.AuthorUsername)
	}
	if filter.TagID > 0 {
		query = query.Where("contents.id IN (SELECT content_tags.content_id FROM content_tags WHERE content_tags.tag_id = ?)", filter.TagID)
	}
	if filter.TagName != "" {
		query = query.Where(`contents.id IN (SELECT content_tags.content_id FROM content_tags
			JOIN tags ON tags.id = content_tags.tag_id WHERE tags.name = ?)`, filter.TagName)
	}
	if filter.TimeframeDays != nil {
		since := now.UTC().Add(-time.Duration(*filter.TimeframeDays) * 24 * time.Hour)
		query = query.Where("contents.created_at >= ?", since)
	}
	if filter.Title != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(filter.Title)) + "%"
		query = query.Where(`contents.title_search LIKE ? ESCAPE '\'`, pattern)
	}
	return query
}

func (r *contentRepository) filtered(filter models.ContentFilter, now time.Time) *gorm.DB {
	return ApplyContentFilters(r.db.Model(&models.Content{}), filter, now)
}

func (r *contentRepository) Create(content *models.Content) error {
	return r.db.Omit(clause.Associations).Create(content).Error
}

func (r *contentRepository) GetByUniqueID(uniqueID string) (*models.Content, error) {
	var content models.Content
	err := r.db.Where("unique_id = ?", uniqueID).First(&content).Error
	return &content, err
}

func (r *contentRepository) Update(content *models.Content) error {
	return r.db.Omit(clause.Associations).Save(content).Error
}

func (r *contentRepository) List(filter models.ContentFilter, page models.PageRequest, now time.Time) ([]models.Content, int64, error) {
	var contents []models.Content
	var total int64

	if err := r.filtered(filter, now).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 || int64(page.Offset()) >= total {
		return contents, total, nil
	}

	err := r.filtered(filter, now).
		Joins("Author").
		Order("contents.id DESC").
		Offset(page.Offset()).
		Limit(page.ItemsPerPage).
		Find(&contents).Error

	return contents, total, err
}

func (r *contentRepository) Stats(filter models.ContentFilter, now time.Time) (models.StatsTotals, error) {
	var totals models.StatsTotals

	err := r.filtered(filter, now).Select(`
		COUNT(*) AS total_contents,
		CAST(COALESCE(SUM(contents.like_count), 0) AS BIGINT) AS total_likes,
		CAST(COALESCE(SUM(contents.comment_count), 0) AS BIGINT) AS total_comments,
		CAST(COALESCE(SUM(contents.share_count), 0) AS BIGINT) AS total_shares,
		CAST(COALESCE(SUM(contents.view_count), 0) AS BIGINT) AS total_views`).
		Scan(&totals).Error
	if err != nil {
		return totals, err
	}
	if totals.TotalContents == 0 {
		return totals, nil
	}

	// Each author counts once however many of their contents matched.
	var followers struct {
		TotalFollowers int64
	}
	authorIDs := r.filtered(filter, now).Select("contents.author_id")
	err = r.db.Model(&models.Author{}).
		Select("CAST(COALESCE(SUM(authors.follower_count), 0) AS BIGINT) AS total_followers").
		Where("authors.id IN (?)", authorIDs).
		Scan(&followers).Error
	totals.TotalFollowers = followers.TotalFollowers

	return totals, err
}

func (r *contentRepository) TagNamesByContentIDs(ids []uint) (map[uint][]string, error) {
	names := make(map[uint][]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var rows []struct {
		ContentID uint
		Name      string
	}
	err := r.db.Table("content_tags").
		Select("content_tags.content_id, tags.name").
		Joins("JOIN tags ON tags.id = content_tags.tag_id").
		Where("content_tags.content_id IN ?", ids).
		Order("tags.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		names[row.ContentID] = append(names[row.ContentID], row.Name)
	}
	return names, nil
}
