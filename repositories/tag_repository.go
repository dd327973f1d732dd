package repositories

import (
	"content-analytics-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagRepository interface {
	GetByNames(names []string) ([]models.Tag, error)
	GetOrCreateByNames(names []string) ([]models.Tag, error)
	LinkContent(contentID uint, tagIDs []uint) (int64, error)
	GetAllWithCounts() ([]models.TagWithCount, error)
	GetByIDWithCount(id uint) (*models.TagWithCount, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) GetByNames(names []string) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.Where("name IN ?", names).Order("name").Find(&tags).Error
	return tags, err
}

// GetOrCreateByNames returns one tag per name, inserting the missing ones in
// a single statement. Rows inserted concurrently by another transaction are
// skipped by the conflict clause and picked up by the final select.
func (r *tagRepository) GetOrCreateByNames(names []string) ([]models.Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}

	existing, err := r.GetByNames(names)
	if err != nil {
		return nil, err
	}
	if len(existing) == len(names) {
		return existing, nil
	}

	found := make(map[string]bool, len(existing))
	for _, tag := range existing {
		found[tag.Name] = true
	}
	var missing []models.Tag
	for _, name := range names {
		if !found[name] {
			missing = append(missing, models.Tag{Name: name})
		}
	}

	err = r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&missing).Error
	if err != nil {
		return nil, err
	}

	return r.GetByNames(names)
}

// LinkContent inserts the missing (content, tag) pairs and reports how many
// were new.
func (r *tagRepository) LinkContent(contentID uint, tagIDs []uint) (int64, error) {
	if len(tagIDs) == 0 {
		return 0, nil
	}

	links := make([]models.ContentTag, 0, len(tagIDs))
	for _, id := range tagIDs {
		links = append(links, models.ContentTag{ContentID: contentID, TagID: id})
	}

	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "content_id"}, {Name: "tag_id"}},
		DoNothing: true,
	}).Create(&links)
	return result.RowsAffected, result.Error
}

func (r *tagRepository) withCounts() *gorm.DB {
	return r.db.Model(&models.Tag{}).
		Select("tags.id, tags.name, COUNT(content_tags.id) AS content_count").
		Joins("LEFT JOIN content_tags ON content_tags.tag_id = tags.id").
		Group("tags.id, tags.name")
}

func (r *tagRepository) GetAllWithCounts() ([]models.TagWithCount, error) {
	var tags []models.TagWithCount
	err := r.withCounts().Order("content_count DESC, tags.name").Scan(&tags).Error
	return tags, err
}

func (r *tagRepository) GetByIDWithCount(id uint) (*models.TagWithCount, error) {
	var tags []models.TagWithCount
	if err := r.withCounts().Where("tags.id = ?", id).Scan(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &tags[0], nil
}
