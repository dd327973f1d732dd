package repositories

import (
	"content-analytics-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AuthorRepository interface {
	Create(author *models.Author) error
	GetByUniqueID(uniqueID string) (*models.Author, error)
	Update(author *models.Author) error
}

type authorRepository struct {
	db *gorm.DB
}

func NewAuthorRepository(db *gorm.DB) AuthorRepository {
	return &authorRepository{db: db}
}

func (r *authorRepository) Create(author *models.Author) error {
	return r.db.Create(author).Error
}

func (r *authorRepository) GetByUniqueID(uniqueID string) (*models.Author, error) {
	var author models.Author
	err := r.db.Where("unique_id = ?", uniqueID).First(&author).Error
	return &author, err
}

func (r *authorRepository) Update(author *models.Author) error {
	return r.db.Omit(clause.Associations).Save(author).Error
}
