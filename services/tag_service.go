package services

import (
	"errors"

	"content-analytics-api/models"
	"content-analytics-api/repositories"

	"gorm.io/gorm"
)

type TagService interface {
	GetTags() ([]models.TagWithCount, error)
	GetTag(id uint) (*models.TagWithCount, error)
}

type tagService struct {
	tagRepo repositories.TagRepository
}

func NewTagService(tagRepo repositories.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

func (s *tagService) GetTags() ([]models.TagWithCount, error) {
	tags, err := s.tagRepo.GetAllWithCounts()
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []models.TagWithCount{}
	}
	return tags, nil
}

func (s *tagService) GetTag(id uint) (*models.TagWithCount, error) {
	tag, err := s.tagRepo.GetByIDWithCount(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrorNotFound{Message: "tag not found"}
	}
	return tag, err
}
