package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories that share one connection or transaction.
type Store interface {
	Authors() AuthorRepository
	Contents() ContentRepository
	Tags() TagRepository
	WithContext(ctx context.Context) Store
	Transaction(fn func(tx Store) error) error
	Ping(ctx context.Context) error
}

type store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &store{db: db}
}

func (s *store) Authors() AuthorRepository {
	return NewAuthorRepository(s.db)
}

func (s *store) Contents() ContentRepository {
	return NewContentRepository(s.db)
}

func (s *store) Tags() TagRepository {
	return NewTagRepository(s.db)
}

func (s *store) WithContext(ctx context.Context) Store {
	return &store{db: s.db.WithContext(ctx)}
}

func (s *store) Transaction(fn func(tx Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&store{db: tx})
	})
}

func (s *store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
