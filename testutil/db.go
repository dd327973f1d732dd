// Package testutil opens throwaway in-memory databases with the production
// gorm configuration and seeds fixtures for tests.
package testutil

import (
	"testing"
	"time"

	"content-analytics-api/config"
	"content-analytics-api/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), config.GormConfig("warn"))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps the in-memory database alive and serializes writers.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	return db
}

func SeedAuthor(t testing.TB, db *gorm.DB, uniqueID, username string, followers int64) models.Author {
	t.Helper()
	author := models.Author{
		UniqueID:      uniqueID,
		Username:      username,
		Name:          username,
		FollowerCount: followers,
		BigMetadata:   []byte(`{"internal":true}`),
		SecretValue:   "secret-" + uniqueID,
	}
	require.NoError(t, db.Create(&author).Error)
	return author
}

type ContentFixture struct {
	UniqueID string
	Title    string
	Likes    int64
	Comments int64
	Shares   int64
	Views    int64
	Created  time.Time
	Tags     []string
}

func SeedContent(t testing.TB, db *gorm.DB, author models.Author, f ContentFixture) models.Content {
	t.Helper()
	if f.Created.IsZero() {
		f.Created = time.Now().UTC()
	}
	content := models.Content{
		UniqueID:     f.UniqueID,
		AuthorID:     author.ID,
		Title:        f.Title,
		LikeCount:    f.Likes,
		CommentCount: f.Comments,
		ShareCount:   f.Shares,
		ViewCount:    f.Views,
		BigMetadata:  []byte(`{"internal":true}`),
		SecretValue:  "secret-" + f.UniqueID,
		CreatedAt:    f.Created.UTC(),
	}
	require.NoError(t, db.Omit("Author").Create(&content).Error)

	for _, name := range f.Tags {
		tag := models.Tag{Name: name}
		require.NoError(t, db.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error)
		require.NoError(t, db.Create(&models.ContentTag{ContentID: content.ID, TagID: tag.ID}).Error)
	}
	return content
}
