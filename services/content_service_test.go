package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"content-analytics-api/models"
	"content-analytics-api/repositories"
	"content-analytics-api/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

func submission(authorID, contentID string, likes, views int64, hashtags ...string) json.RawMessage {
	tags, _ := json.Marshal(hashtags)
	return json.RawMessage(fmt.Sprintf(`{
		"author": {"unique_external_id": %q, "unique_name": "user-%s", "full_name": "User %s", "followers": 100},
		"content": {"unq_external_id": %q, "title": "Title %s",
			"stats": {"likes": %d, "comments": 1, "shares": 1, "views": %d}},
		"hashtags": %s
	}`, authorID, authorID, authorID, contentID, contentID, likes, views, tags))
}

type ContentServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service ContentService
	now     time.Time
	ctx     context.Context
}

func (s *ContentServiceTestSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.now = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	s.service = NewContentService(repositories.NewStore(s.db), func() time.Time { return s.now })
	s.ctx = context.Background()
}

func (s *ContentServiceTestSuite) count(model interface{}) int64 {
	var n int64
	s.Require().NoError(s.db.Model(model).Count(&n).Error)
	return n
}

func (s *ContentServiceTestSuite) TestIngestCreatesAndReturnsItem() {
	resp := s.service.IngestContents(s.ctx, []json.RawMessage{
		submission("a1", "c1", 10, 100, "#Go", "go", "DB"),
	})

	s.Equal(models.IngestSummary{Created: 1}, resp.Summary)
	s.Require().Len(resp.Results, 1)
	result := resp.Results[0]
	s.Equal(models.IngestCreated, result.Status)
	s.Equal("c1", result.UniqueID)
	s.Require().NotNil(result.Item)
	s.Equal(int64(12), result.Item.Content.TotalEngagement)
	s.InDelta(0.12, result.Item.Content.EngagementRate, 1e-9)
	s.Equal([]string{"db", "go"}, result.Item.Content.Tags)
	s.Equal(s.now, result.Item.Content.Timestamp.UTC())
	s.Equal("user-a1", result.Item.Author.Username)
	s.Equal(int64(100), result.Item.Author.Followers)

	s.Equal(int64(1), s.count(&models.Author{}))
	s.Equal(int64(1), s.count(&models.Content{}))
	s.Equal(int64(2), s.count(&models.Tag{}))
	s.Equal(int64(2), s.count(&models.ContentTag{}))
}

func (s *ContentServiceTestSuite) TestReingestUpdatesCountsWithoutDuplicates() {
	first := s.service.IngestContents(s.ctx, []json.RawMessage{submission("a1", "c1", 10, 100, "go")})
	s.Require().Equal(1, first.Summary.Created)

	second := s.service.IngestContents(s.ctx, []json.RawMessage{submission("a1", "c1", 99, 1000, "go", "new")})
	s.Equal(models.IngestSummary{Updated: 1}, second.Summary)
	s.Require().NotNil(second.Results[0].Item)
	s.Equal(first.Results[0].Item.Content.ID, second.Results[0].Item.Content.ID)

	var content models.Content
	s.Require().NoError(s.db.Where("unique_id = ?", "c1").First(&content).Error)
	s.Equal(int64(99), content.LikeCount)
	s.Equal(int64(1000), content.ViewCount)

	s.Equal(int64(1), s.count(&models.Author{}))
	s.Equal(int64(1), s.count(&models.Content{}))
	s.Equal(int64(2), s.count(&models.Tag{}))
	s.Equal(int64(2), s.count(&models.ContentTag{}))
}

func (s *ContentServiceTestSuite) TestReingestKeepsOmittedOptionalFields() {
	s.service.IngestContents(s.ctx, []json.RawMessage{json.RawMessage(`{
		"author": {"unique_external_id": "a1", "unique_name": "alice", "followers": 70,
			"big_metadata": {"k": "v"}, "secret_value": "s3cret"},
		"content": {"unq_external_id": "c1", "timestamp": "2026-01-01T00:00:00Z",
			"stats": {"likes": 1, "comments": 0, "shares": 0, "views": 1}}
	}`)})
	resp := s.service.IngestContents(s.ctx, []json.RawMessage{json.RawMessage(`{
		"author": {"unique_external_id": "a1", "unique_name": "alice2"},
		"content": {"unq_external_id": "c1", "stats": {"likes": 2, "comments": 0, "shares": 0, "views": 1}}
	}`)})
	s.Require().Equal(1, resp.Summary.Updated)

	var author models.Author
	s.Require().NoError(s.db.Where("unique_id = ?", "a1").First(&author).Error)
	s.Equal("alice2", author.Username)
	s.Equal(int64(70), author.FollowerCount)
	s.Equal("s3cret", author.SecretValue)
	s.JSONEq(`{"k": "v"}`, string(author.BigMetadata))

	var content models.Content
	s.Require().NoError(s.db.Where("unique_id = ?", "c1").First(&content).Error)
	s.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), content.CreatedAt.UTC())
}

func (s *ContentServiceTestSuite) TestInvalidItemsDoNotAbortBatch() {
	resp := s.service.IngestContents(s.ctx, []json.RawMessage{
		submission("a1", "c1", 1, 1),
		json.RawMessage(`{"author": {"unique_name": "x"}, "content": {"unq_external_id": "bad"}}`),
		json.RawMessage(`42`),
		submission("a2", "c2", 1, 1),
	})

	s.Equal(models.IngestSummary{Created: 2, Failed: 2}, resp.Summary)
	s.Require().Len(resp.Results, 4)
	s.Equal(models.IngestError, resp.Results[1].Status)
	s.Equal("bad", resp.Results[1].UniqueID)
	s.NotEmpty(resp.Results[1].Errors)
	s.Nil(resp.Results[1].Item)
	s.Equal(models.IngestError, resp.Results[2].Status)
	s.Equal(2, resp.Results[2].Index)
	s.Equal(models.IngestCreated, resp.Results[3].Status)
	s.Equal(int64(2), s.count(&models.Content{}))
}

func (s *ContentServiceTestSuite) TestConcurrentIngestOfSameItem() {
	var wg sync.WaitGroup
	results := make([]models.IngestResponse, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.service.IngestContents(s.ctx, []json.RawMessage{submission("a1", "c1", int64(i), 10, "go")})
		}(i)
	}
	wg.Wait()

	created := 0
	for _, r := range results {
		s.Equal(0, r.Summary.Failed)
		created += r.Summary.Created
	}
	s.Equal(1, created)
	s.Equal(int64(1), s.count(&models.Author{}))
	s.Equal(int64(1), s.count(&models.Content{}))
	s.Equal(int64(1), s.count(&models.Tag{}))
	s.Equal(int64(1), s.count(&models.ContentTag{}))
}

func (s *ContentServiceTestSuite) TestListAndStats() {
	var batch []json.RawMessage
	for i := 1; i <= 5; i++ {
		batch = append(batch, submission("a1", fmt.Sprintf("c%d", i), 2, 10, "go"))
	}
	batch = append(batch, submission("a2", "other", 0, 0))
	s.Require().Equal(6, s.service.IngestContents(s.ctx, batch).Summary.Created)

	items, total, err := s.service.ListContents(s.ctx, models.ContentFilter{TagName: "go"}, models.PageRequest{Page: 1, ItemsPerPage: 2})
	s.Require().NoError(err)
	s.Equal(int64(5), total)
	s.Require().Len(items, 2)
	s.Equal("c5", items[0].Content.UniqueID)
	s.Equal([]string{"go"}, items[0].Content.Tags)
	s.Equal("user-a1", items[0].Author.Username)

	stats, err := s.service.GetStats(s.ctx, models.ContentFilter{AuthorUsername: "user-a1"})
	s.Require().NoError(err)
	s.Equal(int64(5), stats.TotalContents)
	s.Equal(int64(10), stats.TotalLikes)
	s.Equal(int64(20), stats.TotalEngagement)
	s.InDelta(0.4, stats.TotalEngagementRate, 1e-9)
	// Five contents by one author: followers counted once.
	s.Equal(int64(100), stats.TotalFollowers)

	stats, err = s.service.GetStats(s.ctx, models.ContentFilter{})
	s.Require().NoError(err)
	s.Equal(int64(200), stats.TotalFollowers)

	stats, err = s.service.GetStats(s.ctx, models.ContentFilter{AuthorUsername: "nobody"})
	s.Require().NoError(err)
	s.Equal(models.ContentStatsResponse{}, stats)
}

func TestContentServiceSuite(t *testing.T) {
	suite.Run(t, new(ContentServiceTestSuite))
}

func TestTagService(t *testing.T) {
	db := testutil.NewTestDB(t)
	author := testutil.SeedAuthor(t, db, "a1", "alice", 0)
	testutil.SeedContent(t, db, author, testutil.ContentFixture{UniqueID: "c1", Tags: []string{"go"}})
	svc := NewTagService(repositories.NewTagRepository(db))

	tags, err := svc.GetTags()
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, int64(1), tags[0].ContentCount)

	tag, err := svc.GetTag(tags[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "go", tag.Name)

	_, err = svc.GetTag(404)
	assert.ErrorAs(t, err, &models.ErrorNotFound{})
}

func TestTagServiceEmpty(t *testing.T) {
	svc := NewTagService(repositories.NewTagRepository(testutil.NewTestDB(t)))
	tags, err := svc.GetTags()
	require.NoError(t, err)
	assert.NotNil(t, tags)
	assert.Empty(t, tags)
}
