package repositories

import (
	"fmt"
	"testing"
	"time"

	"content-analytics-api/models"
	"content-analytics-api/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type ContentRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	repo  ContentRepository
	now   time.Time
	alice models.Author
	bob   models.Author
}

func (s *ContentRepositoryTestSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = NewContentRepository(s.db)
	s.now = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	s.alice = testutil.SeedAuthor(s.T(), s.db, "ext-alice", "alice", 50)
	s.bob = testutil.SeedAuthor(s.T(), s.db, "ext-bob", "bob", 7)
}

func (s *ContentRepositoryTestSuite) seed(author models.Author, f testutil.ContentFixture) models.Content {
	return testutil.SeedContent(s.T(), s.db, author, f)
}

func (s *ContentRepositoryTestSuite) ids(contents []models.Content) []string {
	out := make([]string, 0, len(contents))
	for _, c := range contents {
		out = append(out, c.UniqueID)
	}
	return out
}

func (s *ContentRepositoryTestSuite) list(filter models.ContentFilter) []models.Content {
	contents, _, err := s.repo.List(filter, models.PageRequest{Page: 1, ItemsPerPage: 100}, s.now)
	s.Require().NoError(err)
	return contents
}

func (s *ContentRepositoryTestSuite) TestListEagerLoadsAuthor() {
	s.seed(s.alice, testutil.ContentFixture{UniqueID: "c1", Title: "first"})

	contents := s.list(models.ContentFilter{})
	s.Require().Len(contents, 1)
	s.Equal("alice", contents[0].Author.Username)
	s.Equal(int64(50), contents[0].Author.FollowerCount)
}

func (s *ContentRepositoryTestSuite) TestFilterByAuthor() {
	s.seed(s.alice, testutil.ContentFixture{UniqueID: "a1"})
	s.seed(s.bob, testutil.ContentFixture{UniqueID: "b1"})
	s.seed(s.alice, testutil.ContentFixture{UniqueID: "a2"})

	s.Equal([]string{"a2", "a1"}, s.ids(s.list(models.ContentFilter{AuthorID: s.alice.ID})))
	s.Equal([]string{"b1"}, s.ids(s.list(models.ContentFilter{AuthorUsername: "bob"})))
	s.Empty(s.list(models.ContentFilter{AuthorID: 9999}))
	s.Empty(s.list(models.ContentFilter{AuthorUsername: "nobody"}))
}

func (s *ContentRepositoryTestSuite) TestFilterByTag() {
	tagged := s.seed(s.alice, testutil.ContentFixture{UniqueID: "t1", Tags: []string{"go", "db"}})
	s.seed(s.bob, testutil.ContentFixture{UniqueID: "t2", Tags: []string{"db"}})
	s.seed(s.bob, testutil.ContentFixture{UniqueID: "t3"})

	var goTag models.Tag
	s.Require().NoError(s.db.Where("name = ?", "go").First(&goTag).Error)

	s.Equal([]string{"t1"}, s.ids(s.list(models.ContentFilter{TagID: goTag.ID})))
	s.Equal([]string{"t2", "t1"}, s.ids(s.list(models.ContentFilter{TagName: "db"})))

	names, err := s.repo.TagNamesByContentIDs([]uint{tagged.ID})
	s.Require().NoError(err)
	s.Equal([]string{"db", "go"}, names[tagged.ID])
}

func (s *ContentRepositoryTestSuite) TestFilterByTimeframe() {
	s.seed(s.alice, testutil.ContentFixture{UniqueID: "recent", Created: s.now.Add(-2 * 24 * time.Hour)})
	s.seed(s.alice, testutil.ContentFixture{UniqueID: "edge", Created: s.now.Add(-7*24*time.Hour + time.Minute)})
	s.seed(s.alice, testutil.ContentFixture{UniqueID: "old", Created: s.now.Add(-8 * 24 * time.Hour)})

	seven := 7
	s.ElementsMatch([]string{"recent", "edge"}, s.ids(s.list(models.ContentFilter{TimeframeDays: &seven})))

	one := 1
	s.Empty(s.list(models.ContentFilter{TimeframeDays: &one}))
}

func (s *ContentRepositoryTestSuite) TestFilterByTitleIsCaseInsensitiveSubstring() {
	s.seed(s.alice, testutil.ContentFixture{UniqueID: "foo-bar", Title: "Foo Bar"})
	s.seed(s.alice, testutil.ContentFixture{UniqueID: "xfooy", Title: "xfooy"})
	s.seed(s.alice, testutil.ContentFixture{UniqueID: "other", Title: "unrelated"})
	s.seed(s.alice, testutil.ContentFixture{UniqueID: "percent", Title: "100% real"})

	s.ElementsMatch([]string{"foo-bar", "xfooy"}, s.ids(s.list(models.ContentFilter{Title: "foo"})))
	s.ElementsMatch([]string{"foo-bar", "xfooy"}, s.ids(s.list(models.ContentFilter{Title: "FOO"})))
	// Wildcards in user input match literally.
	s.Equal([]string{"percent"}, s.ids(s.list(models.ContentFilter{Title: "0%"})))
	s.Empty(s.list(models.ContentFilter{Title: "_oo"}))
}

func (s *ContentRepositoryTestSuite) TestFilterByTitleFoldsNonASCII() {
	s.seed(s.alice, testutil.ContentFixture{UniqueID: "elan", Title: "Élan Vital"})
	s.seed(s.alice, testutil.ContentFixture{UniqueID: "strasse", Title: "ÜBER die Straße"})
	s.seed(s.alice, testutil.ContentFixture{UniqueID: "plain", Title: "elan"})

	s.Equal([]string{"elan"}, s.ids(s.list(models.ContentFilter{Title: "él"})))
	s.Equal([]string{"elan"}, s.ids(s.list(models.ContentFilter{Title: "ÉLAN"})))
	s.Equal([]string{"strasse"}, s.ids(s.list(models.ContentFilter{Title: "über"})))
}

func (s *ContentRepositoryTestSuite) TestTitleSearchFollowsUpdates() {
	content := s.seed(s.alice, testutil.ContentFixture{UniqueID: "c1", Title: "Old Name"})
	content.Title = "Ñandú Sighting"
	s.Require().NoError(s.repo.Update(&content))

	s.Equal([]string{"c1"}, s.ids(s.list(models.ContentFilter{Title: "ñandú"})))
	s.Empty(s.list(models.ContentFilter{Title: "old"}))
}

func (s *ContentRepositoryTestSuite) TestFiltersCombineWithAnd() {
	s.seed(s.alice, testutil.ContentFixture{UniqueID: "match", Title: "Go tips", Tags: []string{"go"}})
	s.seed(s.alice, testutil.ContentFixture{UniqueID: "wrong-title", Title: "Rust tips", Tags: []string{"go"}})
	s.seed(s.bob, testutil.ContentFixture{UniqueID: "wrong-author", Title: "Go tricks", Tags: []string{"go"}})

	filter := models.ContentFilter{AuthorUsername: "alice", TagName: "go", Title: "go"}
	s.Equal([]string{"match"}, s.ids(s.list(filter)))
}

func (s *ContentRepositoryTestSuite) TestPagination() {
	for i := 1; i <= 25; i++ {
		s.seed(s.alice, testutil.ContentFixture{UniqueID: fmt.Sprintf("c%02d", i)})
	}

	contents, total, err := s.repo.List(models.ContentFilter{}, models.PageRequest{Page: 2, ItemsPerPage: 10}, s.now)
	s.Require().NoError(err)
	s.Equal(int64(25), total)
	s.Require().Len(contents, 10)
	// Newest first: page 2 holds the 11th to 20th newest rows.
	s.Equal("c15", contents[0].UniqueID)
	s.Equal("c06", contents[9].UniqueID)

	contents, total, err = s.repo.List(models.ContentFilter{}, models.PageRequest{Page: 3, ItemsPerPage: 10}, s.now)
	s.Require().NoError(err)
	s.Equal(int64(25), total)
	s.Len(contents, 5)

	contents, _, err = s.repo.List(models.ContentFilter{}, models.PageRequest{Page: 4, ItemsPerPage: 10}, s.now)
	s.Require().NoError(err)
	s.Empty(contents)
}

func (s *ContentRepositoryTestSuite) TestStatsCountsEachAuthorOnce() {
	for i := 0; i < 5; i++ {
		s.seed(s.alice, testutil.ContentFixture{UniqueID: fmt.Sprintf("a%d", i), Likes: 1, Comments: 2, Shares: 3, Views: 10})
	}
	s.seed(s.bob, testutil.ContentFixture{UniqueID: "b1", Likes: 10, Views: 0})

	totals, err := s.repo.Stats(models.ContentFilter{}, s.now)
	s.Require().NoError(err)
	s.Equal(models.StatsTotals{
		TotalContents:  6,
		TotalLikes:     15,
		TotalComments:  10,
		TotalShares:    15,
		TotalViews:     50,
		TotalFollowers: 57,
	}, totals)

	totals, err = s.repo.Stats(models.ContentFilter{AuthorID: s.alice.ID}, s.now)
	s.Require().NoError(err)
	s.Equal(int64(5), totals.TotalContents)
	s.Equal(int64(50), totals.TotalFollowers)
}

func (s *ContentRepositoryTestSuite) TestStatsOnEmptySelection() {
	totals, err := s.repo.Stats(models.ContentFilter{AuthorUsername: "nobody"}, s.now)
	s.Require().NoError(err)
	s.Equal(models.StatsTotals{}, totals)
}

func TestContentRepositorySuite(t *testing.T) {
	suite.Run(t, new(ContentRepositoryTestSuite))
}

func TestGetByUniqueIDNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	_, err := NewContentRepository(db).GetByUniqueID("missing")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestApplyContentFiltersBuildsSingleStatement(t *testing.T) {
	db := testutil.NewTestDB(t)
	days := 3
	filter := models.ContentFilter{AuthorID: 1, AuthorUsername: "alice", TagID: 2, TagName: "go", TimeframeDays: &days, Title: "x"}

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var contents []models.Content
		return ApplyContentFilters(tx.Model(&models.Content{}), filter, time.Now()).Find(&contents)
	})

	assert.Contains(t, sql, "contents.author_id = 1")
	assert.Contains(t, sql, "authors.username = \"alice\"")
	assert.Contains(t, sql, "content_tags.tag_id = 2")
	assert.Contains(t, sql, "tags.name = \"go\"")
	assert.Contains(t, sql, "contents.created_at >=")
	assert.Contains(t, sql, "contents.title_search LIKE \"%x%\"")
}
