package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"content-analytics-api/metrics"
	"content-analytics-api/models"
	"content-analytics-api/repositories"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const internalErrorMessage = "internal error"

type ContentService interface {
	ListContents(ctx context.Context, filter models.ContentFilter, page models.PageRequest) ([]models.ContentResponse, int64, error)
	GetStats(ctx context.Context, filter models.ContentFilter) (models.ContentStatsResponse, error)
	IngestContents(ctx context.Context, items []json.RawMessage) models.IngestResponse
}

type contentService struct {
	store     repositories.Store
	validator *SubmissionValidator
	now       func() time.Time
}

func NewContentService(store repositories.Store, now func() time.Time) ContentService {
	if now == nil {
		now = time.Now
	}
	return &contentService{
		store:     store,
		validator: NewSubmissionValidator(),
		now:       now,
	}
}

func (s *contentService) ListContents(ctx context.Context, filter models.ContentFilter, page models.PageRequest) ([]models.ContentResponse, int64, error) {
	contents := s.store.WithContext(ctx).Contents()

	rows, total, err := contents.List(filter, page, s.now())
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	tags, err := contents.TagNamesByContentIDs(ids)
	if err != nil {
		return nil, 0, err
	}

	items := make([]models.ContentResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, NewContentResponse(row, tags[row.ID]))
	}
	return items, total, nil
}

func (s *contentService) GetStats(ctx context.Context, filter models.ContentFilter) (models.ContentStatsResponse, error) {
	totals, err := s.store.WithContext(ctx).Contents().Stats(filter, s.now())
	if err != nil {
		return models.ContentStatsResponse{}, err
	}
	return BuildStats(totals), nil
}

// IngestContents processes every item independently; a failing item never
// stops the rest of the batch.
func (s *contentService) IngestContents(ctx context.Context, items []json.RawMessage) models.IngestResponse {
	resp := models.IngestResponse{Results: make([]models.IngestItemResult, 0, len(items))}

	for i, raw := range items {
		result := s.ingestOne(ctx, i, raw)
		switch result.Status {
		case models.IngestCreated:
			resp.Summary.Created++
		case models.IngestUpdated:
			resp.Summary.Updated++
		default:
			resp.Summary.Failed++
		}
		metrics.RecordIngestItem(string(result.Status))
		resp.Results = append(resp.Results, result)
	}

	slog.Info("[ContentService] Ingest batch processed",
		slog.Int("items", len(items)),
		slog.Int("created", resp.Summary.Created),
		slog.Int("updated", resp.Summary.Updated),
		slog.Int("failed", resp.Summary.Failed))

	return resp
}

func (s *contentService) ingestOne(ctx context.Context, index int, raw json.RawMessage) models.IngestItemResult {
	result := models.IngestItemResult{Index: index, Status: models.IngestError}

	sub, errs := s.validator.Decode(raw)
	if sub.Content != nil {
		result.UniqueID = sub.Content.UnqExternalID
	}
	if len(errs) == 0 {
		errs = s.validator.Validate(sub)
	}
	if len(errs) > 0 {
		result.Errors = errs
		return result
	}

	var (
		item    models.ContentResponse
		created bool
		err     error
	)
	// A unique violation means another request inserted the same author,
	// content or tag first; the second attempt finds those rows and updates.
	for attempt := 1; attempt <= 2; attempt++ {
		item, created, err = s.saveSubmission(ctx, sub)
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
		slog.Warn("[ContentService] Unique conflict while ingesting",
			slog.String("unique_id", result.UniqueID),
			slog.Int("attempt", attempt))
	}
	if err != nil {
		slog.Error("[ContentService] Failed to ingest item",
			slog.Int("index", index),
			slog.String("unique_id", result.UniqueID),
			slog.Any("error", err))
		result.Errors = []string{internalErrorMessage}
		return result
	}

	result.Status = models.IngestUpdated
	if created {
		result.Status = models.IngestCreated
	}
	result.Item = &item
	return result
}

// saveSubmission writes author, content and tag links of one item in a single
// transaction.
func (s *contentService) saveSubmission(ctx context.Context, sub models.ContentSubmission) (models.ContentResponse, bool, error) {
	var (
		item    models.ContentResponse
		created bool
	)
	tagNames := NormalizeHashtags(sub.Hashtags)

	err := s.store.WithContext(ctx).Transaction(func(tx repositories.Store) error {
		author, err := s.upsertAuthor(tx.Authors(), sub.Author)
		if err != nil {
			return err
		}

		content, isNew, err := s.upsertContent(tx.Contents(), author.ID, sub.Content)
		if err != nil {
			return err
		}

		tags, err := tx.Tags().GetOrCreateByNames(tagNames)
		if err != nil {
			return err
		}
		tagIDs := make([]uint, 0, len(tags))
		for _, tag := range tags {
			tagIDs = append(tagIDs, tag.ID)
		}
		if _, err := tx.Tags().LinkContent(content.ID, tagIDs); err != nil {
			return err
		}

		names, err := tx.Contents().TagNamesByContentIDs([]uint{content.ID})
		if err != nil {
			return err
		}

		content.Author = *author
		item = NewContentResponse(*content, names[content.ID])
		created = isNew
		return nil
	})

	return item, created, err
}

func (s *contentService) upsertAuthor(repo repositories.AuthorRepository, in *models.AuthorSubmission) (*models.Author, error) {
	author, err := repo.GetByUniqueID(in.UniqueExternalID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		author = &models.Author{UniqueID: in.UniqueExternalID}
		applyAuthorSubmission(author, in)
		if err := repo.Create(author); err != nil {
			return nil, err
		}
		return author, nil
	}

	applyAuthorSubmission(author, in)
	if err := repo.Update(author); err != nil {
		return nil, err
	}
	return author, nil
}

func (s *contentService) upsertContent(repo repositories.ContentRepository, authorID uint, in *models.ContentBody) (*models.Content, bool, error) {
	content, err := repo.GetByUniqueID(in.UnqExternalID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		content = &models.Content{UniqueID: in.UnqExternalID, CreatedAt: s.now().UTC()}
		applyContentSubmission(content, authorID, in)
		if err := repo.Create(content); err != nil {
			return nil, false, err
		}
		return content, true, nil
	}

	applyContentSubmission(content, authorID, in)
	if err := repo.Update(content); err != nil {
		return nil, false, err
	}
	return content, false, nil
}

// applyAuthorSubmission copies the mutable fields. Optional fields left out of
// the payload keep their stored value.
func applyAuthorSubmission(author *models.Author, in *models.AuthorSubmission) {
	author.Username = in.UniqueName
	author.Name = in.FullName
	author.URL = in.URL
	author.Title = in.Title
	if in.Followers != nil {
		author.FollowerCount = *in.Followers
	}
	if len(in.BigMetadata) > 0 {
		author.BigMetadata = datatypes.JSON(in.BigMetadata)
	}
	if in.SecretValue != "" {
		author.SecretValue = in.SecretValue
	}
}

func applyContentSubmission(content *models.Content, authorID uint, in *models.ContentBody) {
	content.AuthorID = authorID
	content.Title = in.Title
	content.ThumbnailURL = in.ThumbnailViewURL
	content.LikeCount = in.Stats.Likes
	content.CommentCount = in.Stats.Comments
	content.ShareCount = in.Stats.Shares
	content.ViewCount = in.Stats.Views
	if in.Timestamp != nil {
		content.CreatedAt = in.Timestamp.UTC()
	}
	if len(in.BigMetadata) > 0 {
		content.BigMetadata = datatypes.JSON(in.BigMetadata)
	}
	if in.SecretValue != "" {
		content.SecretValue = in.SecretValue
	}
}
