package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"content-analytics-api/helper"
	"content-analytics-api/middleware"
	"content-analytics-api/models"
	"content-analytics-api/services"

	"github.com/gin-gonic/gin"
)

// IngestLimits bound one ingest request.
type IngestLimits struct {
	MaxBatch     int
	MaxBodyBytes int64
}

type ContentHandler struct {
	contentService services.ContentService
	limits         PageLimits
	ingest         IngestLimits
	Helper         *helper.HTTPHelper
}

func NewContentHandler(contentService services.ContentService, limits PageLimits, ingest IngestLimits) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		limits:         limits,
		ingest:         ingest,
		Helper:         &helper.HTTPHelper{},
	}
}

func (h *ContentHandler) bindFilter(c *gin.Context) (models.ContentListQuery, models.ContentFilter, bool) {
	var q models.ContentListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.Helper.SendBadRequest(c, "Invalid query parameters", h.Helper.EmptyJsonMap())
		return q, models.ContentFilter{}, false
	}

	filter, err := ParseContentFilter(q)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return q, filter, false
	}
	return q, filter, true
}

func (h *ContentHandler) GetContents(c *gin.Context) {
	q, filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	page, err := ParsePageRequest(q, h.limits)
	if err != nil {
		h.Helper.SendErrorFrom(c, err)
		return
	}

	items, total, err := h.contentService.ListContents(c.Request.Context(), filter, page)
	if err != nil {
		slog.Error("[ContentHandler] List contents failed",
			slog.String("request_id", middleware.GetRequestID(c)),
			slog.Any("error", err))
		h.Helper.SendInternalError(c)
		return
	}

	h.Helper.SendSuccess(c, "Success", models.ContentListResponse{
		Results:    items,
		Pagination: h.Helper.GeneratePaging(c, page.Page, page.ItemsPerPage, total),
	})
}

func (h *ContentHandler) GetStats(c *gin.Context) {
	_, filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	stats, err := h.contentService.GetStats(c.Request.Context(), filter)
	if err != nil {
		slog.Error("[ContentHandler] Content stats failed",
			slog.String("request_id", middleware.GetRequestID(c)),
			slog.Any("error", err))
		h.Helper.SendInternalError(c)
		return
	}

	h.Helper.SendSuccess(c, "Success", stats)
}

// IngestContents accepts a JSON array of submissions. Items are decoded one
// by one so a malformed item fails alone.
func (h *ContentHandler) IngestContents(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.ingest.MaxBodyBytes)
	body, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.Helper.SendEntityTooLarge(c, fmt.Sprintf("Request body exceeds %d bytes", h.ingest.MaxBodyBytes))
			return
		}
		h.Helper.SendBadRequest(c, "Unable to read request body", h.Helper.EmptyJsonMap())
		return
	}

	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		h.Helper.SendBadRequest(c, "Request body must be a JSON array of submissions", h.Helper.EmptyJsonMap())
		return
	}
	if len(items) == 0 {
		h.Helper.SendBadRequest(c, "At least one submission is required", h.Helper.EmptyJsonMap())
		return
	}
	if len(items) > h.ingest.MaxBatch {
		h.Helper.SendBadRequest(c, fmt.Sprintf("At most %d submissions per request", h.ingest.MaxBatch), h.Helper.EmptyJsonMap())
		return
	}

	resp := h.contentService.IngestContents(c.Request.Context(), items)
	h.Helper.SendSuccess(c, "Ingest processed", resp)
}
