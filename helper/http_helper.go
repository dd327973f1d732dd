package helper

import (
	"errors"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"content-analytics-api/models"

	"github.com/gin-gonic/gin"
)

const (
	textError              = `error`
	textOk                 = `ok`
	codeSuccess            = http.StatusOK
	codeBadRequestError    = http.StatusBadRequest
	codeUnauthorizedError  = http.StatusUnauthorized
	codeForbiddenError     = http.StatusForbidden
	codeNotFound           = http.StatusNotFound
	codeConflictError      = http.StatusConflict
	codeTooManyRequests    = http.StatusTooManyRequests
	codeEntityTooLarge     = http.StatusRequestEntityTooLarge
	codeInternalError      = http.StatusInternalServerError
	codeServiceUnavailable = http.StatusServiceUnavailable
)

// ResponseHelper ...
type ResponseHelper struct {
	C        *gin.Context
	Status   string
	Message  string
	Data     interface{}
	Code     int
	CodeType string
}

// HTTPHelper writes the {code, code_type, code_message, data} envelope used
// by every endpoint.
type HTTPHelper struct{}

// GetStatusCode ...
func (u *HTTPHelper) GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var (
		validation   models.ErrorValidation
		notFound     models.ErrorNotFound
		conflict     models.ErrorConflict
		unauthorized models.ErrorUnauthorized
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &unauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// SendErrorFrom picks the response for a service error. Only the typed
// client errors carry their message through; anything else is reported as
// a generic internal error.
func (u *HTTPHelper) SendErrorFrom(c *gin.Context, err error) {
	switch status := u.GetStatusCode(err); status {
	case http.StatusBadRequest:
		u.SendBadRequest(c, err.Error(), u.EmptyJsonMap())
	case http.StatusUnauthorized:
		u.SendUnauthorizedError(c, err.Error(), u.EmptyJsonMap())
	case http.StatusNotFound:
		u.SendNotFoundError(c, err.Error(), u.EmptyJsonMap())
	case http.StatusConflict:
		u.SendError(c, err.Error(), u.EmptyJsonMap(), codeConflictError, `conflict`)
	default:
		u.SendInternalError(c)
	}
}

// SetResponse ...
// Set response data.
func (u *HTTPHelper) SetResponse(c *gin.Context, status string, message string, data interface{}, code int, codeType string) ResponseHelper {
	return ResponseHelper{c, status, message, data, code, codeType}
}

// SendError ...
// Send error response to consumers.
func (u *HTTPHelper) SendError(c *gin.Context, message string, data interface{}, code int, codeType string) {
	res := u.SetResponse(c, textError, message, data, code, codeType)
	u.SendResponse(res)
}

// SendBadRequest ...
// Send bad request response to consumers.
func (u *HTTPHelper) SendBadRequest(c *gin.Context, message string, data interface{}) {
	u.SendError(c, message, data, codeBadRequestError, `badRequest`)
}

// SendUnauthorizedError ...
// Send unauthorized response to consumers.
func (u *HTTPHelper) SendUnauthorizedError(c *gin.Context, message string, data interface{}) {
	u.SendError(c, message, data, codeUnauthorizedError, `unAuthorized`)
}

func (u *HTTPHelper) SendForbiddenError(c *gin.Context, message string, data interface{}) {
	u.SendError(c, message, data, codeForbiddenError, `forbidden`)
}

// SendNotFoundError ...
// Send not found response to consumers.
func (u *HTTPHelper) SendNotFoundError(c *gin.Context, message string, data interface{}) {
	u.SendError(c, message, data, codeNotFound, `notFound`)
}

func (u *HTTPHelper) SendTooManyRequests(c *gin.Context, message string) {
	u.SendError(c, message, u.EmptyJsonMap(), codeTooManyRequests, `tooManyRequests`)
}

func (u *HTTPHelper) SendEntityTooLarge(c *gin.Context, message string) {
	u.SendError(c, message, u.EmptyJsonMap(), codeEntityTooLarge, `entityTooLarge`)
}

func (u *HTTPHelper) SendServiceUnavailable(c *gin.Context, message string) {
	u.SendError(c, message, u.EmptyJsonMap(), codeServiceUnavailable, `serviceUnavailable`)
}

// SendInternalError never includes error details; those go to the log.
func (u *HTTPHelper) SendInternalError(c *gin.Context) {
	u.SendError(c, "internal error", u.EmptyJsonMap(), codeInternalError, `internalError`)
}

// SendSuccess ...
// Send success response to consumers.
func (u *HTTPHelper) SendSuccess(c *gin.Context, message string, data interface{}) {
	res := u.SetResponse(c, textOk, message, data, codeSuccess, `success`)
	u.SendResponse(res)
}

// SendResponse ...
// Send response
func (u *HTTPHelper) SendResponse(res ResponseHelper) {
	if len(res.Message) == 0 {
		res.Message = `success`
	}

	res.C.JSON(res.Code, map[string]interface{}{
		"code":         res.Code,
		"code_type":    res.CodeType,
		"code_message": res.Message,
		"data":         res.Data,
	})
}

func (u *HTTPHelper) EmptyJsonMap() map[string]interface{} {
	return make(map[string]interface{})
}

// GetPagingUrl rebuilds the current request URL for another page, keeping
// every filter parameter.
func (u *HTTPHelper) GetPagingUrl(c *gin.Context, page, perPage int) string {
	r := c.Request
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	query := url.Values{}
	for key, values := range r.URL.Query() {
		query[key] = values
	}
	query.Del("limit")
	query.Set("page", strconv.Itoa(page))
	query.Set("items_per_page", strconv.Itoa(perPage))

	return scheme + "://" + r.Host + r.URL.Path + "?" + query.Encode()
}

// GeneratePaging builds the pagination block for a page of totalRecord rows.
func (u *HTTPHelper) GeneratePaging(c *gin.Context, page, perPage int, totalRecord int64) models.Pagination {
	totalPages := int(math.Ceil(float64(totalRecord) / float64(perPage)))

	var links models.PaginationLinks
	if totalPages > 0 {
		if page > 1 {
			links.First = u.GetPagingUrl(c, 1, perPage)
			links.Previous = u.GetPagingUrl(c, min(page-1, totalPages), perPage)
		}
		if page < totalPages {
			links.Next = u.GetPagingUrl(c, page+1, perPage)
		}
		if page != totalPages {
			links.Last = u.GetPagingUrl(c, totalPages, perPage)
		}
	}

	return models.Pagination{
		TotalRecords: totalRecord,
		PerPage:      perPage,
		CurrentPage:  page,
		TotalPages:   totalPages,
		Links:        links,
	}
}
