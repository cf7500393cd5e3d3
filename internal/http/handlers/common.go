package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/KHNEATH/startwise-sub000/internal/domain"
	"github.com/KHNEATH/startwise-sub000/internal/http/middleware"
	"github.com/KHNEATH/startwise-sub000/internal/repositories"

	"github.com/gin-gonic/gin"
)

// RespondError sends standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	reqID := middleware.GetRequestID(c)
	payload := gin.H{
		"message":    message,
		"request_id": reqID,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

// parseListParams reads page/limit/search from the query string. Out-of-range
// values are clamped downstream; genuinely unparseable ones are a 400.
func parseListParams(c *gin.Context) (repositories.ListParams, bool) {
	p := repositories.ListParams{Search: c.Query("search")}

	if raw := strings.TrimSpace(c.Query("page")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			RespondDomainError(c, domain.ValidationError{Field: "page", Msg: "must be an integer", Err: err})
			return p, false
		}
		p.Page = n
	}

	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			RespondDomainError(c, domain.ValidationError{Field: "limit", Msg: "must be an integer", Err: err})
			return p, false
		}
		p.Limit = n
	}

	return p, true
}

// addFilter appends an equality filter when the query param is present. The
// column comes from the handler, never from the caller.
func addFilter(c *gin.Context, p *repositories.ListParams, param, column string) {
	if v := strings.TrimSpace(c.Query(param)); v != "" {
		p.Filters = append(p.Filters, repositories.FieldFilter{Column: column, Value: v})
	}
}

// respondPage emits the standard list envelope keyed by resource name.
func respondPage[T any](c *gin.Context, resource string, res repositories.PageResult[T]) {
	c.JSON(http.StatusOK, gin.H{
		resource:     res.Rows,
		"total":      res.Total,
		"page":       res.Page,
		"limit":      res.Limit,
		"totalPages": res.TotalPages,
	})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "must be a positive integer"})
		return 0, false
	}
	return id, true
}
