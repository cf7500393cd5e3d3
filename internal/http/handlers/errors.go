package handlers

import (
	"net/http"

	"github.com/KHNEATH/startwise-sub000/internal/domain"
	"github.com/KHNEATH/startwise-sub000/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, code, message string) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, gin.H{
		"error":      message,
		"code":       code,
		"request_id": middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Store failures are
// a 503 so clients know to retry later; this layer never retries itself.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusUnauthorized, "unauthorized", err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error())
	case domain.IsStoreUnavailable(err):
		respondError(c, http.StatusServiceUnavailable, "store_unavailable", "database unavailable, try again later")
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}
