package handlers

import (
	"net/http"

	"github.com/KHNEATH/startwise-sub000/internal/domain"
	"github.com/KHNEATH/startwise-sub000/internal/http/middleware"
	"github.com/KHNEATH/startwise-sub000/internal/repositories"

	"github.com/gin-gonic/gin"
)

type applyRequest struct {
	JobID       int64  `json:"job_id"`
	CoverLetter string `json:"cover_letter"`
}

// POST /api/applications
func CreateApplication(c *gin.Context) {
	var req applyRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.JobID <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "job_id", Msg: "must be a positive integer"})
		return
	}

	job, err := repositories.JobRepository{}.GetByID(c.Request.Context(), req.JobID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if job.Status != "active" {
		RespondDomainError(c, domain.ConflictError{Resource: "job", Msg: "job is no longer accepting applications"})
		return
	}

	id, err := repositories.ApplicationRepository{}.Create(c.Request.Context(), req.JobID, middleware.UserID(c), req.CoverLetter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "application submitted", "id": id})
}

// GET /api/applications/mine
func ListMyApplications(c *gin.Context) {
	apps, err := repositories.ApplicationRepository{}.ListByUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

// DELETE /api/applications/:id — withdraw own application.
func WithdrawApplication(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := repositories.ApplicationRepository{}.DeleteOwn(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "application withdrawn"})
}
