package handlers

import (
	"net/http"
	"strings"

	"github.com/KHNEATH/startwise-sub000/internal/domain"
	"github.com/KHNEATH/startwise-sub000/internal/http/middleware"
	"github.com/KHNEATH/startwise-sub000/internal/repositories"

	"github.com/gin-gonic/gin"
)

const publicTestimonialLimit = 20

// GET /api/testimonials — approved entries only.
func ListTestimonials(c *gin.Context) {
	items, err := repositories.TestimonialRepository{}.ListApproved(c.Request.Context(), publicTestimonialLimit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"testimonials": items})
}

type testimonialRequest struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Content string `json:"content"`
	Rating  int    `json:"rating"`
}

// POST /api/testimonials — lands in pending state until moderated.
func CreateTestimonial(c *gin.Context) {
	var req testimonialRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		RespondDomainError(c, domain.ValidationError{Field: "content", Msg: "is required"})
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		RespondDomainError(c, domain.ValidationError{Field: "rating", Msg: "must be between 1 and 5"})
		return
	}

	id, err := repositories.TestimonialRepository{}.Create(c.Request.Context(), repositories.TestimonialRecord{
		UserID:  middleware.UserID(c),
		Name:    req.Name,
		Role:    req.Role,
		Content: req.Content,
		Rating:  req.Rating,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "testimonial submitted for review", "id": id})
}
