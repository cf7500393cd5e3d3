package handlers

import (
	"net/http"

	"github.com/KHNEATH/startwise-sub000/internal/http/middleware"
	"github.com/KHNEATH/startwise-sub000/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/users/me
func GetMe(c *gin.Context) {
	profile, err := repositories.UserRepository{}.GetByID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": profile})
}

type updateProfileRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Education  string `json:"education"`
	Skills     string `json:"skills"`
	Experience string `json:"experience"`
}

// PUT /api/users/me — also persists the CV-builder fields.
func UpdateMe(c *gin.Context) {
	var req updateProfileRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	userID := middleware.UserID(c)
	repo := repositories.UserRepository{}

	profile := repositories.UserProfile{
		Education:  req.Education,
		Skills:     req.Skills,
		Experience: req.Experience,
	}
	profile.Name = req.Name
	profile.Phone = req.Phone

	if err := repo.UpdateProfile(c.Request.Context(), userID, profile); err != nil {
		RespondDomainError(c, err)
		return
	}

	updated, err := repo.GetByID(c.Request.Context(), userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile updated", "user": updated})
}
