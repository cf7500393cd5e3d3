package handlers

import (
	"net/http"
	"strings"

	"github.com/KHNEATH/startwise-sub000/internal/domain"
	"github.com/KHNEATH/startwise-sub000/internal/http/middleware"
	"github.com/KHNEATH/startwise-sub000/internal/repositories"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	user, err := repositories.UserRepository{}.FindCredentials(c.Request.Context(), strings.TrimSpace(req.Email))
	if domain.IsNotFound(err) {
		respondError(c, http.StatusUnauthorized, "unauthorized", "invalid email/username or password")
		return
	}
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "unauthorized", "invalid email/username or password")
		return
	}

	if user.Status == "suspended" {
		respondError(c, http.StatusForbidden, "forbidden", "account is suspended")
		return
	}

	token, err := middleware.SignToken(user.ID, user.Role)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "failed to sign token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user.UserRecord,
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	if req.Email == "" || req.Username == "" || len(req.Password) < 6 {
		RespondDomainError(c, domain.ValidationError{Msg: "email, username and a password of at least 6 characters are required"})
		return
	}

	role := strings.ToLower(strings.TrimSpace(req.Role))
	switch role {
	case "", "student":
		role = "student"
	case "employer":
	default:
		RespondDomainError(c, domain.ValidationError{Field: "role", Msg: "must be student or employer"})
		return
	}

	repo := repositories.UserRepository{}
	taken, err := repo.EmailOrUsernameTaken(c.Request.Context(), req.Email, req.Username)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if taken {
		RespondDomainError(c, domain.ConflictError{Resource: "user", Msg: "email or username already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "failed to hash password")
		return
	}

	id, err := repo.Create(c.Request.Context(), strings.TrimSpace(req.Name), req.Username, req.Email, strings.TrimSpace(req.Phone), string(hash), role)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "registration successful",
		"user": gin.H{
			"id":       id,
			"name":     req.Name,
			"username": req.Username,
			"email":    req.Email,
			"phone":    req.Phone,
			"role":     role,
			"status":   "active",
		},
	})
}
