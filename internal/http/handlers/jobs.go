package handlers

import (
	"net/http"
	"strings"

	"github.com/KHNEATH/startwise-sub000/internal/domain"
	"github.com/KHNEATH/startwise-sub000/internal/http/middleware"
	"github.com/KHNEATH/startwise-sub000/internal/repositories"

	"github.com/gin-gonic/gin"
)

var jobTypes = map[string]struct{}{
	"full-time":  {},
	"part-time":  {},
	"internship": {},
}

// GET /api/jobs — public listing, active jobs only.
func ListJobs(c *gin.Context) {
	p, ok := parseListParams(c)
	if !ok {
		return
	}
	addFilter(c, &p, "type", "type")
	addFilter(c, &p, "category", "category")
	p.Filters = append(p.Filters, repositories.FieldFilter{Column: "status", Value: "active"})

	res, err := repositories.JobRepository{}.List(c.Request.Context(), p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondPage(c, "jobs", res)
}

// GET /api/jobs/:id
func GetJob(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	job, err := repositories.JobRepository{}.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": job})
}

type jobRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Salary      string `json:"salary"`
	Description string `json:"description"`
}

func (r jobRequest) validate() error {
	if strings.TrimSpace(r.Title) == "" || strings.TrimSpace(r.Company) == "" {
		return domain.ValidationError{Msg: "title and company are required"}
	}
	if _, ok := jobTypes[r.Type]; !ok {
		return domain.ValidationError{Field: "type", Msg: "must be full-time, part-time or internship"}
	}
	return nil
}

// POST /api/jobs — employers and admins.
func CreateJob(c *gin.Context) {
	var req jobRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := req.validate(); err != nil {
		RespondDomainError(c, err)
		return
	}

	id, err := repositories.JobRepository{}.Create(c.Request.Context(), repositories.JobRecord{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Type:        req.Type,
		Category:    req.Category,
		Salary:      req.Salary,
		Description: req.Description,
		PostedBy:    middleware.UserID(c),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "job created", "id": id})
}

// PUT /api/jobs/:id — poster or admin.
func UpdateJob(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req jobRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := req.validate(); err != nil {
		RespondDomainError(c, err)
		return
	}

	repo := repositories.JobRepository{}
	if !canManageJob(c, repo, id) {
		return
	}

	err := repo.Update(c.Request.Context(), repositories.JobRecord{
		ID:          id,
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Type:        req.Type,
		Category:    req.Category,
		Salary:      req.Salary,
		Description: req.Description,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "job updated"})
}

// DELETE /api/jobs/:id — poster or admin.
func DeleteJob(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	repo := repositories.JobRepository{}
	if !canManageJob(c, repo, id) {
		return
	}
	if err := repo.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "job deleted"})
}

func canManageJob(c *gin.Context, repo repositories.JobRepository, id int64) bool {
	if middleware.UserRole(c) == "admin" {
		return true
	}
	job, err := repo.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return false
	}
	if job.PostedBy != middleware.UserID(c) {
		respondError(c, http.StatusForbidden, "forbidden", "not the owner of this job")
		return false
	}
	return true
}
