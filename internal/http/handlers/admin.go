package handlers

import (
	"net/http"
	"strings"

	"github.com/KHNEATH/startwise-sub000/internal/domain"
	"github.com/KHNEATH/startwise-sub000/internal/http/middleware"
	"github.com/KHNEATH/startwise-sub000/internal/repositories"
	"github.com/KHNEATH/startwise-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

var (
	userStatuses        = map[string]struct{}{"active": {}, "suspended": {}}
	jobStatuses         = map[string]struct{}{"active": {}, "closed": {}}
	applicationStatuses = map[string]struct{}{"pending": {}, "reviewed": {}, "accepted": {}, "rejected": {}}
	testimonialStatuses = map[string]struct{}{"pending": {}, "approved": {}, "rejected": {}}
)

// GET /api/admin/dashboard
func AdminDashboard(c *gin.Context) {
	summary, err := services.DashboardService{}.Summary(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GET /api/admin/users
func AdminListUsers(c *gin.Context) {
	p, ok := parseListParams(c)
	if !ok {
		return
	}
	addFilter(c, &p, "role", "role")
	addFilter(c, &p, "status", "status")

	res, err := repositories.UserRepository{}.List(c.Request.Context(), p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondPage(c, "users", res)
}

// GET /api/admin/jobs
func AdminListJobs(c *gin.Context) {
	p, ok := parseListParams(c)
	if !ok {
		return
	}
	addFilter(c, &p, "status", "status")
	addFilter(c, &p, "type", "type")

	res, err := repositories.JobRepository{}.List(c.Request.Context(), p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondPage(c, "jobs", res)
}

// GET /api/admin/applications
func AdminListApplications(c *gin.Context) {
	p, ok := parseListParams(c)
	if !ok {
		return
	}
	addFilter(c, &p, "status", "a.status")

	res, err := repositories.ApplicationRepository{}.List(c.Request.Context(), p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondPage(c, "applications", res)
}

// GET /api/admin/testimonials
func AdminListTestimonials(c *gin.Context) {
	p, ok := parseListParams(c)
	if !ok {
		return
	}
	addFilter(c, &p, "status", "status")

	res, err := repositories.TestimonialRepository{}.List(c.Request.Context(), p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondPage(c, "testimonials", res)
}

// GET /api/admin/activity-logs
func AdminListActivityLogs(c *gin.Context) {
	p, ok := parseListParams(c)
	if !ok {
		return
	}
	addFilter(c, &p, "action", "action")

	res, err := repositories.ActivityRepository{}.List(c.Request.Context(), p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondPage(c, "logs", res)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (r statusRequest) validate(allowed map[string]struct{}) (string, error) {
	status := strings.ToLower(strings.TrimSpace(r.Status))
	if _, ok := allowed[status]; !ok {
		return "", domain.ValidationError{Field: "status", Msg: "unsupported value"}
	}
	return status, nil
}

// PUT /api/admin/users/:id/status
func AdminUpdateUserStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req statusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	status, err := req.validate(userStatuses)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if err := (repositories.UserRepository{}).UpdateStatus(c.Request.Context(), id, status); err != nil {
		RespondDomainError(c, err)
		return
	}
	logAdminActivity(c, "update_user_status", "user", id, map[string]any{"status": status})
	c.JSON(http.StatusOK, gin.H{"message": "user status updated"})
}

// DELETE /api/admin/users/:id
func AdminDeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := (repositories.UserRepository{}).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	logAdminActivity(c, "delete_user", "user", id, nil)
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// PUT /api/admin/jobs/:id/status
func AdminUpdateJobStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req statusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	status, err := req.validate(jobStatuses)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if err := (repositories.JobRepository{}).UpdateStatus(c.Request.Context(), id, status); err != nil {
		RespondDomainError(c, err)
		return
	}
	logAdminActivity(c, "update_job_status", "job", id, map[string]any{"status": status})
	c.JSON(http.StatusOK, gin.H{"message": "job status updated"})
}

// DELETE /api/admin/jobs/:id
func AdminDeleteJob(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := (repositories.JobRepository{}).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	logAdminActivity(c, "delete_job", "job", id, nil)
	c.JSON(http.StatusOK, gin.H{"message": "job deleted"})
}

// PUT /api/admin/applications/:id/status
func AdminUpdateApplicationStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req statusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	status, err := req.validate(applicationStatuses)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if err := (repositories.ApplicationRepository{}).UpdateStatus(c.Request.Context(), id, status); err != nil {
		RespondDomainError(c, err)
		return
	}
	logAdminActivity(c, "update_application_status", "application", id, map[string]any{"status": status})
	c.JSON(http.StatusOK, gin.H{"message": "application status updated"})
}

// PUT /api/admin/testimonials/:id/status
func AdminUpdateTestimonialStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req statusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	status, err := req.validate(testimonialStatuses)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if err := (repositories.TestimonialRepository{}).UpdateStatus(c.Request.Context(), id, status); err != nil {
		RespondDomainError(c, err)
		return
	}
	logAdminActivity(c, "update_testimonial_status", "testimonial", id, map[string]any{"status": status})
	c.JSON(http.StatusOK, gin.H{"message": "testimonial status updated"})
}

// DELETE /api/admin/testimonials/:id
func AdminDeleteTestimonial(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := (repositories.TestimonialRepository{}).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	logAdminActivity(c, "delete_testimonial", "testimonial", id, nil)
	c.JSON(http.StatusOK, gin.H{"message": "testimonial deleted"})
}

// GET /api/admin/reports/jobs
func AdminJobsReportPDF(c *gin.Context) {
	svc := services.ReportService{RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := svc.JobsReport(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// logAdminActivity records an audit entry after the primary mutation has
// already succeeded. The logger is fire-and-forget; nothing here can fail
// the request.
func logAdminActivity(c *gin.Context, action, targetType string, targetID int64, details map[string]any) {
	var actorID *int64
	if id := middleware.UserID(c); id > 0 {
		actorID = &id
	}
	var target *int64
	if targetID > 0 {
		target = &targetID
	}

	services.Activity().Record(services.ActivityEntry{
		ActorID:    actorID,
		Action:     action,
		TargetType: targetType,
		TargetID:   target,
		Details:    details,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		RequestID:  middleware.GetRequestID(c),
	})
}
