package api

import (
	"log"
	stdhttp "net/http"

	intconfig "github.com/KHNEATH/startwise-sub000/internal/config"
	h "github.com/KHNEATH/startwise-sub000/internal/http/handlers"
	"github.com/KHNEATH/startwise-sub000/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	middleware.SetJWTSecret(env.JWTSecret)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// Jobs (public browse, authenticated manage)
		jobs := api.Group("/jobs")
		jobs.GET("", h.ListJobs)
		jobs.GET("/:id", h.GetJob)
		jobs.POST("", middleware.RequireAuth(), middleware.RequireRoles("employer", "admin"), h.CreateJob)
		jobs.PUT("/:id", middleware.RequireAuth(), middleware.RequireRoles("employer", "admin"), h.UpdateJob)
		jobs.DELETE("/:id", middleware.RequireAuth(), middleware.RequireRoles("employer", "admin"), h.DeleteJob)

		// Testimonials
		api.GET("/testimonials", h.ListTestimonials)
		api.POST("/testimonials", middleware.RequireAuth(), h.CreateTestimonial)

		// Profile (CV builder data)
		users := api.Group("/users", middleware.RequireAuth())
		users.GET("/me", h.GetMe)
		users.PUT("/me", h.UpdateMe)

		// Applications
		applications := api.Group("/applications", middleware.RequireAuth())
		applications.POST("", h.CreateApplication)
		applications.GET("/mine", h.ListMyApplications)
		applications.DELETE("/:id", h.WithdrawApplication)

		// Admin surface
		admin := api.Group("/admin", middleware.RequireAuth(), middleware.RequireRoles("admin"))
		admin.GET("/dashboard", h.AdminDashboard)

		admin.GET("/users", h.AdminListUsers)
		admin.PUT("/users/:id/status", h.AdminUpdateUserStatus)
		admin.DELETE("/users/:id", h.AdminDeleteUser)

		admin.GET("/jobs", h.AdminListJobs)
		admin.PUT("/jobs/:id/status", h.AdminUpdateJobStatus)
		admin.DELETE("/jobs/:id", h.AdminDeleteJob)

		admin.GET("/applications", h.AdminListApplications)
		admin.PUT("/applications/:id/status", h.AdminUpdateApplicationStatus)

		admin.GET("/testimonials", h.AdminListTestimonials)
		admin.PUT("/testimonials/:id/status", h.AdminUpdateTestimonialStatus)
		admin.DELETE("/testimonials/:id", h.AdminDeleteTestimonial)

		admin.GET("/activity-logs", h.AdminListActivityLogs)
		admin.GET("/reports/jobs", h.AdminJobsReportPDF)
	}

	return r
}
