package app

import (
	"unicourse_backend/docs"
	"unicourse_backend/internal/config"
	"unicourse_backend/internal/middleware"
	"unicourse_backend/internal/model"
	"unicourse_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// Authenticated routes
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		authGroup.GET("/notifications", c.notification.List)
		authGroup.POST("/notifications/:id/read", c.notification.MarkRead)

		// Course surface: drafts belong to instructors, reads are open to
		// any authenticated member.
		courses := authGroup.Group("/courses")
		{
			courses.POST("", middleware.RoleMiddleware(model.Instructor), c.course.Create)
			courses.GET("", c.course.ListMine)
			courses.GET("/:id", c.course.Get)
			courses.PUT("/:id", middleware.RoleMiddleware(model.Instructor), c.course.Update)
			courses.POST("/:id/submit", middleware.RoleMiddleware(model.Instructor), c.course.Submit)
			courses.GET("/:id/history", c.course.History)
		}

		// Review surface
		approvals := authGroup.Group("/course-approvals")
		{
			approvals.GET("", c.approval.ListPending)
			approvals.GET("/pending-count", c.approval.PendingCount)
			approvals.GET("/:id", c.approval.GetApproval)
			approvals.PATCH("/:id", c.approval.Decide)
		}
	}
}
