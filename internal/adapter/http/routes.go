package http

import (
	"promanager/internal/adapter/http/handlers"
	"promanager/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.Engine,
	healthHandler *handlers.HealthHandler,
	taskHandler *handlers.TaskHandler,
	verifier middleware.TokenVerifier,
) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", healthHandler.CheckHealth)
		api.GET("/health/report", healthHandler.CheckHealthReport)

		// Shared links resolve without a token.
		api.GET("/tasks/:id", taskHandler.GetTask)
	}

	tasks := api.Group("/tasks")
	tasks.Use(middleware.AuthMiddleware(verifier))
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("/summary", taskHandler.GetStatusPrioritySummary)
		tasks.GET("/filter", taskHandler.FilterByTimeFrame)
		tasks.PUT("/:id", taskHandler.UpdateTask)
		tasks.DELETE("/:id", taskHandler.DeleteTask)
		tasks.PUT("/:id/status", taskHandler.UpdateTaskStatus)
		tasks.PUT("/:id/checklist/:itemId", taskHandler.ToggleChecklistItem)
		tasks.GET("/:id/share", taskHandler.ShareTask)
	}
}
