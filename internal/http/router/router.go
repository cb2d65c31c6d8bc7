package router

import (
	"github.com/gin-gonic/gin"

	"ideaforge.app/evaluator/internal/http/handler"
	"ideaforge.app/evaluator/internal/service"
)

func SetupRoutes(router *gin.Engine, services *service.Services) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	workflowHandler := handler.NewWorkflowHandler(
		services.Evaluations(),
		services.Assignments(),
		services.AIEvaluations(),
		services.Finalizations(),
		services.Reports(),
	)

	v1 := router.Group("/api/v1")
	{
		WorkflowRouter(v1.Group("/evaluations"), workflowHandler)
	}
}
