package router

import (
	"github.com/gin-gonic/gin"

	"ideaforge.app/evaluator/internal/http/handler"
)

// WorkflowRouter mounts the single action-dispatch endpoint.
func WorkflowRouter(rg *gin.RouterGroup, h *handler.WorkflowHandler) {
	rg.POST("/workflow", h.Handle)
}
