package employee

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts /employees. createGuards run before Create only,
// e.g. idempotency replay.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, createGuards ...gin.HandlerFunc) {
	employees := r.Group("/employees")
	{
		employees.GET("", handler.GetAll)
		employees.GET("/:id", handler.GetByID)
		employees.POST("", append(createGuards, handler.Create)...)
		employees.PATCH("/:id", handler.Update)
		employees.DELETE("/:id", handler.Delete)
	}
}
