package section

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts /sections. Writes run behind the admin guard.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, admin gin.HandlerFunc) {
	sections := r.Group("/sections")
	{
		sections.GET("", handler.GetAll)
		sections.POST("", admin, handler.Create)
		sections.PATCH("/:id", admin, handler.Update)
		sections.DELETE("/:id", admin, handler.Delete)
	}
}
