package collections

import (
	"github.com/xyz-asif/datejar/internal/jar"
	"github.com/xyz-asif/datejar/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, ctrl *jar.Controller) {
	handler := NewHandler(ctrl)

	cols := router.Group("/collections")
	cols.Use(middleware.Auth()) // All collection routes require authentication
	{
		cols.GET("/", handler.List)
		cols.POST("/", handler.Create)
		cols.PUT("/:id", handler.Rename)
		cols.DELETE("/:id", handler.Delete)
	}
}
