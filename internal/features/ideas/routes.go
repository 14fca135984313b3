package ideas

import (
	"github.com/xyz-asif/datejar/internal/jar"
	"github.com/xyz-asif/datejar/internal/localstore"
	"github.com/xyz-asif/datejar/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, ctrl *jar.Controller, store *localstore.Store) {
	handler := NewHandler(ctrl, store)

	ideas := router.Group("/ideas")
	ideas.Use(middleware.Auth()) // All idea routes require authentication
	{
		ideas.GET("/", handler.List)
		ideas.POST("/", handler.Create)
		ideas.POST("/reorder", handler.Reorder)
		ideas.GET("/shuffle", handler.Shuffle)
		ideas.GET("/planner", handler.Planner)
		ideas.PATCH("/:id", handler.Update)
		ideas.DELETE("/:id", handler.Delete)
		ideas.POST("/:id/toggle", handler.Toggle)
		ideas.POST("/:id/favorite", handler.Favorite)
	}
}
