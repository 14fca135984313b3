package settings

import (
	"github.com/xyz-asif/datejar/internal/localstore"
	"github.com/xyz-asif/datejar/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, store *localstore.Store) {
	handler := NewHandler(store)

	settings := router.Group("/settings")
	settings.Use(middleware.Auth())
	{
		settings.GET("/", handler.Get)
		settings.PUT("/", handler.Update)
		settings.PUT("/categories", handler.UpdateCategories)
		settings.PUT("/collection", handler.UpdateActiveCollection)
	}
}
