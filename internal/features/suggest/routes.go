package suggest

import (
	"github.com/xyz-asif/datejar/internal/jar"
	"github.com/xyz-asif/datejar/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, ctrl *jar.Controller, client *Client) {
	handler := NewHandler(ctrl, client)

	suggest := router.Group("/suggest")
	suggest.Use(middleware.Auth())
	{
		suggest.POST("/", handler.Suggest)
		suggest.POST("/accept", handler.Accept)
	}
}
