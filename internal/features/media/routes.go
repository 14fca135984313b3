package media

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/datejar/internal/config"
	"github.com/xyz-asif/datejar/internal/jar"
	"github.com/xyz-asif/datejar/internal/middleware"
	"github.com/xyz-asif/datejar/internal/pkg/cloudinary"
)

func RegisterRoutes(router *gin.RouterGroup, ctrl *jar.Controller, cfg *config.Config) {
	cld, err := cloudinary.NewService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryUploadFolder)
	if err != nil {
		// Media endpoints answer 503 until credentials are configured.
		log.Printf("media: cloudinary disabled: %v", err)
		cld = nil
	}

	handler := NewHandler(cld, ctrl)

	media := router.Group("/media")
	media.Use(middleware.Auth())
	{
		media.POST("/upload", handler.Upload)
		media.GET("/urls", handler.URLs)
		media.DELETE("/", handler.Delete)
	}
}
