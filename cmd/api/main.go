// ================== cmd/api/main.go ==================
//
// @title DateJar API
// @version 1.0
// @description A RESTful API for a shared date-idea jar with offline-tolerant synchronization
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer <token>"
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xyz-asif/datejar/internal/config"
	"github.com/xyz-asif/datejar/internal/database"
	"github.com/xyz-asif/datejar/internal/middleware"
	"github.com/xyz-asif/datejar/internal/pkg/response"
	"github.com/xyz-asif/datejar/internal/realtime"
	"github.com/xyz-asif/datejar/internal/routes"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	docs "github.com/xyz-asif/datejar/docs"
)

func main() {
	// Load config
	cfg := config.Load()

	// Configure Swagger metadata at runtime
	docs.SwaggerInfo.Title = "DateJar API"
	docs.SwaggerInfo.Description = "A RESTful API for a shared date-idea jar with offline-tolerant synchronization"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = "localhost:" + cfg.Port
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http"}

	// Connect to MongoDB
	db, err := database.Connect(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer db.Disconnect(context.Background())

	// If we are running in production, be quiet and stop logging so much.
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.FrontendURL))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, map[string]interface{}{
			"status": "ok",
			"time":   time.Now().Unix(),
		})
	})

	// Swagger documentation (modern UI configs)
	router.GET(
		"/swagger/*any",
		ginSwagger.WrapHandler(
			swaggerFiles.Handler,
			ginSwagger.URL("/swagger/doc.json"),
			ginSwagger.DeepLinking(true),
			ginSwagger.DefaultModelsExpandDepth(-1),
			ginSwagger.DocExpansion("none"),
			ginSwagger.PersistAuthorization(true),
		),
	)

	// Register all routes and build the synchronization controller
	hub := realtime.NewHub(slog.Default())
	ctrl, err := routes.SetupRoutes(router, db.Database, cfg, hub)
	if err != nil {
		log.Fatal("Failed to set up routes:", err)
	}

	// Initial load. A failure is not fatal: the controller restores the last
	// local snapshot and serves in offline mode until the next restart.
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 15*time.Second)
	if err := ctrl.Load(loadCtx); err != nil {
		log.Printf("Initial load failed, serving from local snapshot: %v", err)
	}
	cancelLoad()

	// Tail the remote change streams so edits from other deployments land here
	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	realtime.NewWatcher(db.Database, ctrl, hub, slog.Default()).Run(watchCtx)

	// config server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}
	// start the server
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
