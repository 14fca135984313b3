package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/xyz-asif/datejar/internal/config"
	"github.com/xyz-asif/datejar/internal/features/auth"
	"github.com/xyz-asif/datejar/internal/features/collections"
	"github.com/xyz-asif/datejar/internal/features/ideas"
	"github.com/xyz-asif/datejar/internal/features/media"
	"github.com/xyz-asif/datejar/internal/features/settings"
	"github.com/xyz-asif/datejar/internal/features/suggest"
	"github.com/xyz-asif/datejar/internal/jar"
	"github.com/xyz-asif/datejar/internal/localstore"
	"github.com/xyz-asif/datejar/internal/realtime"
)

// mongoRemote combines the two repositories into the full jar.Remote.
type mongoRemote struct {
	ideas       *ideas.Repository
	collections *collections.Repository
}

func (r *mongoRemote) ListIdeas(ctx context.Context) ([]jar.Idea, error) {
	return r.ideas.ListIdeas(ctx)
}

func (r *mongoRemote) CreateIdea(ctx context.Context, idea jar.Idea) (jar.Idea, error) {
	return r.ideas.CreateIdea(ctx, idea)
}

func (r *mongoRemote) UpdateIdea(ctx context.Context, id string, patch jar.IdeaPatch) error {
	return r.ideas.UpdateIdea(ctx, id, patch)
}

func (r *mongoRemote) DeleteIdea(ctx context.Context, id string) error {
	return r.ideas.DeleteIdea(ctx, id)
}

func (r *mongoRemote) ListCollections(ctx context.Context) ([]jar.Collection, error) {
	return r.collections.ListCollections(ctx)
}

func (r *mongoRemote) CreateCollection(ctx context.Context, name string) (jar.Collection, error) {
	return r.collections.CreateCollection(ctx, name)
}

func (r *mongoRemote) RenameCollection(ctx context.Context, id, newName string) error {
	return r.collections.RenameCollection(ctx, id, newName)
}

func (r *mongoRemote) DeleteCollection(ctx context.Context, id string) error {
	return r.collections.DeleteCollection(ctx, id)
}

// SetupRoutes wires the synchronization controller, the local fallback store
// and all feature routes, and returns the controller for the caller to Load.
func SetupRoutes(router *gin.Engine, db *mongo.Database, cfg *config.Config, hub *realtime.Hub) (*jar.Controller, error) {
	store, err := localstore.New(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	remote := &mongoRemote{
		ideas:       ideas.NewRepository(db),
		collections: collections.NewRepository(db),
	}
	ctrl := jar.New(remote, store, hub)

	// API v1 group
	api := router.Group("/api/v1")

	auth.RegisterRoutes(api, db)
	ideas.RegisterRoutes(api, ctrl, store)
	collections.RegisterRoutes(api, ctrl)
	suggest.RegisterRoutes(api, ctrl, suggest.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel))
	media.RegisterRoutes(api, ctrl, cfg)
	settings.RegisterRoutes(api, store)

	// Realtime sync feed
	router.GET("/ws", realtime.Handler(hub))

	return ctrl, nil
}
