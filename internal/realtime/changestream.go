package realtime

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/xyz-asif/datejar/internal/features/collections"
	"github.com/xyz-asif/datejar/internal/features/ideas"
	"github.com/xyz-asif/datejar/internal/jar"
)

// EventSink consumes change events observed on the remote store.
type EventSink interface {
	ApplyRemoteEvent(jar.Event)
}

const watchRetryDelay = 5 * time.Second

// Watcher tails the ideas and collections change streams so writes made by
// other deployments reach this one. Each change is applied to the sink
// (last write wins) and broadcast to connected clients.
type Watcher struct {
	db     *mongo.Database
	sink   EventSink
	hub    *Hub
	logger *slog.Logger
}

func NewWatcher(db *mongo.Database, sink EventSink, hub *Hub, logger *slog.Logger) *Watcher {
	return &Watcher{db: db, sink: sink, hub: hub, logger: logger}
}

// Run starts one watch loop per channel and returns immediately.
// The loops stop when ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	go w.watchLoop(ctx, ideas.CollectionName, w.handleIdeaChange)
	go w.watchLoop(ctx, collections.CollectionName, w.handleCollectionChange)
}

type changeEvent struct {
	OperationType string `bson:"operationType"`
	DocumentKey   struct {
		ID primitive.ObjectID `bson:"_id"`
	} `bson:"documentKey"`
	FullDocument bson.Raw `bson:"fullDocument"`
}

func (w *Watcher) watchLoop(ctx context.Context, collection string, handle func(changeEvent)) {
	for ctx.Err() == nil {
		if err := w.watchOnce(ctx, collection, handle); err != nil && ctx.Err() == nil {
			w.logger.Error("change stream interrupted", "collection", collection, "error", err)
		}

		select {
		case <-time.After(watchRetryDelay):
		case <-ctx.Done():
			return
		}
	}
}

func (w *Watcher) watchOnce(ctx context.Context, collection string, handle func(changeEvent)) error {
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	stream, err := w.db.Collection(collection).Watch(ctx, mongo.Pipeline{}, opts)
	if err != nil {
		return err
	}
	defer stream.Close(ctx)

	for stream.Next(ctx) {
		var ev changeEvent
		if err := stream.Decode(&ev); err != nil {
			w.logger.Error("decode change event", "collection", collection, "error", err)
			continue
		}
		handle(ev)
	}
	return stream.Err()
}

func changeAction(operationType string) (jar.EventAction, bool) {
	switch operationType {
	case "insert":
		return jar.ActionCreated, true
	case "update", "replace":
		return jar.ActionUpdated, true
	case "delete":
		return jar.ActionDeleted, true
	}
	return "", false
}

func (w *Watcher) handleIdeaChange(ev changeEvent) {
	action, ok := changeAction(ev.OperationType)
	if !ok {
		return
	}

	event := jar.Event{
		Channel: jar.ChannelIdeas,
		Action:  action,
		ID:      ev.DocumentKey.ID.Hex(),
	}
	if action != jar.ActionDeleted {
		idea, err := ideas.DecodeDocument(ev.FullDocument)
		if err != nil {
			w.logger.Error("decode idea document", "id", event.ID, "error", err)
			return
		}
		event.Idea = &idea
	}

	w.sink.ApplyRemoteEvent(event)
	w.hub.Publish(event)
}

func (w *Watcher) handleCollectionChange(ev changeEvent) {
	action, ok := changeAction(ev.OperationType)
	if !ok {
		return
	}

	event := jar.Event{
		Channel: jar.ChannelCollections,
		Action:  action,
		ID:      ev.DocumentKey.ID.Hex(),
	}
	if action != jar.ActionDeleted {
		coll, err := collections.DecodeDocument(ev.FullDocument)
		if err != nil {
			w.logger.Error("decode collection document", "id", event.ID, "error", err)
			return
		}
		event.Collection = &coll
	}

	w.sink.ApplyRemoteEvent(event)
	w.hub.Publish(event)
}
