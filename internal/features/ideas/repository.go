package ideas

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/xyz-asif/datejar/internal/jar"
)

// Repository stores idea documents in Mongo. It implements the idea half of
// jar.Remote.
type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection(CollectionName)

	// Create indexes
	collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "type", Value: 1}}},
		{Keys: bson.D{{Key: "completed", Value: 1}}},
		{Keys: bson.D{{Key: "order", Value: 1}}},
	})

	return &Repository{collection: collection}
}

func (r *Repository) ListIdeas(ctx context.Context) ([]jar.Idea, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ideas := make([]jar.Idea, len(docs))
	for i, d := range docs {
		ideas[i] = d.Idea()
	}
	return ideas, nil
}

func (r *Repository) CreateIdea(ctx context.Context, idea jar.Idea) (jar.Idea, error) {
	doc := documentFromIdea(idea)
	doc.ID = primitive.ObjectID{}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return jar.Idea{}, err
	}

	doc.ID = result.InsertedID.(primitive.ObjectID)
	return doc.Idea(), nil
}

func (r *Repository) UpdateIdea(ctx context.Context, id string, patch jar.IdeaPatch) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.New("invalid idea ID")
	}

	update := patchToUpdate(patch)
	if len(update) == 0 {
		return nil
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return jar.ErrIdeaNotFound
	}
	return nil
}

func (r *Repository) DeleteIdea(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.New("invalid idea ID")
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return jar.ErrIdeaNotFound
	}
	return nil
}

func patchToUpdate(patch jar.IdeaPatch) bson.M {
	update := bson.M{}
	if patch.Title != nil {
		update["title"] = *patch.Title
	}
	if patch.Category != nil {
		update["category"] = *patch.Category
	}
	if patch.Description != nil {
		update["description"] = *patch.Description
	}
	if patch.Location != nil {
		update["location"] = *patch.Location
	}
	if patch.Duration != nil {
		update["duration"] = *patch.Duration
	}
	if patch.Cost != nil {
		update["cost"] = string(*patch.Cost)
	}
	if patch.Completed != nil {
		update["completed"] = *patch.Completed
	}
	if patch.IsFavorite != nil {
		update["isFavorite"] = *patch.IsFavorite
	}
	if patch.Order != nil {
		update["order"] = *patch.Order
	}
	if patch.Type != nil {
		update["type"] = *patch.Type
	}
	if patch.PlannedMonth != nil {
		update["plannedMonth"] = *patch.PlannedMonth
	}
	if patch.ImageID != nil {
		update["imageId"] = *patch.ImageID
	}
	return update
}
