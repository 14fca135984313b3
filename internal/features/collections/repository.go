package collections

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/xyz-asif/datejar/internal/jar"
)

// Repository stores collection metadata in Mongo. It implements the
// collection half of jar.Remote.
type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection(CollectionName)

	collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	})

	return &Repository{collection: collection}
}

func (r *Repository) ListCollections(ctx context.Context) ([]jar.Collection, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	cols := make([]jar.Collection, len(docs))
	for i, d := range docs {
		cols[i] = d.Collection()
	}
	return cols, nil
}

func (r *Repository) CreateCollection(ctx context.Context, name string) (jar.Collection, error) {
	result, err := r.collection.InsertOne(ctx, Document{Name: name})
	if err != nil {
		return jar.Collection{}, err
	}
	return Document{ID: result.InsertedID.(primitive.ObjectID), Name: name}.Collection(), nil
}

func (r *Repository) RenameCollection(ctx context.Context, id, newName string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.New("invalid collection ID")
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": bson.M{"name": newName}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return jar.ErrCollectionNotFound
	}
	return nil
}

func (r *Repository) DeleteCollection(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.New("invalid collection ID")
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return jar.ErrCollectionNotFound
	}
	return nil
}
