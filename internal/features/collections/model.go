package collections

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xyz-asif/datejar/internal/jar"
)

// CollectionName is the Mongo collection holding collection metadata.
const CollectionName = "collections"

// Document is the Mongo shape of a collection record.
type Document struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

// Collection converts the stored document into the domain record.
func (d Document) Collection() jar.Collection {
	return jar.Collection{ID: d.ID.Hex(), Name: d.Name}
}

// DecodeDocument decodes a raw BSON document, used by the change stream.
func DecodeDocument(raw bson.Raw) (jar.Collection, error) {
	var d Document
	if err := bson.Unmarshal(raw, &d); err != nil {
		return jar.Collection{}, err
	}
	return d.Collection(), nil
}

// CreateCollectionRequest represents collection creation data
type CreateCollectionRequest struct {
	Name string `json:"name" binding:"required" example:"Ausflüge"`
}

// RenameCollectionRequest represents a collection rename
type RenameCollectionRequest struct {
	Name string `json:"name" binding:"required" example:"Wochenendtrips"`
}
