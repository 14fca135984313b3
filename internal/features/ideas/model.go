package ideas

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xyz-asif/datejar/internal/jar"
)

// CollectionName is the Mongo collection holding idea documents.
const CollectionName = "ideas"

// Document is the Mongo shape of an idea record.
type Document struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Category     string             `bson:"category"`
	Description  string             `bson:"description,omitempty"`
	Location     string             `bson:"location,omitempty"`
	Duration     string             `bson:"duration,omitempty"`
	Cost         string             `bson:"cost,omitempty"`
	Completed    bool               `bson:"completed"`
	IsFavorite   bool               `bson:"isFavorite"`
	CreatedBy    string             `bson:"createdBy,omitempty"`
	CreatedAt    int64              `bson:"createdAt"`
	Order        float64            `bson:"order"`
	Type         string             `bson:"type"`
	PlannedMonth string             `bson:"plannedMonth,omitempty"`
	ImageID      string             `bson:"imageId,omitempty"`
}

// Idea converts the stored document into the domain record.
func (d Document) Idea() jar.Idea {
	return jar.Idea{
		ID:           jar.ConfirmedID(d.ID.Hex()),
		Title:        d.Title,
		Category:     d.Category,
		Description:  d.Description,
		Location:     d.Location,
		Duration:     d.Duration,
		Cost:         jar.CostLevel(d.Cost),
		Completed:    d.Completed,
		IsFavorite:   d.IsFavorite,
		CreatedBy:    d.CreatedBy,
		CreatedAt:    d.CreatedAt,
		Order:        d.Order,
		Type:         d.Type,
		PlannedMonth: d.PlannedMonth,
		ImageID:      d.ImageID,
	}
}

// DecodeDocument decodes a raw BSON document, used by the change stream.
func DecodeDocument(raw bson.Raw) (jar.Idea, error) {
	var d Document
	if err := bson.Unmarshal(raw, &d); err != nil {
		return jar.Idea{}, err
	}
	return d.Idea(), nil
}

// documentFromIdea maps a domain record onto the Mongo shape. Pending ids are
// dropped so the insert generates a fresh ObjectID.
func documentFromIdea(idea jar.Idea) Document {
	d := Document{
		Title:        idea.Title,
		Category:     idea.Category,
		Description:  idea.Description,
		Location:     idea.Location,
		Duration:     idea.Duration,
		Cost:         string(idea.Cost),
		Completed:    idea.Completed,
		IsFavorite:   idea.IsFavorite,
		CreatedBy:    idea.CreatedBy,
		CreatedAt:    idea.CreatedAt,
		Order:        idea.Order,
		Type:         idea.Type,
		PlannedMonth: idea.PlannedMonth,
		ImageID:      idea.ImageID,
	}
	if !idea.ID.Pending() {
		if oid, err := primitive.ObjectIDFromHex(idea.ID.String()); err == nil {
			d.ID = oid
		}
	}
	return d
}

// CreateIdeaRequest represents idea creation data
type CreateIdeaRequest struct {
	Title        string `json:"title" binding:"required" example:"Picknick im Park"`
	Category     string `json:"category" example:"Aktiv"`
	Description  string `json:"description" example:"Decke und Korb nicht vergessen"`
	Location     string `json:"location" example:"Dresden"`
	Duration     string `json:"duration" example:"2-3 Stunden"`
	Cost         string `json:"cost" example:"€" enums:"Kostenlos,€,€€,€€€"`
	Type         string `json:"type" example:"Aktivitäten"`
	PlannedMonth string `json:"plannedMonth" example:"2026-09"`
}

// Draft builds the domain record; the controller fills id, defaults and order.
func (r CreateIdeaRequest) Draft(createdBy string) jar.Idea {
	return jar.Idea{
		Title:        r.Title,
		Category:     r.Category,
		Description:  r.Description,
		Location:     r.Location,
		Duration:     r.Duration,
		Cost:         jar.CostLevel(r.Cost),
		CreatedBy:    createdBy,
		Type:         r.Type,
		PlannedMonth: r.PlannedMonth,
	}
}

// UpdateIdeaRequest represents a partial idea update; absent fields are left
// untouched.
type UpdateIdeaRequest struct {
	Title        *string  `json:"title"`
	Category     *string  `json:"category"`
	Description  *string  `json:"description"`
	Location     *string  `json:"location"`
	Duration     *string  `json:"duration"`
	Cost         *string  `json:"cost" enums:"Kostenlos,€,€€,€€€"`
	Completed    *bool    `json:"completed"`
	IsFavorite   *bool    `json:"isFavorite"`
	Order        *float64 `json:"order"`
	Type         *string  `json:"type"`
	PlannedMonth *string  `json:"plannedMonth"`
	ImageID      *string  `json:"imageId"`
}

// Patch converts the request into the domain patch.
func (r UpdateIdeaRequest) Patch() jar.IdeaPatch {
	p := jar.IdeaPatch{
		Title:        r.Title,
		Category:     r.Category,
		Description:  r.Description,
		Location:     r.Location,
		Duration:     r.Duration,
		Completed:    r.Completed,
		IsFavorite:   r.IsFavorite,
		Order:        r.Order,
		Type:         r.Type,
		PlannedMonth: r.PlannedMonth,
		ImageID:      r.ImageID,
	}
	if r.Cost != nil {
		cost := jar.CostLevel(*r.Cost)
		p.Cost = &cost
	}
	return p
}

// ReorderRequest moves an item within the currently visible, filtered view.
type ReorderRequest struct {
	Collection string `json:"collection" example:"Aktivitäten"`
	Status     string `json:"status" example:"all"`
	Category   string `json:"category"`
	Cost       string `json:"cost"`
	Duration   string `json:"duration"`
	FromIndex  *int   `json:"fromIndex" binding:"required" example:"2"`
	ToIndex    *int   `json:"toIndex" binding:"required" example:"0"`
}

// Filter builds the view filter the indices refer to.
func (r ReorderRequest) Filter() jar.Filter {
	status := jar.Status(r.Status)
	if status == "" {
		status = jar.StatusAll
	}
	return jar.Filter{
		Status:   status,
		Category: r.Category,
		Cost:     jar.CostLevel(r.Cost),
		Duration: r.Duration,
	}
}
