package jar

// CostLevel is the closed price-tier enumeration, rendered as currency tiers.
type CostLevel string

const (
	CostFree   CostLevel = "Kostenlos"
	CostLow    CostLevel = "€"
	CostMedium CostLevel = "€€"
	CostHigh   CostLevel = "€€€"
)

// CostLevels lists the valid tiers in display order.
var CostLevels = []CostLevel{CostFree, CostLow, CostMedium, CostHigh}

func (c CostLevel) Valid() bool {
	for _, level := range CostLevels {
		if c == level {
			return true
		}
	}
	return false
}

// StandardCategories are presented as quick choices; any string is a valid
// category.
var StandardCategories = []string{
	"Aktiv",
	"Entspannung",
	"Essen & Trinken",
	"Kultur",
	"Reisen",
	"Sonstiges",
}

// DefaultCollections are seeded on first run when no collection exists.
var DefaultCollections = []string{"Aktivitäten", "Gerichte", "Ideen"}

const (
	DefaultCategory   = "Sonstiges"
	DefaultCollection = "Aktivitäten"

	// AICreatedBy labels ideas inserted from accepted AI suggestions.
	AICreatedBy = "Gemini AI"
)

// Idea is a single date-activity record owned by exactly one collection.
type Idea struct {
	ID           ID        `json:"id"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	Description  string    `json:"description,omitempty"`
	Location     string    `json:"location,omitempty"`
	Duration     string    `json:"duration,omitempty"`
	Cost         CostLevel `json:"cost,omitempty"`
	Completed    bool      `json:"completed"`
	IsFavorite   bool      `json:"isFavorite,omitempty"`
	CreatedBy    string    `json:"createdBy,omitempty"`
	CreatedAt    int64     `json:"createdAt"`
	Order        float64   `json:"order"`
	Type         string    `json:"type"`
	PlannedMonth string    `json:"plannedMonth,omitempty"`
	ImageID      string    `json:"imageId,omitempty"`
}

// CollectionName returns the owning collection, defaulting absent type to the
// default collection.
func (i Idea) CollectionName() string {
	if i.Type == "" {
		return DefaultCollection
	}
	return i.Type
}

// Collection is a user-defined named bucket partitioning ideas.
type Collection struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IdeaPatch carries a partial update; nil fields are left untouched.
type IdeaPatch struct {
	Title        *string    `json:"title,omitempty"`
	Category     *string    `json:"category,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Location     *string    `json:"location,omitempty"`
	Duration     *string    `json:"duration,omitempty"`
	Cost         *CostLevel `json:"cost,omitempty"`
	Completed    *bool      `json:"completed,omitempty"`
	IsFavorite   *bool      `json:"isFavorite,omitempty"`
	Order        *float64   `json:"order,omitempty"`
	Type         *string    `json:"type,omitempty"`
	PlannedMonth *string    `json:"plannedMonth,omitempty"`
	ImageID      *string    `json:"imageId,omitempty"`
}

// IsZero reports whether the patch changes nothing.
func (p IdeaPatch) IsZero() bool {
	return p.Title == nil && p.Category == nil && p.Description == nil &&
		p.Location == nil && p.Duration == nil && p.Cost == nil &&
		p.Completed == nil && p.IsFavorite == nil && p.Order == nil &&
		p.Type == nil && p.PlannedMonth == nil && p.ImageID == nil
}

// Apply writes the patch onto the idea.
func (p IdeaPatch) Apply(i *Idea) {
	if p.Title != nil {
		i.Title = *p.Title
	}
	if p.Category != nil {
		i.Category = *p.Category
	}
	if p.Description != nil {
		i.Description = *p.Description
	}
	if p.Location != nil {
		i.Location = *p.Location
	}
	if p.Duration != nil {
		i.Duration = *p.Duration
	}
	if p.Cost != nil {
		i.Cost = *p.Cost
	}
	if p.Completed != nil {
		i.Completed = *p.Completed
	}
	if p.IsFavorite != nil {
		i.IsFavorite = *p.IsFavorite
	}
	if p.Order != nil {
		i.Order = *p.Order
	}
	if p.Type != nil {
		i.Type = *p.Type
	}
	if p.PlannedMonth != nil {
		i.PlannedMonth = *p.PlannedMonth
	}
	if p.ImageID != nil {
		i.ImageID = *p.ImageID
	}
}
