package jar

import (
	"sort"
	"time"
)

// Status filters ideas by completion/favorite state.
type Status string

const (
	StatusAll       Status = "all"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusFavorites Status = "favorites"
)

// ViewMode selects between the flat list and the monthly planner.
type ViewMode string

const (
	ModeList    ViewMode = "list"
	ModePlanner ViewMode = "planner"
)

// Filter holds the independent, AND-combined list filters. Zero values (and
// "all") mean no filtering on that dimension.
type Filter struct {
	Status   Status    `json:"status,omitempty"`
	Category string    `json:"category,omitempty"`
	Cost     CostLevel `json:"cost,omitempty"`
	Duration string    `json:"duration,omitempty"`
	Mode     ViewMode  `json:"mode,omitempty"`
}

// CollectionIdeas selects the ideas owned by the active collection.
func CollectionIdeas(ideas []Idea, active string) []Idea {
	var out []Idea
	for _, idea := range ideas {
		if idea.CollectionName() == active {
			out = append(out, idea)
		}
	}
	return out
}

// VisibleIdeas computes the filtered, sorted list view. Planner mode skips
// all filtering and shows the full active-collection set. The sort by order
// is explicitly stable: ties keep their original array position.
func VisibleIdeas(ideas []Idea, active string, f Filter) []Idea {
	scoped := CollectionIdeas(ideas, active)

	var out []Idea
	for _, idea := range scoped {
		if f.Mode != ModePlanner && !matches(idea, f) {
			continue
		}
		out = append(out, idea)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

func matches(idea Idea, f Filter) bool {
	switch f.Status {
	case StatusActive:
		if idea.Completed {
			return false
		}
	case StatusCompleted:
		if !idea.Completed {
			return false
		}
	case StatusFavorites:
		if !idea.IsFavorite {
			return false
		}
	}
	if f.Category != "" && f.Category != "all" && idea.Category != f.Category {
		return false
	}
	if f.Cost != "" && f.Cost != "all" && idea.Cost != f.Cost {
		return false
	}
	if f.Duration != "" && f.Duration != "all" && idea.Duration != f.Duration {
		return false
	}
	return true
}

// CategoryOptions returns the union of the standard categories, any
// user-defined extras, and every category observed in the active collection,
// sorted lexicographically.
func CategoryOptions(ideas []Idea, active string, extra []string) []string {
	set := make(map[string]struct{})
	for _, cat := range StandardCategories {
		set[cat] = struct{}{}
	}
	for _, cat := range extra {
		if cat != "" {
			set[cat] = struct{}{}
		}
	}
	for _, idea := range CollectionIdeas(ideas, active) {
		if idea.Category != "" {
			set[idea.Category] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// DurationOptions returns every distinct duration observed in the active
// collection, sorted.
func DurationOptions(ideas []Idea, active string) []string {
	set := make(map[string]struct{})
	for _, idea := range CollectionIdeas(ideas, active) {
		if idea.Duration != "" {
			set[idea.Duration] = struct{}{}
		}
	}
	return sortedKeys(set)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// PlannerBucket is one monthly column of the planner view.
type PlannerBucket struct {
	Month string `json:"month"` // "YYYY-MM"
	Ideas []Idea `json:"ideas"`
}

// PlannerView partitions the active collection into an unplanned column
// (open ideas without a planned month) and one bucket per month for the next
// twelve months starting from the current one.
type PlannerView struct {
	Unplanned []Idea          `json:"unplanned"`
	Months    []PlannerBucket `json:"months"`
}

// Planner builds the planner view relative to now.
func Planner(ideas []Idea, active string, now time.Time) PlannerView {
	scoped := CollectionIdeas(ideas, active)

	view := PlannerView{Unplanned: []Idea{}}
	for _, idea := range scoped {
		if idea.PlannedMonth == "" && !idea.Completed {
			view.Unplanned = append(view.Unplanned, idea)
		}
	}

	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := 0; i < 12; i++ {
		month := start.AddDate(0, i, 0).Format("2006-01")
		bucket := PlannerBucket{Month: month, Ideas: []Idea{}}
		for _, idea := range scoped {
			if idea.PlannedMonth == month {
				bucket.Ideas = append(bucket.Ideas, idea)
			}
		}
		view.Months = append(view.Months, bucket)
	}
	return view
}
