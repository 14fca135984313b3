package jar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func idea(title, typ string, order float64) Idea {
	return Idea{ID: ConfirmedID(title), Title: title, Category: "Aktiv", Type: typ, Order: order}
}

func TestVisibleIdeasFiltersAndSorts(t *testing.T) {
	low := CostLow
	ideas := []Idea{
		{ID: ConfirmedID("1"), Title: "Kino", Category: "Kultur", Cost: CostMedium, Type: "Aktivitäten", Order: 2},
		{ID: ConfirmedID("2"), Title: "Spaziergang", Category: "Aktiv", Cost: CostFree, Type: "Aktivitäten", Order: 0},
		{ID: ConfirmedID("3"), Title: "Sushi", Category: "Essen & Trinken", Cost: CostHigh, Type: "Gerichte", Order: 1},
		{ID: ConfirmedID("4"), Title: "Museum", Category: "Kultur", Cost: CostLow, Type: "Aktivitäten", Order: 1, Completed: true},
	}

	all := VisibleIdeas(ideas, "Aktivitäten", Filter{Status: StatusAll})
	require.Equal(t, []string{"Spaziergang", "Museum", "Kino"}, titles(all))

	open := VisibleIdeas(ideas, "Aktivitäten", Filter{Status: StatusActive})
	require.Equal(t, []string{"Spaziergang", "Kino"}, titles(open))

	done := VisibleIdeas(ideas, "Aktivitäten", Filter{Status: StatusCompleted})
	require.Equal(t, []string{"Museum"}, titles(done))

	kultur := VisibleIdeas(ideas, "Aktivitäten", Filter{Status: StatusAll, Category: "Kultur"})
	require.Equal(t, []string{"Museum", "Kino"}, titles(kultur))

	// Filters are AND-combined.
	combined := VisibleIdeas(ideas, "Aktivitäten", Filter{Status: StatusCompleted, Category: "Kultur", Cost: low})
	require.Equal(t, []string{"Museum"}, titles(combined))

	none := VisibleIdeas(ideas, "Aktivitäten", Filter{Status: StatusActive, Cost: CostHigh})
	require.Empty(t, none)
}

func TestVisibleIdeasFavorites(t *testing.T) {
	ideas := []Idea{
		{ID: ConfirmedID("1"), Title: "Kino", Type: "Aktivitäten", IsFavorite: true, Completed: true},
		{ID: ConfirmedID("2"), Title: "Zoo", Type: "Aktivitäten"},
	}
	favs := VisibleIdeas(ideas, "Aktivitäten", Filter{Status: StatusFavorites})
	require.Equal(t, []string{"Kino"}, titles(favs))
}

func TestVisibleIdeasStableSortOnTies(t *testing.T) {
	ideas := []Idea{
		idea("erste", "Aktivitäten", 1),
		idea("zweite", "Aktivitäten", 1),
		idea("dritte", "Aktivitäten", 1),
	}
	view := VisibleIdeas(ideas, "Aktivitäten", Filter{Status: StatusAll})
	require.Equal(t, []string{"erste", "zweite", "dritte"}, titles(view))
}

func TestVisibleIdeasDefaultsAbsentType(t *testing.T) {
	ideas := []Idea{{ID: ConfirmedID("1"), Title: "Alt"}}
	view := VisibleIdeas(ideas, DefaultCollection, Filter{Status: StatusAll})
	require.Len(t, view, 1)
}

func TestPlannerSkipsFilters(t *testing.T) {
	ideas := []Idea{
		{ID: ConfirmedID("1"), Title: "Kino", Type: "Aktivitäten", Completed: true},
		{ID: ConfirmedID("2"), Title: "Zoo", Type: "Aktivitäten"},
	}
	view := VisibleIdeas(ideas, "Aktivitäten", Filter{Status: StatusActive, Mode: ModePlanner})
	require.Len(t, view, 2)
}

func TestPlannerBuckets(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	ideas := []Idea{
		{ID: ConfirmedID("1"), Title: "Zoo", Type: "Aktivitäten"},
		{ID: ConfirmedID("2"), Title: "Kino", Type: "Aktivitäten", PlannedMonth: "2026-03"},
		{ID: ConfirmedID("3"), Title: "Reise", Type: "Aktivitäten", PlannedMonth: "2027-02"},
		{ID: ConfirmedID("4"), Title: "Erledigt", Type: "Aktivitäten", Completed: true},
		{ID: ConfirmedID("5"), Title: "Sushi", Type: "Gerichte", PlannedMonth: "2026-03"},
	}

	view := Planner(ideas, "Aktivitäten", now)

	// Unplanned: no month and not completed.
	require.Equal(t, []string{"Zoo"}, titles(view.Unplanned))

	require.Len(t, view.Months, 12)
	require.Equal(t, "2026-03", view.Months[0].Month)
	require.Equal(t, []string{"Kino"}, titles(view.Months[0].Ideas))
	require.Equal(t, "2027-02", view.Months[11].Month)
	require.Equal(t, []string{"Reise"}, titles(view.Months[11].Ideas))
}

func TestCategoryOptions(t *testing.T) {
	ideas := []Idea{
		{ID: ConfirmedID("1"), Category: "Brettspiele", Type: "Aktivitäten"},
		{ID: ConfirmedID("2"), Category: "Kultur", Type: "Gerichte"}, // other collection
	}
	opts := CategoryOptions(ideas, "Aktivitäten", []string{"Draußen"})

	require.Contains(t, opts, "Brettspiele")
	require.Contains(t, opts, "Draußen")
	for _, std := range StandardCategories {
		require.Contains(t, opts, std)
	}
	// Sorted lexicographically.
	for i := 1; i < len(opts); i++ {
		require.LessOrEqual(t, opts[i-1], opts[i])
	}
}

func TestDurationOptions(t *testing.T) {
	ideas := []Idea{
		{ID: ConfirmedID("1"), Duration: "2 Std", Type: "Aktivitäten"},
		{ID: ConfirmedID("2"), Duration: "1-2 Stunden", Type: "Aktivitäten"},
		{ID: ConfirmedID("3"), Duration: "ganztags", Type: "Gerichte"},
	}
	require.Equal(t, []string{"1-2 Stunden", "2 Std"}, DurationOptions(ideas, "Aktivitäten"))
}
