package jar

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeRemote is an in-memory stand-in for the Mongo-backed store.
type fakeRemote struct {
	ideas       []Idea
	collections []Collection
	nextID      int
	failing     bool
	failUpdates bool
	createCalls int
	updateCalls int
	deleteCalls int
}

var errRemoteDown = errors.New("remote unreachable")

func (f *fakeRemote) ListIdeas(ctx context.Context) ([]Idea, error) {
	if f.failing {
		return nil, errRemoteDown
	}
	out := make([]Idea, len(f.ideas))
	copy(out, f.ideas)
	return out, nil
}

func (f *fakeRemote) CreateIdea(ctx context.Context, idea Idea) (Idea, error) {
	f.createCalls++
	if f.failing {
		return Idea{}, errRemoteDown
	}
	f.nextID++
	idea.ID = ConfirmedID(fmt.Sprintf("srv-%d", f.nextID))
	f.ideas = append([]Idea{idea}, f.ideas...)
	return idea, nil
}

func (f *fakeRemote) UpdateIdea(ctx context.Context, id string, patch IdeaPatch) error {
	f.updateCalls++
	if f.failing || f.failUpdates {
		return errRemoteDown
	}
	for i := range f.ideas {
		if f.ideas[i].ID.String() == id {
			patch.Apply(&f.ideas[i])
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeRemote) DeleteIdea(ctx context.Context, id string) error {
	f.deleteCalls++
	if f.failing {
		return errRemoteDown
	}
	for i := range f.ideas {
		if f.ideas[i].ID.String() == id {
			f.ideas = append(f.ideas[:i], f.ideas[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeRemote) ListCollections(ctx context.Context) ([]Collection, error) {
	if f.failing {
		return nil, errRemoteDown
	}
	out := make([]Collection, len(f.collections))
	copy(out, f.collections)
	return out, nil
}

func (f *fakeRemote) CreateCollection(ctx context.Context, name string) (Collection, error) {
	if f.failing {
		return Collection{}, errRemoteDown
	}
	f.nextID++
	col := Collection{ID: fmt.Sprintf("col-%d", f.nextID), Name: name}
	f.collections = append(f.collections, col)
	return col, nil
}

func (f *fakeRemote) RenameCollection(ctx context.Context, id, newName string) error {
	if f.failing {
		return errRemoteDown
	}
	for i := range f.collections {
		if f.collections[i].ID == id {
			f.collections[i].Name = newName
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeRemote) DeleteCollection(ctx context.Context, id string) error {
	if f.failing {
		return errRemoteDown
	}
	for i := range f.collections {
		if f.collections[i].ID == id {
			f.collections = append(f.collections[:i], f.collections[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

type fakeSnapshot struct {
	saved []Idea
	saves int
}

func (f *fakeSnapshot) SaveIdeas(ideas []Idea) error {
	f.saved = ideas
	f.saves++
	return nil
}

func (f *fakeSnapshot) LoadIdeas() ([]Idea, error) {
	return f.saved, nil
}

func newTestController(t *testing.T) (*Controller, *fakeRemote, *fakeSnapshot) {
	t.Helper()
	remote := &fakeRemote{}
	snap := &fakeSnapshot{}
	c := New(remote, snap, nil)
	require.NoError(t, c.Load(context.Background()))
	return c, remote, snap
}

func TestLoadSeedsDefaultCollections(t *testing.T) {
	c, remote, _ := newTestController(t)

	cols := c.Collections()
	require.Len(t, cols, 3)
	require.Equal(t, "Aktivitäten", cols[0].Name)
	require.Equal(t, "Gerichte", cols[1].Name)
	require.Equal(t, "Ideen", cols[2].Name)
	require.Len(t, remote.collections, 3)
	require.False(t, c.Offline())
}

func TestLoadFailureRestoresSnapshot(t *testing.T) {
	remote := &fakeRemote{failing: true}
	snap := &fakeSnapshot{saved: []Idea{{ID: ConfirmedID("a"), Title: "Picknick"}}}
	c := New(remote, snap, nil)

	err := c.Load(context.Background())
	require.Error(t, err)
	require.True(t, c.Offline())

	ideas := c.Ideas()
	require.Len(t, ideas, 1)
	require.Equal(t, "Picknick", ideas[0].Title)

	cols := c.Collections()
	require.Len(t, cols, 3)
	require.Equal(t, "local-0", cols[0].ID)
}

func TestCreateConfirmsPendingID(t *testing.T) {
	c, remote, _ := newTestController(t)

	created := c.CreateIdea(context.Background(), Idea{Title: "Kino"})
	require.False(t, created.ID.Pending())
	require.Equal(t, "srv-4", created.ID.String()) // 3 seeded collections consumed ids 1-3

	ideas := c.Ideas()
	require.Len(t, ideas, 1)
	require.True(t, ideas[0].ID.Equal(created.ID))
	require.Equal(t, "Sonstiges", ideas[0].Category)
	require.Equal(t, "Aktivitäten", ideas[0].Type)
	require.Len(t, remote.ideas, 1)
}

func TestNoOptimisticDriftWhileRemoteHealthy(t *testing.T) {
	c, remote, _ := newTestController(t)
	ctx := context.Background()

	a := c.CreateIdea(ctx, Idea{Title: "Wandern", Type: "Aktivitäten"})
	b := c.CreateIdea(ctx, Idea{Title: "Sushi", Type: "Gerichte"})

	done := true
	_, err := c.UpdateIdea(ctx, a.ID.String(), IdeaPatch{Completed: &done})
	require.NoError(t, err)
	require.NoError(t, c.DeleteIdea(ctx, b.ID.String()))

	// In-memory state must equal the state the remote reached from the same
	// sequence.
	require.Equal(t, remote.ideas, c.Ideas())
	require.False(t, c.Offline())
}

func TestOfflineModeIsSticky(t *testing.T) {
	c, remote, snap := newTestController(t)
	ctx := context.Background()

	created := c.CreateIdea(ctx, Idea{Title: "Museum"})

	remote.failing = true
	done := true
	_, err := c.UpdateIdea(ctx, created.ID.String(), IdeaPatch{Completed: &done})
	require.NoError(t, err) // the mutation itself succeeds locally
	require.True(t, c.Offline())
	require.NotZero(t, snap.saves)

	// Remote recovers, but the session stays offline: no further remote calls.
	remote.failing = false
	creates := remote.createCalls
	updates := remote.updateCalls

	c.CreateIdea(ctx, Idea{Title: "Konzert"})
	fav := true
	_, err = c.UpdateIdea(ctx, created.ID.String(), IdeaPatch{IsFavorite: &fav})
	require.NoError(t, err)

	require.Equal(t, creates, remote.createCalls)
	require.Equal(t, updates, remote.updateCalls)
	require.True(t, c.Offline())

	// Offline-created ideas keep their pending ids in the snapshot.
	var found bool
	for _, idea := range snap.saved {
		if idea.Title == "Konzert" {
			found = true
			require.True(t, idea.ID.Pending())
		}
	}
	require.True(t, found)
}

func TestDeletePersistsSnapshotUnconditionally(t *testing.T) {
	c, _, snap := newTestController(t)
	ctx := context.Background()

	created := c.CreateIdea(ctx, Idea{Title: "Zoo"})
	require.Zero(t, snap.saves) // online create does not touch the snapshot

	require.NoError(t, c.DeleteIdea(ctx, created.ID.String()))
	require.Equal(t, 1, snap.saves)
	require.False(t, c.Offline())
	require.Empty(t, snap.saved)
}

func TestDeleteIsNotRolledBackOnRemoteFailure(t *testing.T) {
	c, remote, _ := newTestController(t)
	ctx := context.Background()

	created := c.CreateIdea(ctx, Idea{Title: "Theater"})
	remote.failing = true

	require.NoError(t, c.DeleteIdea(ctx, created.ID.String()))
	require.True(t, c.Offline())
	require.Empty(t, c.Ideas())
}

func seedOrdered(t *testing.T, c *Controller) {
	t.Helper()
	ctx := context.Background()
	a := c.CreateIdea(ctx, Idea{Title: "A", Type: "Aktivitäten"})
	b := c.CreateIdea(ctx, Idea{Title: "B", Type: "Aktivitäten"})
	d := c.CreateIdea(ctx, Idea{Title: "C", Type: "Aktivitäten"})

	// Pin orders to [0,1,2] for the scenario.
	for i, idea := range []Idea{a, b, d} {
		o := float64(i)
		_, err := c.UpdateIdea(ctx, idea.ID.String(), IdeaPatch{Order: &o})
		require.NoError(t, err)
	}
}

func TestReorderMovesItemAndShiftsOthers(t *testing.T) {
	c, _, _ := newTestController(t)
	ctx := context.Background()

	seedOrdered(t, c)
	other := c.CreateIdea(ctx, Idea{Title: "Ramen", Type: "Gerichte", Order: 7})

	view, err := c.Reorder(ctx, "Aktivitäten", Filter{Status: StatusAll}, 2, 0)
	require.NoError(t, err)

	require.Equal(t, []string{"C", "A", "B"}, titles(view))
	for i, idea := range view {
		require.Equal(t, float64(i), idea.Order)
	}

	// The idea in the other collection keeps its prior order untouched.
	for _, idea := range c.Ideas() {
		if idea.ID.Equal(other.ID) {
			require.Equal(t, 7.0, idea.Order)
		}
	}
}

func TestReorderSameIndexIsNoop(t *testing.T) {
	c, remote, _ := newTestController(t)
	seedOrdered(t, c)

	updates := remote.updateCalls
	view, err := c.Reorder(context.Background(), "Aktivitäten", Filter{Status: StatusAll}, 1, 1)
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "C"}, titles(view))
	require.Equal(t, updates, remote.updateCalls)
}

func TestReorderOutOfRange(t *testing.T) {
	c, _, _ := newTestController(t)
	seedOrdered(t, c)

	_, err := c.Reorder(context.Background(), "Aktivitäten", Filter{Status: StatusAll}, 0, 9)
	require.ErrorIs(t, err, ErrBadIndex)
}

func TestReorderRemoteFailureDoesNotFlipOffline(t *testing.T) {
	c, remote, _ := newTestController(t)
	seedOrdered(t, c)

	remote.failUpdates = true
	view, err := c.Reorder(context.Background(), "Aktivitäten", Filter{Status: StatusAll}, 0, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"B", "C", "A"}, titles(view))
	require.False(t, c.Offline()) // best-effort: logged, not surfaced
}

func TestRenameCollectionCascades(t *testing.T) {
	c, remote, _ := newTestController(t)
	ctx := context.Background()

	a := c.CreateIdea(ctx, Idea{Title: "Wandern", Type: "Aktivitäten"})
	c.CreateIdea(ctx, Idea{Title: "Sushi", Type: "Gerichte"})

	var target string
	for _, col := range c.Collections() {
		if col.Name == "Aktivitäten" {
			target = col.ID
		}
	}
	require.NoError(t, c.RenameCollection(ctx, target, "Abenteuer"))

	for _, idea := range c.Ideas() {
		switch idea.Title {
		case "Wandern":
			require.Equal(t, "Abenteuer", idea.Type)
			require.True(t, idea.ID.Equal(a.ID)) // identity untouched
		case "Sushi":
			require.Equal(t, "Gerichte", idea.Type)
		}
	}
	for _, idea := range remote.ideas {
		if idea.Title == "Wandern" {
			require.Equal(t, "Abenteuer", idea.Type)
		}
	}
}

func TestDeleteCollectionCascades(t *testing.T) {
	c, remote, _ := newTestController(t)
	ctx := context.Background()

	c.CreateIdea(ctx, Idea{Title: "Wandern", Type: "Aktivitäten"})
	c.CreateIdea(ctx, Idea{Title: "Klettern", Type: "Aktivitäten"})
	c.CreateIdea(ctx, Idea{Title: "Sushi", Type: "Gerichte"})

	var target string
	for _, col := range c.Collections() {
		if col.Name == "Aktivitäten" {
			target = col.ID
		}
	}
	require.NoError(t, c.DeleteCollection(ctx, target))

	require.Equal(t, []string{"Sushi"}, titles(c.Ideas()))
	require.Len(t, c.Collections(), 2)
	require.Len(t, remote.ideas, 1)
	require.Len(t, remote.collections, 2)
}

func TestDeleteLastCollectionRejected(t *testing.T) {
	c, _, _ := newTestController(t)
	ctx := context.Background()

	cols := c.Collections()
	require.NoError(t, c.DeleteCollection(ctx, cols[0].ID))
	require.NoError(t, c.DeleteCollection(ctx, cols[1].ID))
	require.ErrorIs(t, c.DeleteCollection(ctx, cols[2].ID), ErrLastCollection)
}

func TestDeleteCollectionPartialFailure(t *testing.T) {
	c, remote, _ := newTestController(t)
	ctx := context.Background()

	c.CreateIdea(ctx, Idea{Title: "Wandern", Type: "Aktivitäten"})

	var target string
	for _, col := range c.Collections() {
		if col.Name == "Aktivitäten" {
			target = col.ID
		}
	}

	remote.failing = true
	err := c.DeleteCollection(ctx, target)

	var cascade *CascadeError
	require.ErrorAs(t, err, &cascade)
	require.Equal(t, "delete", cascade.Op)
	require.True(t, c.Offline())
	// In-memory state is fully updated regardless of remote outcome.
	require.Empty(t, c.Ideas())
	require.Len(t, c.Collections(), 2)
}

func TestShuffle(t *testing.T) {
	c, _, _ := newTestController(t)
	ctx := context.Background()

	a := c.CreateIdea(ctx, Idea{Title: "Wandern", Type: "Aktivitäten"})
	b := c.CreateIdea(ctx, Idea{Title: "Kino", Type: "Aktivitäten"})
	done := true
	_, err := c.UpdateIdea(ctx, b.ID.String(), IdeaPatch{Completed: &done})
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		pick, err := c.Shuffle("Aktivitäten")
		require.NoError(t, err)
		require.True(t, pick.ID.Equal(a.ID)) // only open idea
	}

	_, err = c.Shuffle("Gerichte")
	require.ErrorIs(t, err, ErrNothingToPick)
	require.Len(t, c.Ideas(), 2) // no state change
}

func TestApplyRemoteEventLastWriteWins(t *testing.T) {
	c, _, _ := newTestController(t)
	ctx := context.Background()

	created := c.CreateIdea(ctx, Idea{Title: "Picknick"})

	remoteCopy := created
	remoteCopy.Title = "Picknick im Park"
	c.ApplyRemoteEvent(Event{
		Channel: ChannelIdeas,
		Action:  ActionUpdated,
		ID:      created.ID.String(),
		Idea:    &remoteCopy,
	})

	ideas := c.Ideas()
	require.Len(t, ideas, 1)
	require.Equal(t, "Picknick im Park", ideas[0].Title)

	c.ApplyRemoteEvent(Event{Channel: ChannelIdeas, Action: ActionDeleted, ID: created.ID.String()})
	require.Empty(t, c.Ideas())
}

func titles(ideas []Idea) []string {
	out := make([]string, len(ideas))
	for i, idea := range ideas {
		out[i] = idea.Title
	}
	return out
}
