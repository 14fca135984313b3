package jar

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

var (
	ErrIdeaNotFound       = errors.New("idea not found")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrLastCollection     = errors.New("cannot delete the last collection")
	ErrBadIndex           = errors.New("reorder index out of range")
)

// CascadeError reports a collection rename/delete that only partially reached
// the remote store. The in-memory state is already consistent; the two remote
// steps carry no transactional guarantee.
type CascadeError struct {
	Op         string // "rename" or "delete"
	MetaErr    error  // failure of the collection metadata step
	FailedIDs  []string
	FirstError error
}

func (e *CascadeError) Error() string {
	if e.MetaErr != nil {
		return fmt.Sprintf("collection %s: metadata step failed: %v", e.Op, e.MetaErr)
	}
	return fmt.Sprintf("collection %s: %d item(s) failed: %v", e.Op, len(e.FailedIDs), e.FirstError)
}

// Controller owns the in-memory authoritative copy of the idea and collection
// sets. Every mutation is applied in memory first, then pushed to the remote
// store; any remote failure flips the sticky offline flag and routes the
// write (and all later writes) to the local snapshot instead. Only a restart
// with a successful Load clears the flag.
//
// Mutations are serialized under one mutex, matching the single-threaded
// event dispatch of the original frontend.
type Controller struct {
	mu          sync.Mutex
	remote      Remote
	snapshot    Snapshot
	notify      Notifier
	offline     bool
	ideas       []Idea
	collections []Collection
}

// New creates a controller. notify may be nil.
func New(remote Remote, snapshot Snapshot, notify Notifier) *Controller {
	if notify == nil {
		notify = noopNotifier{}
	}
	return &Controller{remote: remote, snapshot: snapshot, notify: notify}
}

// Load performs the initial load: collections (seeding the defaults on first
// run), then ideas. On any remote failure it enters offline mode and restores
// the last local snapshot, with the default collections under local ids.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cols, err := c.remote.ListCollections(ctx)
	if err == nil && len(cols) == 0 {
		for _, name := range DefaultCollections {
			if _, err = c.remote.CreateCollection(ctx, name); err != nil {
				break
			}
		}
		if err == nil {
			cols, err = c.remote.ListCollections(ctx)
		}
	}

	var ideas []Idea
	if err == nil {
		ideas, err = c.remote.ListIdeas(ctx)
	}

	if err != nil {
		log.Printf("jar: initial load failed, entering offline mode: %v", err)
		c.offline = true
		local, loadErr := c.snapshot.LoadIdeas()
		if loadErr != nil {
			log.Printf("jar: snapshot restore failed: %v", loadErr)
			local = []Idea{}
		}
		c.ideas = local
		c.collections = localDefaultCollections()
		return err
	}

	c.offline = false
	c.ideas = ideas
	c.collections = cols
	return nil
}

func localDefaultCollections() []Collection {
	cols := make([]Collection, len(DefaultCollections))
	for i, name := range DefaultCollections {
		cols[i] = Collection{ID: fmt.Sprintf("local-%d", i), Name: name}
	}
	return cols
}

// Offline reports whether the session has degraded to local-only persistence.
func (c *Controller) Offline() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offline
}

// Ideas returns a copy of the in-memory idea set.
func (c *Controller) Ideas() []Idea {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Idea, len(c.ideas))
	copy(out, c.ideas)
	return out
}

// Collections returns a copy of the in-memory collection list.
func (c *Controller) Collections() []Collection {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Collection, len(c.collections))
	copy(out, c.collections)
	return out
}

// CreateIdea inserts the draft at the head of the in-memory list under a
// pending id, then attempts the remote create. On success the pending record
// is replaced by the server-returned one; on failure the controller goes
// offline and persists the snapshot. A zero Order is assigned max+1.
func (c *Controller) CreateIdea(ctx context.Context, draft Idea) Idea {
	c.mu.Lock()
	defer c.mu.Unlock()

	draft.ID = NewPendingID()
	if draft.Category == "" {
		draft.Category = DefaultCategory
	}
	if draft.Type == "" {
		draft.Type = DefaultCollection
	}
	if draft.CreatedAt == 0 {
		draft.CreatedAt = time.Now().UnixMilli()
	}
	if draft.Order == 0 {
		draft.Order = c.maxOrderLocked() + 1
	}

	c.ideas = append([]Idea{draft}, c.ideas...)

	if c.offline {
		c.persistLocked()
		c.publishIdea(ActionCreated, draft)
		return draft
	}

	saved, err := c.remote.CreateIdea(ctx, draft)
	if err != nil {
		c.goOfflineLocked("create idea", err)
		c.publishIdea(ActionCreated, draft)
		return draft
	}

	// Reconcile: swap the pending record for the confirmed one.
	for i := range c.ideas {
		if c.ideas[i].ID.Equal(draft.ID) {
			c.ideas[i] = saved
			break
		}
	}
	c.publishIdea(ActionCreated, saved)
	return saved
}

// UpdateIdea applies the patch to the matching in-memory record, then pushes
// only the changed fields to the remote store.
func (c *Controller) UpdateIdea(ctx context.Context, id string, patch IdeaPatch) (Idea, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOfLocked(id)
	if idx < 0 {
		return Idea{}, ErrIdeaNotFound
	}

	patch.Apply(&c.ideas[idx])
	updated := c.ideas[idx]

	if c.offline {
		c.persistLocked()
	} else if err := c.remote.UpdateIdea(ctx, id, patch); err != nil {
		c.goOfflineLocked("update idea", err)
	}

	c.publishIdea(ActionUpdated, updated)
	return updated, nil
}

// DeleteIdea removes the record immediately. The removal is never rolled
// back; a remote failure only flips offline mode. The snapshot is written
// unconditionally after a delete.
func (c *Controller) DeleteIdea(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOfLocked(id)
	if idx < 0 {
		return ErrIdeaNotFound
	}

	c.ideas = append(c.ideas[:idx], c.ideas[idx+1:]...)

	if !c.offline {
		if err := c.remote.DeleteIdea(ctx, id); err != nil {
			c.goOfflineLocked("delete idea", err)
		}
	}
	c.persistLocked()

	c.notify.Publish(Event{Channel: ChannelIdeas, Action: ActionDeleted, ID: id})
	return nil
}

// Reorder moves the item at filtered-view index from to index to and
// re-derives the order field for every visible item. Ideas outside the
// current view keep their prior order. Remote persistence is best-effort and
// per-item: failures are logged and do not flip offline mode.
func (c *Controller) Reorder(ctx context.Context, active string, filter Filter, from, to int) ([]Idea, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := VisibleIdeas(c.ideas, active, filter)
	if from < 0 || from >= len(view) || to < 0 || to >= len(view) {
		return nil, ErrBadIndex
	}
	if from == to {
		return view, nil
	}

	moved := view[from]
	view = append(view[:from], view[from+1:]...)
	view = append(view[:to], append([]Idea{moved}, view[to:]...)...)

	changed := make(map[string]float64)
	for newIndex, item := range view {
		order := float64(newIndex)
		for i := range c.ideas {
			if c.ideas[i].ID.Equal(item.ID) && c.ideas[i].Order != order {
				c.ideas[i].Order = order
				changed[item.ID.String()] = order
			}
		}
		view[newIndex].Order = order
	}

	if c.offline {
		c.persistLocked()
	} else {
		for id, order := range changed {
			o := order
			if err := c.remote.UpdateIdea(ctx, id, IdeaPatch{Order: &o}); err != nil {
				log.Printf("jar: reorder persist for %s failed: %v", id, err)
			}
		}
	}

	c.publishIdea(ActionUpdated, view[to])
	return view, nil
}

// AddCollection appends a new collection optimistically and attempts the
// remote create, replacing the local record with the confirmed one.
func (c *Controller) AddCollection(ctx context.Context, name string) (Collection, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, col := range c.collections {
		if col.Name == name {
			return Collection{}, fmt.Errorf("collection %q already exists", name)
		}
	}

	col := Collection{ID: fmt.Sprintf("local-%d", time.Now().UnixNano()), Name: name}
	c.collections = append(c.collections, col)

	if !c.offline {
		saved, err := c.remote.CreateCollection(ctx, name)
		if err != nil {
			c.goOfflineLocked("create collection", err)
		} else {
			c.collections[len(c.collections)-1] = saved
			col = saved
		}
	}

	c.notify.Publish(Event{Channel: ChannelCollections, Action: ActionCreated, ID: col.ID, Collection: &col})
	return col, nil
}

// RenameCollection renames the collection and rewrites the type field of
// every idea in it. The remote side is two sequenced steps (metadata, then
// per-item updates) with no atomicity; a partial failure is reported as a
// *CascadeError and flips offline mode, while the in-memory state stays
// fully renamed.
func (c *Controller) RenameCollection(ctx context.Context, id, newName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	col := c.findCollectionLocked(id)
	if col == nil {
		return ErrCollectionNotFound
	}
	oldName := col.Name
	if newName == oldName {
		return nil
	}

	col.Name = newName
	var itemIDs []string
	for i := range c.ideas {
		if c.ideas[i].CollectionName() == oldName {
			c.ideas[i].Type = newName
			itemIDs = append(itemIDs, c.ideas[i].ID.String())
		}
	}

	renamed := *col
	c.notify.Publish(Event{Channel: ChannelCollections, Action: ActionUpdated, ID: id, Collection: &renamed})

	if c.offline {
		c.persistLocked()
		return nil
	}

	if err := c.remote.RenameCollection(ctx, id, newName); err != nil {
		c.goOfflineLocked("rename collection", err)
		return &CascadeError{Op: "rename", MetaErr: err}
	}

	cascade := &CascadeError{Op: "rename"}
	typePatch := IdeaPatch{Type: &newName}
	for _, itemID := range itemIDs {
		if err := c.remote.UpdateIdea(ctx, itemID, typePatch); err != nil {
			cascade.FailedIDs = append(cascade.FailedIDs, itemID)
			if cascade.FirstError == nil {
				cascade.FirstError = err
			}
		}
	}
	if len(cascade.FailedIDs) > 0 {
		c.goOfflineLocked("rename cascade", cascade.FirstError)
		return cascade
	}
	return nil
}

// DeleteCollection removes every idea in the collection, then the collection
// record, mirroring that order on the remote store. Deleting the last
// collection is rejected.
func (c *Controller) DeleteCollection(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.collections) <= 1 {
		return ErrLastCollection
	}
	col := c.findCollectionLocked(id)
	if col == nil {
		return ErrCollectionNotFound
	}
	name := col.Name

	var doomed []string
	kept := c.ideas[:0]
	for _, idea := range c.ideas {
		if idea.CollectionName() == name {
			doomed = append(doomed, idea.ID.String())
		} else {
			kept = append(kept, idea)
		}
	}
	c.ideas = kept

	for i, candidate := range c.collections {
		if candidate.ID == id {
			c.collections = append(c.collections[:i], c.collections[i+1:]...)
			break
		}
	}

	c.notify.Publish(Event{Channel: ChannelCollections, Action: ActionDeleted, ID: id})

	if c.offline {
		c.persistLocked()
		return nil
	}

	cascade := &CascadeError{Op: "delete"}
	for _, itemID := range doomed {
		if err := c.remote.DeleteIdea(ctx, itemID); err != nil {
			cascade.FailedIDs = append(cascade.FailedIDs, itemID)
			if cascade.FirstError == nil {
				cascade.FirstError = err
			}
		}
	}
	if len(cascade.FailedIDs) > 0 {
		c.goOfflineLocked("delete cascade", cascade.FirstError)
		c.persistLocked()
		return cascade
	}

	if err := c.remote.DeleteCollection(ctx, id); err != nil {
		c.goOfflineLocked("delete collection", err)
		c.persistLocked()
		return &CascadeError{Op: "delete", MetaErr: err}
	}

	c.persistLocked()
	return nil
}

// ApplyRemoteEvent folds an inbound change notification from another session
// into the in-memory state. Policy is naive last-write-wins: an update
// overwrites the local record with the same id even if a local optimistic
// edit is still unconfirmed, matching the original behavior.
func (c *Controller) ApplyRemoteEvent(e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch e.Channel {
	case ChannelIdeas:
		c.applyIdeaEventLocked(e)
	case ChannelCollections:
		c.applyCollectionEventLocked(e)
	}
}

func (c *Controller) applyIdeaEventLocked(e Event) {
	switch e.Action {
	case ActionCreated, ActionUpdated:
		if e.Idea == nil {
			return
		}
		for i := range c.ideas {
			if c.ideas[i].ID.String() == e.ID {
				c.ideas[i] = *e.Idea
				return
			}
		}
		c.ideas = append([]Idea{*e.Idea}, c.ideas...)
	case ActionDeleted:
		if idx := c.indexOfLocked(e.ID); idx >= 0 {
			c.ideas = append(c.ideas[:idx], c.ideas[idx+1:]...)
		}
	}
}

func (c *Controller) applyCollectionEventLocked(e Event) {
	switch e.Action {
	case ActionCreated, ActionUpdated:
		if e.Collection == nil {
			return
		}
		for i := range c.collections {
			if c.collections[i].ID == e.ID {
				c.collections[i] = *e.Collection
				return
			}
		}
		c.collections = append(c.collections, *e.Collection)
	case ActionDeleted:
		for i, col := range c.collections {
			if col.ID == e.ID {
				c.collections = append(c.collections[:i], c.collections[i+1:]...)
				return
			}
		}
	}
}

// --- internals, all require c.mu held ---

func (c *Controller) indexOfLocked(id string) int {
	for i := range c.ideas {
		if c.ideas[i].ID.String() == id {
			return i
		}
	}
	return -1
}

func (c *Controller) findCollectionLocked(id string) *Collection {
	for i := range c.collections {
		if c.collections[i].ID == id {
			return &c.collections[i]
		}
	}
	return nil
}

func (c *Controller) maxOrderLocked() float64 {
	max := 0.0
	for _, idea := range c.ideas {
		if idea.Order > max {
			max = idea.Order
		}
	}
	return max
}

func (c *Controller) goOfflineLocked(op string, err error) {
	log.Printf("jar: %s failed, entering offline mode: %v", op, err)
	c.offline = true
	c.persistLocked()
}

func (c *Controller) persistLocked() {
	snapshot := make([]Idea, len(c.ideas))
	copy(snapshot, c.ideas)
	if err := c.snapshot.SaveIdeas(snapshot); err != nil {
		log.Printf("jar: snapshot save failed: %v", err)
	}
}

func (c *Controller) publishIdea(action EventAction, idea Idea) {
	i := idea
	c.notify.Publish(Event{Channel: ChannelIdeas, Action: action, ID: idea.ID.String(), Idea: &i})
}
