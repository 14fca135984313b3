package jar

import "context"

// Remote abstracts the hosted document store. The Mongo repositories in
// internal/features implement it; tests use an in-memory fake.
type Remote interface {
	ListIdeas(ctx context.Context) ([]Idea, error)
	CreateIdea(ctx context.Context, idea Idea) (Idea, error)
	UpdateIdea(ctx context.Context, id string, patch IdeaPatch) error
	DeleteIdea(ctx context.Context, id string) error

	ListCollections(ctx context.Context) ([]Collection, error)
	CreateCollection(ctx context.Context, name string) (Collection, error)
	RenameCollection(ctx context.Context, id, newName string) error
	DeleteCollection(ctx context.Context, id string) error
}

// Snapshot is the local fallback store: whole-value reads and writes of the
// full idea list, no partial updates.
type Snapshot interface {
	SaveIdeas(ideas []Idea) error
	LoadIdeas() ([]Idea, error)
}

// EventAction describes what happened to a record.
type EventAction string

const (
	ActionCreated EventAction = "created"
	ActionUpdated EventAction = "updated"
	ActionDeleted EventAction = "deleted"
)

// Event channels mirror the two record kinds.
const (
	ChannelIdeas       = "ideas"
	ChannelCollections = "collections"
)

// Event is a realtime change notification, flowing out to connected sessions
// and in from the remote store's change subscription.
type Event struct {
	Channel    string      `json:"channel"`
	Action     EventAction `json:"action"`
	ID         string      `json:"id"`
	Idea       *Idea       `json:"idea,omitempty"`
	Collection *Collection `json:"collection,omitempty"`
}

// Notifier receives change events for fan-out to other sessions.
type Notifier interface {
	Publish(Event)
}

type noopNotifier struct{}

func (noopNotifier) Publish(Event) {}
