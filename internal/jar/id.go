package jar

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

// ID is the identity of an idea. An idea created locally starts out with a
// pending id until the remote store confirms it and hands back the
// authoritative one. The two states are tagged explicitly instead of being
// encoded in the string value, so a pending id can never be mistaken for a
// real one.
type ID struct {
	value   string
	pending bool
}

// NewPendingID generates a fresh client-side placeholder identity.
func NewPendingID() ID {
	return ID{value: uuid.NewString(), pending: true}
}

// ConfirmedID wraps a server-assigned identity.
func ConfirmedID(value string) ID {
	return ID{value: value}
}

func (id ID) String() string { return id.value }

// Pending reports whether the id is still awaiting remote confirmation.
func (id ID) Pending() bool { return id.pending }

func (id ID) IsZero() bool { return id.value == "" }

// Equal compares both the value and the pending tag.
func (id ID) Equal(other ID) bool {
	return id.value == other.value && id.pending == other.pending
}

type pendingIDJSON struct {
	Value   string `json:"value"`
	Pending bool   `json:"pending"`
}

// MarshalJSON renders confirmed ids as plain strings and pending ids as a
// tagged object, so the pending state survives snapshot round-trips.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.pending {
		return json.Marshal(pendingIDJSON{Value: id.value, Pending: true})
	}
	return json.Marshal(id.value)
}

func (id *ID) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return errors.New("empty id")
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID{value: s}
		return nil
	}

	var tagged pendingIDJSON
	if err := json.Unmarshal(data, &tagged); err != nil {
		return err
	}
	*id = ID{value: tagged.Value, pending: tagged.Pending}
	return nil
}
