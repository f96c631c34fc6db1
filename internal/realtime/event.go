package realtime

import (
	"encoding/json"

	"github.com/google/uuid"
)

// EventType tags a change event with the mutation kind.
type EventType string

const (
	EventInsert EventType = "insert"
	EventUpdate EventType = "update"
	EventDelete EventType = "delete"
)

// Event is one row-level change broadcast on a table channel. New carries the
// full row for insert/update; Old carries at least {"id": ...} for delete.
// Delivery is at-least-once and ordered per row id, so consumers must apply
// events idempotently.
type Event struct {
	ID    string          `json:"id"`
	Table string          `json:"table"`
	Type  EventType       `json:"type"`
	New   json.RawMessage `json:"new,omitempty"`
	Old   json.RawMessage `json:"old,omitempty"`
}

// DecodeNew unmarshals the New payload into v.
func (e Event) DecodeNew(v any) error {
	return json.Unmarshal(e.New, v)
}

// OldID extracts the row id from the Old payload of a delete event.
func (e Event) OldID() string {
	var old struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(e.Old, &old)
	return old.ID
}

// NewInsert builds an insert event carrying the full new row.
func NewInsert(table string, row any) (Event, error) {
	raw, err := json.Marshal(row)
	if err != nil {
		return Event{}, err
	}
	return Event{ID: uuid.NewString(), Table: table, Type: EventInsert, New: raw}, nil
}

// NewUpdate builds an update event carrying the full updated row.
func NewUpdate(table string, row any) (Event, error) {
	raw, err := json.Marshal(row)
	if err != nil {
		return Event{}, err
	}
	return Event{ID: uuid.NewString(), Table: table, Type: EventUpdate, New: raw}, nil
}

// NewDelete builds a delete event carrying only the removed row's id.
func NewDelete(table, rowID string) Event {
	raw, _ := json.Marshal(map[string]string{"id": rowID})
	return Event{ID: uuid.NewString(), Table: table, Type: EventDelete, Old: raw}
}
