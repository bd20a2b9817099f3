// Package journal records the ledger's change notifications as an
// append-only event stream, giving the audit trail durable storage and
// replay.
package journal

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event types appended by the Recorder.
const (
	TypeIssued    = "Issued"
	TypeDestroyed = "Destroyed"
)

// Change is the notification payload of a single ledger mutation. Exactly
// one of From/To is the null identity: From on issue, To on destroy.
type Change struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

// Event is one record in a journal stream.
type Event struct {
	ID        string          `json:"id"`
	StreamID  string          `json:"stream_id"`
	Type      string          `json:"type"`
	Version   int             `json:"version"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewEvent creates an event with a fresh ID and the current time. The
// version is assigned by the store on append.
func NewEvent(streamID, eventType string, data any) (*Event, error) {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("journal: encode event data: %w", err)
		}
		raw = b
	}
	return &Event{
		ID:        uuid.New().String(),
		StreamID:  streamID,
		Type:      eventType,
		Version:   -1,
		Data:      raw,
		Timestamp: time.Now().UTC(),
	}, nil
}

// Decode unmarshals the event payload into v.
func (e *Event) Decode(v any) error {
	if len(e.Data) == 0 {
		return fmt.Errorf("journal: event %s has no data", e.ID)
	}
	return json.Unmarshal(e.Data, v)
}
