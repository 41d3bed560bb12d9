package stream

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// LayoutEventType identifies what happened to a layout document.
type LayoutEventType string

const (
	LayoutEventSaved     LayoutEventType = "layout.saved"
	LayoutEventPublished LayoutEventType = "layout.published"
	LayoutEventDeleted   LayoutEventType = "layout.deleted"
)

// LayoutEvent is the message published to downstream consumers (booking
// systems, search indexers) whenever a layout changes.
type LayoutEvent struct {
	ID        uuid.UUID       `json:"id"`
	Type      LayoutEventType `json:"type"`
	LayoutID  uuid.UUID       `json:"layout_id"`
	ActorID   string          `json:"actor_id"`
	Version   int             `json:"version"`
	SeatCount int             `json:"seat_count"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewLayoutEvent builds an event with a fresh id and timestamp.
func NewLayoutEvent(eventType LayoutEventType, layoutID uuid.UUID, actorID string, version, seatCount int) *LayoutEvent {
	return &LayoutEvent{
		ID:        uuid.New(),
		Type:      eventType,
		LayoutID:  layoutID,
		ActorID:   actorID,
		Version:   version,
		SeatCount: seatCount,
		CreatedAt: time.Now(),
	}
}

// ToJSON serializes the event for the wire.
func (e *LayoutEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// GetPartitionKey routes all events for one layout to the same partition
// so consumers see them in order.
func (e *LayoutEvent) GetPartitionKey() string {
	return e.LayoutID.String()
}
