package events

import (
	"time"

	"github.com/google/uuid"
)

// Event types published by the backend.
const (
	TypeTransactionCreated    = "transaction.created"
	TypeSubscriptionProcessed = "subscription.processed"
)

// Event is the envelope every published message uses. Payloads carry
// only identifiers, consumers fetch the full resources themselves.
type Event struct {
	Type       string    `json:"type"`
	UserID     uuid.UUID `json:"userId"`
	ResourceID uuid.UUID `json:"resourceId"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewEvent creates an event with the timestamp set to now.
func NewEvent(eventType string, userID, resourceID uuid.UUID) Event {
	return Event{
		Type:       eventType,
		UserID:     userID,
		ResourceID: resourceID,
		Timestamp:  time.Now(),
	}
}
