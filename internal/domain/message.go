package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is one chat message. TripID is nil for the global channel and set
// for the per-trip channel; the two channels are otherwise identical and are
// never unified at the API surface.
// Messages are append-only: no edit or delete operation exists.
type Message struct {
	ID          uuid.UUID  `json:"id"`
	TripID      *uuid.UUID `json:"trip_id,omitempty"`
	SenderEmail string     `json:"sender_email"`
	Body        string     `json:"body"`
	CreatedAt   time.Time  `json:"created_at"`
}
