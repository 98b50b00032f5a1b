package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivityEntry is one line in a trip's append-only audit trail: who did
// what, when. Entries are immutable once written and are displayed most
// recent first.
type ActivityEntry struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	UserEmail string    `json:"user_email"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}
