// Package domain contains the core data types for the travel-planner application.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the top-level aggregate: a user-created travel plan with a
// destination, optional date range, a day-by-day itinerary, and the list of
// collaborator emails that controls visibility.
//
// Invariants:
//   - Collaborators is never empty; the creator's email is always element 0.
//   - Itinerary day indices are contiguous starting at 1 in display order.
//
// Updates replace the stored record wholesale (last write wins); there is no
// revision check.
type Trip struct {
	ID            uuid.UUID      `json:"id"`
	Name          string         `json:"name"`
	Destination   string         `json:"destination"`
	StartDate     *time.Time     `json:"start_date,omitempty"`
	EndDate       *time.Time     `json:"end_date,omitempty"`
	Itinerary     []ItineraryDay `json:"itinerary"`
	Collaborators []string       `json:"collaborators"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// ItineraryDay is one day's ordered list of activities at a single location.
// Reordering activities replaces the whole itinerary array on the trip.
type ItineraryDay struct {
	Day        int        `json:"day"`
	Location   string     `json:"location"`
	Lat        float64    `json:"lat"`
	Lon        float64    `json:"lon"`
	Activities []Activity `json:"activities"`
}

// Activity is a leaf entity inside an itinerary day. The ID only needs to be
// unique within its trip; the drag-and-drop UI uses it as a stable handle.
type Activity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// TripUpdate carries the fields of a shallow-merge update. Nil fields keep
// their stored value; a non-nil Itinerary replaces the entire array — there is
// no deep merge of nested days.
type TripUpdate struct {
	Name        *string
	Destination *string
	StartDate   *time.Time
	EndDate     *time.Time
	Itinerary   *[]ItineraryDay
}

// IsCollaborator reports whether email is a member of the trip's
// collaborators list. Membership is the sole visibility/authorization signal
// for a trip and everything nested under it.
func (t Trip) IsCollaborator(email string) bool {
	for _, c := range t.Collaborators {
		if c == email {
			return true
		}
	}
	return false
}
