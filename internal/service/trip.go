// Package service contains the business logic for the travel-planner API.
// Services validate inputs, enforce collaborator-based authorization, and
// orchestrate repo calls, outbound API clients, the realtime hub, and the
// activity logger. No SQL and no HTTP wiring lives here.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/realtime"
	"github.com/pkordes/travel-planner/backend/internal/repo"
)

// TripService implements business logic for Trip operations. Every operation
// takes the caller's email; membership in the trip's collaborators list is
// the sole authorization signal.
type TripService struct {
	trips    repo.TripRepo
	hub      *realtime.Hub
	activity *ActivityLogger
}

// NewTripService constructs a TripService.
func NewTripService(trips repo.TripRepo, hub *realtime.Hub, activity *ActivityLogger) *TripService {
	return &TripService{trips: trips, hub: hub, activity: activity}
}

// Create validates and persists a new trip for callerEmail. The collaborators
// list is always reset to exactly the creator; invitations happen through
// Invite, never at creation.
func (s *TripService) Create(ctx context.Context, callerEmail string, trip domain.Trip) (domain.Trip, error) {
	trip.Collaborators = []string{callerEmail}
	trip.Itinerary = normalizeItinerary(trip.Itinerary)
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	s.publishToCollaborators(result, "trip.created")
	s.activity.Log(ctx, result.ID, callerEmail, "created the trip")
	return result, nil
}

// List returns all trips callerEmail collaborates on, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, callerEmail string) ([]domain.Trip, error) {
	trips, err := s.trips.ListByCollaborator(ctx, callerEmail)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Get returns a single trip. Returns domain.ErrForbidden when callerEmail is
// not a collaborator; trip IDs are random UUIDs, so revealing that one
// exists is not considered sensitive.
func (s *TripService) Get(ctx context.Context, callerEmail string, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Get: %w", err)
	}
	if !trip.IsCollaborator(callerEmail) {
		return domain.Trip{}, fmt.Errorf("service.TripService.Get: %w", domain.ErrForbidden)
	}
	return trip, nil
}

// Update applies a shallow merge onto the stored trip and persists the whole
// record. Last write wins: concurrent updates are not detected, the later
// one simply overwrites.
func (s *TripService) Update(ctx context.Context, callerEmail string, id uuid.UUID, upd domain.TripUpdate) (domain.Trip, error) {
	trip, err := s.Get(ctx, callerEmail, id)
	if err != nil {
		return domain.Trip{}, err
	}

	if upd.Name != nil {
		trip.Name = *upd.Name
	}
	if upd.Destination != nil {
		trip.Destination = *upd.Destination
	}
	if upd.StartDate != nil {
		trip.StartDate = upd.StartDate
	}
	if upd.EndDate != nil {
		trip.EndDate = upd.EndDate
	}
	if upd.Itinerary != nil {
		trip.Itinerary = normalizeItinerary(*upd.Itinerary)
	}
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	result, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	s.publishToCollaborators(result, "trip.updated")
	s.activity.Log(ctx, result.ID, callerEmail, "updated the trip")
	return result, nil
}

// Delete removes a trip; its messages and activity entries cascade away with
// it.
func (s *TripService) Delete(ctx context.Context, callerEmail string, id uuid.UUID) error {
	trip, err := s.Get(ctx, callerEmail, id)
	if err != nil {
		return err
	}
	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}

	s.publishToCollaborators(trip, "trip.deleted")
	return nil
}

// Invite adds inviteeEmail to the trip's collaborators. The invitee gains
// full access immediately; there is no pending-invitation state.
// Returns domain.ErrValidation for a malformed address or an existing
// collaborator.
func (s *TripService) Invite(ctx context.Context, callerEmail string, id uuid.UUID, inviteeEmail string) (domain.Trip, error) {
	trip, err := s.Get(ctx, callerEmail, id)
	if err != nil {
		return domain.Trip{}, err
	}

	inviteeEmail = strings.TrimSpace(inviteeEmail)
	if !emailPattern.MatchString(inviteeEmail) {
		return domain.Trip{}, fmt.Errorf("%w: invalid collaborator email", domain.ErrValidation)
	}
	if trip.IsCollaborator(inviteeEmail) {
		return domain.Trip{}, fmt.Errorf("%w: already a collaborator", domain.ErrValidation)
	}

	trip.Collaborators = append(trip.Collaborators, inviteeEmail)
	result, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Invite: %w", err)
	}

	s.publishToCollaborators(result, "trip.updated")
	s.activity.Log(ctx, result.ID, callerEmail, fmt.Sprintf("invited %s as a collaborator", inviteeEmail))
	return result, nil
}

// publishToCollaborators pushes the trip to every collaborator's trip-list
// topic so each of their list views refreshes.
func (s *TripService) publishToCollaborators(trip domain.Trip, eventType string) {
	ev := realtime.Event{Type: eventType, Payload: trip}
	for _, email := range trip.Collaborators {
		s.hub.Publish(realtime.TripsTopic(email), ev)
	}
}

// validateTrip enforces the rules common to Create and Update.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - EndDate, if both dates are set, must not be before StartDate.
//   - Collaborators must be non-empty; element 0 is the creator.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if trip.StartDate != nil && trip.EndDate != nil && trip.EndDate.Before(*trip.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	if len(trip.Collaborators) == 0 {
		return fmt.Errorf("%w: collaborators must not be empty", domain.ErrValidation)
	}
	return nil
}

// normalizeItinerary renumbers days 1..n in slice order and replaces a nil
// itinerary with an empty one. Clients send days in display order; the day
// index is derived, never trusted.
func normalizeItinerary(days []domain.ItineraryDay) []domain.ItineraryDay {
	if days == nil {
		return []domain.ItineraryDay{}
	}
	out := make([]domain.ItineraryDay, len(days))
	copy(out, days)
	for i := range out {
		out[i].Day = i + 1
		if out[i].Activities == nil {
			out[i].Activities = []domain.Activity{}
		}
	}
	return out
}
