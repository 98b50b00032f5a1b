package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/realtime"
	"github.com/pkordes/travel-planner/backend/internal/repo"
)

// ActivityLogger records the per-trip audit trail. Logging is best-effort:
// Log never returns an error, so a failed audit write can never fail the
// user action that triggered it.
type ActivityLogger struct {
	activities repo.ActivityRepo
	trips      repo.TripRepo
	hub        *realtime.Hub
	log        *slog.Logger
}

// NewActivityLogger constructs an ActivityLogger.
func NewActivityLogger(activities repo.ActivityRepo, trips repo.TripRepo, hub *realtime.Hub, logger *slog.Logger) *ActivityLogger {
	return &ActivityLogger{activities: activities, trips: trips, hub: hub, log: logger}
}

// Log appends one entry to a trip's audit trail and publishes it to the
// trip's activity topic. Incomplete input is dropped with a diagnostic;
// persistence failures are logged and swallowed.
func (l *ActivityLogger) Log(ctx context.Context, tripID uuid.UUID, userEmail, action string) {
	if tripID == uuid.Nil || userEmail == "" || action == "" {
		l.log.WarnContext(ctx, "activity entry dropped: incomplete",
			slog.String("trip_id", tripID.String()),
			slog.String("user_email", userEmail),
			slog.String("action", action),
		)
		return
	}

	entry, err := l.activities.Create(ctx, domain.ActivityEntry{
		TripID:    tripID,
		UserEmail: userEmail,
		Action:    action,
	})
	if err != nil {
		l.log.ErrorContext(ctx, "activity entry dropped: write failed",
			slog.String("trip_id", tripID.String()),
			slog.String("error", err.Error()),
		)
		return
	}

	l.hub.Publish(realtime.TripActivitiesTopic(tripID), realtime.Event{
		Type:    "activity.created",
		Payload: entry,
	})
}

// List returns a page of a trip's audit trail, most recent first. The caller
// must be a collaborator on the trip.
func (l *ActivityLogger) List(ctx context.Context, callerEmail string, tripID uuid.UUID, p domain.PaginationParams) ([]domain.ActivityEntry, error) {
	trip, err := l.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityLogger.List: %w", err)
	}
	if !trip.IsCollaborator(callerEmail) {
		return nil, fmt.Errorf("service.ActivityLogger.List: %w", domain.ErrForbidden)
	}

	entries, err := l.activities.ListByTrip(ctx, tripID, p)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityLogger.List: %w", err)
	}
	if entries == nil {
		return []domain.ActivityEntry{}, nil
	}
	return entries, nil
}
