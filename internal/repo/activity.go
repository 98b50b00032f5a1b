package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// ActivityRepo defines the persistence operations for the per-trip audit trail.
// Entries are append-only: no update or delete operation exists.
type ActivityRepo interface {
	// Create appends one entry and returns the persisted record.
	Create(ctx context.Context, entry domain.ActivityEntry) (domain.ActivityEntry, error)

	// ListByTrip returns a page of a trip's entries ordered by created_at
	// descending (most recent first, matching the display order).
	ListByTrip(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.ActivityEntry, error)
}

// pgActivityRepo is the Postgres implementation of ActivityRepo.
type pgActivityRepo struct {
	db db
}

// NewActivityRepo constructs an ActivityRepo backed by the provided db connection.
func NewActivityRepo(db db) ActivityRepo {
	return &pgActivityRepo{db: db}
}

func (r *pgActivityRepo) Create(ctx context.Context, entry domain.ActivityEntry) (domain.ActivityEntry, error) {
	const q = `
		INSERT INTO trip_activities (trip_id, user_email, action)
		VALUES (@trip_id, @user_email, @action)
		RETURNING id, trip_id, user_email, action, created_at`

	args := pgx.NamedArgs{
		"trip_id":    entry.TripID,
		"user_email": entry.UserEmail,
		"action":     entry.Action,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanActivity(row)
	if err != nil {
		return domain.ActivityEntry{}, fmt.Errorf("repo.ActivityRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) ListByTrip(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.ActivityEntry, error) {
	const q = `
		SELECT id, trip_id, user_email, action, created_at
		FROM trip_activities
		WHERE trip_id = @trip_id
		ORDER BY created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"trip_id": tripID,
		"limit":   p.Limit,
		"offset":  p.Offset(),
	})
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	var entries []domain.ActivityEntry
	for rows.Next() {
		e, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ActivityRepo.ListByTrip: scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByTrip: rows: %w", err)
	}

	return entries, nil
}

// scanActivity maps a single database row into a domain.ActivityEntry.
func scanActivity(s scanner) (domain.ActivityEntry, error) {
	var (
		e      domain.ActivityEntry
		id     pgtype.UUID
		tripID pgtype.UUID
	)

	err := s.Scan(&id, &tripID, &e.UserEmail, &e.Action, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ActivityEntry{}, domain.ErrNotFound
		}
		return domain.ActivityEntry{}, err
	}

	e.ID = uuid.UUID(id.Bytes)
	e.TripID = uuid.UUID(tripID.Bytes)
	return e, nil
}
