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

// MessageRepo defines the persistence operations for chat messages.
// Both the trip-scoped and the global channel share this one repo; a NULL
// trip_id marks global messages.
type MessageRepo interface {
	// Create appends one message and returns the persisted record.
	// Messages are immutable: no update or delete operation exists.
	Create(ctx context.Context, msg domain.Message) (domain.Message, error)

	// ListByTrip returns a page of a trip's messages ordered by created_at
	// ascending (oldest first).
	ListByTrip(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Message, error)

	// ListGlobal returns a page of the global channel ordered by created_at
	// ascending.
	ListGlobal(ctx context.Context, p domain.PaginationParams) ([]domain.Message, error)
}

// pgMessageRepo is the Postgres implementation of MessageRepo.
type pgMessageRepo struct {
	db db
}

// NewMessageRepo constructs a MessageRepo backed by the provided db connection.
func NewMessageRepo(db db) MessageRepo {
	return &pgMessageRepo{db: db}
}

const messageColumns = `id, trip_id, sender_email, body, created_at`

func (r *pgMessageRepo) Create(ctx context.Context, msg domain.Message) (domain.Message, error) {
	const q = `
		INSERT INTO messages (trip_id, sender_email, body)
		VALUES (@trip_id, @sender_email, @body)
		RETURNING ` + messageColumns

	args := pgx.NamedArgs{
		"trip_id":      msg.TripID, // nil becomes NULL (global channel)
		"sender_email": msg.SenderEmail,
		"body":         msg.Body,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanMessage(row)
	if err != nil {
		return domain.Message{}, fmt.Errorf("repo.MessageRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgMessageRepo) ListByTrip(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Message, error) {
	const q = `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE trip_id = @trip_id
		ORDER BY created_at ASC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"trip_id": tripID,
		"limit":   p.Limit,
		"offset":  p.Offset(),
	})
	if err != nil {
		return nil, fmt.Errorf("repo.MessageRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	return collectMessages(rows, "repo.MessageRepo.ListByTrip")
}

func (r *pgMessageRepo) ListGlobal(ctx context.Context, p domain.PaginationParams) ([]domain.Message, error) {
	const q = `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE trip_id IS NULL
		ORDER BY created_at ASC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"limit":  p.Limit,
		"offset": p.Offset(),
	})
	if err != nil {
		return nil, fmt.Errorf("repo.MessageRepo.ListGlobal: %w", err)
	}
	defer rows.Close()

	return collectMessages(rows, "repo.MessageRepo.ListGlobal")
}

// collectMessages drains rows into a slice, wrapping errors with op.
func collectMessages(rows pgx.Rows, op string) ([]domain.Message, error) {
	var msgs []domain.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return msgs, nil
}

// scanMessage maps a single database row into a domain.Message.
func scanMessage(s scanner) (domain.Message, error) {
	var (
		m      domain.Message
		id     pgtype.UUID
		tripID pgtype.UUID
	)

	err := s.Scan(&id, &tripID, &m.SenderEmail, &m.Body, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Message{}, domain.ErrNotFound
		}
		return domain.Message{}, err
	}

	m.ID = uuid.UUID(id.Bytes)
	if tripID.Valid {
		tid := uuid.UUID(tripID.Bytes)
		m.TripID = &tid
	}
	return m, nil
}
