package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/repo"
)

func TestActivityRepo_Create(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewActivityRepo(tx)
	trip := createTrip(t, repo.NewTripRepo(tx))

	got, err := r.Create(context.Background(), domain.ActivityEntry{
		TripID:    trip.ID,
		UserEmail: "owner@example.com",
		Action:    "created the trip",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, trip.ID, got.TripID)
	assert.Equal(t, "created the trip", got.Action)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestActivityRepo_ListByTrip(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewActivityRepo(tx)
	trips := repo.NewTripRepo(tx)
	trip := createTrip(t, trips)
	other := createTrip(t, trips)
	ctx := context.Background()

	for _, action := range []string{"created the trip", "invited friend@example.com as a collaborator"} {
		_, err := r.Create(ctx, domain.ActivityEntry{TripID: trip.ID, UserEmail: "owner@example.com", Action: action})
		require.NoError(t, err)
	}
	_, err := r.Create(ctx, domain.ActivityEntry{TripID: other.ID, UserEmail: "owner@example.com", Action: "created the trip"})
	require.NoError(t, err)

	got, err := r.ListByTrip(ctx, trip.ID, domain.PaginationParams{Page: 1, Limit: 50})

	require.NoError(t, err)
	require.Len(t, got, 2, "entries from other trips must not leak in")
}

func TestActivityRepo_ListByTrip_Empty(t *testing.T) {
	r := repo.NewActivityRepo(newTestTx(t))

	got, err := r.ListByTrip(context.Background(), uuid.New(), domain.PaginationParams{Page: 1, Limit: 50})

	require.NoError(t, err)
	assert.Empty(t, got)
}
