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

// createTrip inserts a trip row so messages and activities have a valid
// foreign key to point at.
func createTrip(t *testing.T, trips repo.TripRepo) domain.Trip {
	t.Helper()
	created, err := trips.Create(context.Background(), tripFixture())
	require.NoError(t, err)
	return created
}

func TestMessageRepo_Create_TripChannel(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewMessageRepo(tx)
	trip := createTrip(t, repo.NewTripRepo(tx))
	ctx := context.Background()

	got, err := r.Create(ctx, domain.Message{
		TripID:      &trip.ID,
		SenderEmail: "owner@example.com",
		Body:        "see you there",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	require.NotNil(t, got.TripID)
	assert.Equal(t, trip.ID, *got.TripID)
	assert.Equal(t, "see you there", got.Body)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestMessageRepo_Create_GlobalChannel(t *testing.T) {
	r := repo.NewMessageRepo(newTestTx(t))

	got, err := r.Create(context.Background(), domain.Message{
		SenderEmail: "owner@example.com",
		Body:        "anyone been to Faro?",
	})

	require.NoError(t, err)
	assert.Nil(t, got.TripID, "global messages store NULL trip_id")
}

func TestMessageRepo_ListByTrip(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewMessageRepo(tx)
	trips := repo.NewTripRepo(tx)
	trip := createTrip(t, trips)
	other := createTrip(t, trips)
	ctx := context.Background()

	for _, body := range []string{"first", "second"} {
		_, err := r.Create(ctx, domain.Message{TripID: &trip.ID, SenderEmail: "a@example.com", Body: body})
		require.NoError(t, err)
	}
	_, err := r.Create(ctx, domain.Message{TripID: &other.ID, SenderEmail: "a@example.com", Body: "elsewhere"})
	require.NoError(t, err)
	_, err = r.Create(ctx, domain.Message{SenderEmail: "a@example.com", Body: "global"})
	require.NoError(t, err)

	got, err := r.ListByTrip(ctx, trip.ID, domain.PaginationParams{Page: 1, Limit: 50})

	require.NoError(t, err)
	require.Len(t, got, 2, "other channels must not leak in")
	bodies := []string{got[0].Body, got[1].Body}
	assert.Contains(t, bodies, "first")
	assert.Contains(t, bodies, "second")
}

func TestMessageRepo_ListByTrip_Pagination(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewMessageRepo(tx)
	trip := createTrip(t, repo.NewTripRepo(tx))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := r.Create(ctx, domain.Message{TripID: &trip.ID, SenderEmail: "a@example.com", Body: "msg"})
		require.NoError(t, err)
	}

	page1, err := r.ListByTrip(ctx, trip.ID, domain.PaginationParams{Page: 1, Limit: 3})
	require.NoError(t, err)
	page2, err := r.ListByTrip(ctx, trip.ID, domain.PaginationParams{Page: 2, Limit: 3})
	require.NoError(t, err)

	assert.Len(t, page1, 3)
	assert.Len(t, page2, 2)
}

func TestMessageRepo_ListGlobal(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewMessageRepo(tx)
	trip := createTrip(t, repo.NewTripRepo(tx))
	ctx := context.Background()

	_, err := r.Create(ctx, domain.Message{SenderEmail: "a@example.com", Body: "global one"})
	require.NoError(t, err)
	_, err = r.Create(ctx, domain.Message{TripID: &trip.ID, SenderEmail: "a@example.com", Body: "trip-scoped"})
	require.NoError(t, err)

	got, err := r.ListGlobal(ctx, domain.PaginationParams{Page: 1, Limit: 50})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "global one", got[0].Body)
	assert.Nil(t, got[0].TripID)
}

func TestMessageRepo_DeletedTripCascades(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewMessageRepo(tx)
	trips := repo.NewTripRepo(tx)
	trip := createTrip(t, trips)
	ctx := context.Background()

	_, err := r.Create(ctx, domain.Message{TripID: &trip.ID, SenderEmail: "a@example.com", Body: "doomed"})
	require.NoError(t, err)

	require.NoError(t, trips.Delete(ctx, trip.ID))

	got, err := r.ListByTrip(ctx, trip.ID, domain.PaginationParams{Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.Empty(t, got)
}
