package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

func messageFixture(tripID *uuid.UUID, body string) domain.Message {
	return domain.Message{
		ID:          uuid.New(),
		TripID:      tripID,
		SenderEmail: callerEmail,
		Body:        body,
		CreatedAt:   time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC),
	}
}

// ---- POST /trips/{tripID}/messages -----------------------------------------

func TestSendTripMessage_201(t *testing.T) {
	env := newTestEnv(t)
	tripID := uuid.New()
	env.chat.sendToTrip = func(_ context.Context, sender string, id uuid.UUID, body string) (domain.Message, error) {
		require.Equal(t, callerEmail, sender)
		require.Equal(t, tripID, id)
		require.Equal(t, "see you there", body)
		return messageFixture(&tripID, body), nil
	}

	req := env.authedRequest(t, http.MethodPost, "/trips/"+tripID.String()+"/messages",
		jsonBody(t, map[string]string{"body": "see you there"}))
	rec := env.request(req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body domain.Message
	decodeBody(t, rec, &body)
	require.NotNil(t, body.TripID)
	require.Equal(t, tripID, *body.TripID)
	require.Equal(t, callerEmail, body.SenderEmail)
}

func TestSendTripMessage_422_EmptyBody(t *testing.T) {
	env := newTestEnv(t)

	req := env.authedRequest(t, http.MethodPost, "/trips/"+uuid.NewString()+"/messages",
		jsonBody(t, map[string]string{"body": ""}))
	rec := env.request(req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, "validation_error", errorCode(t, rec))
}

func TestSendTripMessage_403_NonCollaborator(t *testing.T) {
	env := newTestEnv(t)
	env.chat.sendToTrip = func(context.Context, string, uuid.UUID, string) (domain.Message, error) {
		return domain.Message{}, fmt.Errorf("service.ChatService.SendToTrip: %w", domain.ErrForbidden)
	}

	req := env.authedRequest(t, http.MethodPost, "/trips/"+uuid.NewString()+"/messages",
		jsonBody(t, map[string]string{"body": "hello"}))
	rec := env.request(req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

// ---- GET /trips/{tripID}/messages ------------------------------------------

func TestListTripMessages_200(t *testing.T) {
	env := newTestEnv(t)
	tripID := uuid.New()
	env.chat.listTrip = func(_ context.Context, caller string, id uuid.UUID, _ domain.PaginationParams) ([]domain.Message, error) {
		require.Equal(t, callerEmail, caller)
		require.Equal(t, tripID, id)
		return []domain.Message{messageFixture(&tripID, "first"), messageFixture(&tripID, "second")}, nil
	}

	rec := env.request(env.authedRequest(t, http.MethodGet, "/trips/"+tripID.String()+"/messages", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []domain.Message `json:"data"`
	}
	decodeBody(t, rec, &body)
	require.Len(t, body.Data, 2)
	require.Equal(t, "first", body.Data[0].Body)
}

// ---- POST /chat/messages ---------------------------------------------------

func TestSendGlobalMessage_201(t *testing.T) {
	env := newTestEnv(t)
	env.chat.sendGlobal = func(_ context.Context, sender, body string) (domain.Message, error) {
		require.Equal(t, callerEmail, sender)
		return messageFixture(nil, body), nil
	}

	req := env.authedRequest(t, http.MethodPost, "/chat/messages",
		jsonBody(t, map[string]string{"body": "anyone been to Faro?"}))
	rec := env.request(req)

	require.Equal(t, http.StatusCreated, rec.Code)

	// Global messages carry no trip_id at all.
	require.NotContains(t, rec.Body.String(), "trip_id")
}

// ---- GET /chat/messages ----------------------------------------------------

func TestListGlobalMessages_200(t *testing.T) {
	env := newTestEnv(t)
	env.chat.listGlobal = func(_ context.Context, p domain.PaginationParams) ([]domain.Message, error) {
		require.Equal(t, 1, p.Page)
		require.Equal(t, 50, p.Limit)
		return []domain.Message{messageFixture(nil, "hello world")}, nil
	}

	rec := env.request(env.authedRequest(t, http.MethodGet, "/chat/messages", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []domain.Message `json:"data"`
	}
	decodeBody(t, rec, &body)
	require.Len(t, body.Data, 1)
	require.Nil(t, body.Data[0].TripID)
}
