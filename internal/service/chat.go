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

// ChatService implements the two chat channels: one per trip, visible to its
// collaborators, and one global channel open to every authenticated user.
// Messages are append-only.
type ChatService struct {
	messages repo.MessageRepo
	trips    repo.TripRepo
	hub      *realtime.Hub
	activity *ActivityLogger
}

// NewChatService constructs a ChatService.
func NewChatService(messages repo.MessageRepo, trips repo.TripRepo, hub *realtime.Hub, activity *ActivityLogger) *ChatService {
	return &ChatService{messages: messages, trips: trips, hub: hub, activity: activity}
}

// SendToTrip appends a message to a trip's channel. Sending also leaves an
// audit-trail entry quoting the message body.
// Returns domain.ErrUnauthorized for an empty sender, domain.ErrValidation
// for an empty body, domain.ErrForbidden for a non-collaborator.
func (s *ChatService) SendToTrip(ctx context.Context, senderEmail string, tripID uuid.UUID, body string) (domain.Message, error) {
	if senderEmail == "" {
		return domain.Message{}, fmt.Errorf("service.ChatService.SendToTrip: %w", domain.ErrUnauthorized)
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return domain.Message{}, fmt.Errorf("%w: message body is required", domain.ErrValidation)
	}

	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Message{}, fmt.Errorf("service.ChatService.SendToTrip: %w", err)
	}
	if !trip.IsCollaborator(senderEmail) {
		return domain.Message{}, fmt.Errorf("service.ChatService.SendToTrip: %w", domain.ErrForbidden)
	}

	msg, err := s.messages.Create(ctx, domain.Message{
		TripID:      &tripID,
		SenderEmail: senderEmail,
		Body:        body,
	})
	if err != nil {
		return domain.Message{}, fmt.Errorf("service.ChatService.SendToTrip: %w", err)
	}

	s.hub.Publish(realtime.TripMessagesTopic(tripID), realtime.Event{Type: "message.created", Payload: msg})
	s.activity.Log(ctx, tripID, senderEmail, fmt.Sprintf("sent a chat message: %q", body))
	return msg, nil
}

// SendGlobal appends a message to the global channel. Global messages leave
// no audit-trail entry; the trail is per-trip.
func (s *ChatService) SendGlobal(ctx context.Context, senderEmail, body string) (domain.Message, error) {
	if senderEmail == "" {
		return domain.Message{}, fmt.Errorf("service.ChatService.SendGlobal: %w", domain.ErrUnauthorized)
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return domain.Message{}, fmt.Errorf("%w: message body is required", domain.ErrValidation)
	}

	msg, err := s.messages.Create(ctx, domain.Message{
		SenderEmail: senderEmail,
		Body:        body,
	})
	if err != nil {
		return domain.Message{}, fmt.Errorf("service.ChatService.SendGlobal: %w", err)
	}

	s.hub.Publish(realtime.ChatTopic, realtime.Event{Type: "message.created", Payload: msg})
	return msg, nil
}

// ListTrip returns a page of a trip's channel, oldest first. The caller must
// be a collaborator.
func (s *ChatService) ListTrip(ctx context.Context, callerEmail string, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Message, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ChatService.ListTrip: %w", err)
	}
	if !trip.IsCollaborator(callerEmail) {
		return nil, fmt.Errorf("service.ChatService.ListTrip: %w", domain.ErrForbidden)
	}

	msgs, err := s.messages.ListByTrip(ctx, tripID, p)
	if err != nil {
		return nil, fmt.Errorf("service.ChatService.ListTrip: %w", err)
	}
	if msgs == nil {
		return []domain.Message{}, nil
	}
	return msgs, nil
}

// ListGlobal returns a page of the global channel, oldest first.
func (s *ChatService) ListGlobal(ctx context.Context, p domain.PaginationParams) ([]domain.Message, error) {
	msgs, err := s.messages.ListGlobal(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("service.ChatService.ListGlobal: %w", err)
	}
	if msgs == nil {
		return []domain.Message{}, nil
	}
	return msgs, nil
}
