package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/realtime"
)

// heartbeatInterval keeps intermediaries from reaping idle SSE connections.
const heartbeatInterval = 15 * time.Second

// Every stream handler follows the same sequence: subscribe to the topic
// first, then fetch the snapshot through the service. An event published
// while the snapshot query runs therefore waits in the subscription channel
// and is delivered right after the snapshot frame instead of being lost.
// The service read doubles as the membership check, so a rejected caller
// gets a plain JSON error before any SSE headers are written.

// StreamTrips handles GET /streams/trips: a server-sent-event stream of the
// caller's trip list. The current list is sent as a snapshot event first, so
// the client renders immediately and then applies changes.
func (s *Server) StreamTrips(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(r)
	if !ok {
		s.writeError(w, r, domain.ErrUnauthorized)
		return
	}

	events, cancel := s.deps.Hub.Subscribe(realtime.TripsTopic(identity.Email))

	trips, err := s.deps.Trips.List(r.Context(), identity.Email)
	if err != nil {
		cancel()
		s.writeError(w, r, err)
		return
	}

	s.stream(w, r, events, cancel, realtime.Event{
		Type:    "trips.snapshot",
		Payload: trips,
	})
}

// StreamTripMessages handles GET /streams/trips/{tripID}/messages.
// Collaborator-only, like every read under a trip.
func (s *Server) StreamTripMessages(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(r)
	if !ok {
		s.writeError(w, r, domain.ErrUnauthorized)
		return
	}
	id, err := tripIDParam(r)
	if err != nil {
		s.writeError(w, r, domain.ErrNotFound)
		return
	}

	events, cancel := s.deps.Hub.Subscribe(realtime.TripMessagesTopic(id))

	msgs, err := s.deps.Chat.ListTrip(r.Context(), identity.Email, id, paginationParams(r))
	if err != nil {
		cancel()
		s.writeError(w, r, err)
		return
	}

	s.stream(w, r, events, cancel, realtime.Event{
		Type:    "messages.snapshot",
		Payload: msgs,
	})
}

// StreamTripActivities handles GET /streams/trips/{tripID}/activities.
func (s *Server) StreamTripActivities(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(r)
	if !ok {
		s.writeError(w, r, domain.ErrUnauthorized)
		return
	}
	id, err := tripIDParam(r)
	if err != nil {
		s.writeError(w, r, domain.ErrNotFound)
		return
	}

	events, cancel := s.deps.Hub.Subscribe(realtime.TripActivitiesTopic(id))

	entries, err := s.deps.Activities.List(r.Context(), identity.Email, id, paginationParams(r))
	if err != nil {
		cancel()
		s.writeError(w, r, err)
		return
	}

	s.stream(w, r, events, cancel, realtime.Event{
		Type:    "activities.snapshot",
		Payload: entries,
	})
}

// StreamGlobalChat handles GET /streams/chat.
func (s *Server) StreamGlobalChat(w http.ResponseWriter, r *http.Request) {
	events, cancel := s.deps.Hub.Subscribe(realtime.ChatTopic)

	msgs, err := s.deps.Chat.ListGlobal(r.Context(), paginationParams(r))
	if err != nil {
		cancel()
		s.writeError(w, r, err)
		return
	}

	s.stream(w, r, events, cancel, realtime.Event{
		Type:    "messages.snapshot",
		Payload: msgs,
	})
}

// stream writes the snapshot frame and then relays events from the
// already-open subscription until the client disconnects. Requires the outer
// http.Server to run without a WriteTimeout.
func (s *Server) stream(w http.ResponseWriter, r *http.Request, events <-chan realtime.Event, cancel func(), snapshot realtime.Event) {
	defer cancel()

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: ErrorDetail{
			Code:    "internal_error",
			Message: "streaming unsupported",
		}})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if err := writeSSE(w, snapshot); err != nil {
		return
	}
	flusher.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, open := <-events:
			if !open {
				return
			}
			if err := writeSSE(w, ev); err != nil {
				return
			}
			flusher.Flush()
		case <-heartbeat.C:
			// SSE comment line; clients ignore it, proxies see traffic.
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// writeSSE renders one event as an SSE frame: the event name line, then the
// JSON payload on a data line.
func writeSSE(w http.ResponseWriter, ev realtime.Event) error {
	payload, err := json.Marshal(ev.Payload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, payload)
	return err
}
