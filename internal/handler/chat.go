package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// messageRequest is the body for both chat send endpoints. The sender is the
// authenticated caller, never a body field.
type messageRequest struct {
	Body string `json:"body" validate:"required"`
}

// SendTripMessage handles POST /trips/{tripID}/messages.
func (s *Server) SendTripMessage(w http.ResponseWriter, r *http.Request) {
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

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "request body must be valid JSON")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		requestError(w, "message body is required")
		return
	}

	msg, err := s.deps.Chat.SendToTrip(r.Context(), identity.Email, id, req.Body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

// ListTripMessages handles GET /trips/{tripID}/messages, oldest first.
func (s *Server) ListTripMessages(w http.ResponseWriter, r *http.Request) {
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

	msgs, err := s.deps.Chat.ListTrip(r.Context(), identity.Email, id, paginationParams(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": msgs})
}

// SendGlobalMessage handles POST /chat/messages.
func (s *Server) SendGlobalMessage(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(r)
	if !ok {
		s.writeError(w, r, domain.ErrUnauthorized)
		return
	}

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "request body must be valid JSON")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		requestError(w, "message body is required")
		return
	}

	msg, err := s.deps.Chat.SendGlobal(r.Context(), identity.Email, req.Body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

// ListGlobalMessages handles GET /chat/messages, oldest first.
func (s *Server) ListGlobalMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.deps.Chat.ListGlobal(r.Context(), paginationParams(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": msgs})
}
