package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// tripRequest is the body for POST /trips. Dates are date-only strings
// (2026-06-01); itinerary days arrive in display order and are renumbered
// server-side.
type tripRequest struct {
	Name        string                `json:"name" validate:"required"`
	Destination string                `json:"destination"`
	StartDate   *openapi_types.Date   `json:"start_date"`
	EndDate     *openapi_types.Date   `json:"end_date"`
	Itinerary   []domain.ItineraryDay `json:"itinerary"`
}

// tripUpdateRequest is the body for PUT /trips/{tripID}. Absent fields keep
// their stored values; a present itinerary replaces the whole array.
type tripUpdateRequest struct {
	Name        *string                `json:"name"`
	Destination *string                `json:"destination"`
	StartDate   *openapi_types.Date    `json:"start_date"`
	EndDate     *openapi_types.Date    `json:"end_date"`
	Itinerary   *[]domain.ItineraryDay `json:"itinerary"`
}

// tripResponse is the wire form of a trip.
type tripResponse struct {
	ID            uuid.UUID             `json:"id"`
	Name          string                `json:"name"`
	Destination   string                `json:"destination"`
	StartDate     *openapi_types.Date   `json:"start_date,omitempty"`
	EndDate       *openapi_types.Date   `json:"end_date,omitempty"`
	Itinerary     []domain.ItineraryDay `json:"itinerary"`
	Collaborators []string              `json:"collaborators"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(r)
	if !ok {
		s.writeError(w, r, domain.ErrUnauthorized)
		return
	}

	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "request body must be valid JSON")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		requestError(w, "name is required")
		return
	}

	created, err := s.deps.Trips.Create(r.Context(), identity.Email, requestToTrip(req))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips. Only the caller's trips are visible; the
// list is ordered newest first.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(r)
	if !ok {
		s.writeError(w, r, domain.ErrUnauthorized)
		return
	}

	trips, err := s.deps.Trips.List(r.Context(), identity.Email)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data := make([]tripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": data})
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
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

	trip, err := s.deps.Trips.Get(r.Context(), identity.Email, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PUT /trips/{tripID}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
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

	var req tripUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "request body must be valid JSON")
		return
	}

	updated, err := s.deps.Trips.Update(r.Context(), identity.Email, id, requestToTripUpdate(req))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /trips/{tripID}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
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

	if err := s.deps.Trips.Delete(r.Context(), identity.Email, id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// InviteCollaborator handles POST /trips/{tripID}/invite.
func (s *Server) InviteCollaborator(w http.ResponseWriter, r *http.Request) {
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

	var req struct {
		Email string `json:"email" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "request body must be valid JSON")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		requestError(w, "email is required")
		return
	}

	updated, err := s.deps.Trips.Invite(r.Context(), identity.Email, id, req.Email)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// ListTripActivities handles GET /trips/{tripID}/activities.
func (s *Server) ListTripActivities(w http.ResponseWriter, r *http.Request) {
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

	entries, err := s.deps.Activities.List(r.Context(), identity.Email, id, paginationParams(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": entries})
}

// --- mapping helpers --------------------------------------------------------

func requestToTrip(req tripRequest) domain.Trip {
	t := domain.Trip{
		Name:        req.Name,
		Destination: req.Destination,
		Itinerary:   req.Itinerary,
	}
	if req.StartDate != nil {
		sd := req.StartDate.Time
		t.StartDate = &sd
	}
	if req.EndDate != nil {
		ed := req.EndDate.Time
		t.EndDate = &ed
	}
	return t
}

func requestToTripUpdate(req tripUpdateRequest) domain.TripUpdate {
	upd := domain.TripUpdate{
		Name:        req.Name,
		Destination: req.Destination,
		Itinerary:   req.Itinerary,
	}
	if req.StartDate != nil {
		sd := req.StartDate.Time
		upd.StartDate = &sd
	}
	if req.EndDate != nil {
		ed := req.EndDate.Time
		upd.EndDate = &ed
	}
	return upd
}

func tripToResponse(t domain.Trip) tripResponse {
	resp := tripResponse{
		ID:            t.ID,
		Name:          t.Name,
		Destination:   t.Destination,
		Itinerary:     t.Itinerary,
		Collaborators: t.Collaborators,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
	if t.StartDate != nil {
		resp.StartDate = &openapi_types.Date{Time: *t.StartDate}
	}
	if t.EndDate != nil {
		resp.EndDate = &openapi_types.Date{Time: *t.EndDate}
	}
	return resp
}

// tripIDParam parses the {tripID} path segment.
func tripIDParam(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "tripID"))
}

// paginationParams reads optional ?page= and ?limit= query values.
func paginationParams(r *http.Request) domain.PaginationParams {
	var page, limit *int
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		page = &v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		limit = &v
	}
	return domain.NewPaginationParams(page, limit)
}
