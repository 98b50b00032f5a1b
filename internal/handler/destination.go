package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/service"
)

// destinationFilter reads the shared ?country=, ?type=, and
// ?max_distance_km= query values.
func destinationFilter(r *http.Request) domain.DestinationFilter {
	q := r.URL.Query()
	f := domain.DestinationFilter{
		Country: q.Get("country"),
		Type:    q.Get("type"),
	}
	if v, err := strconv.ParseFloat(q.Get("max_distance_km"), 64); err == nil && v > 0 {
		f.MaxDistanceKm = v
	}
	return f
}

// ListDestinations handles GET /destinations. With only ?country= it returns
// the whole catalog; ?type= and ?max_distance_km= narrow it.
func (s *Server) ListDestinations(w http.ResponseWriter, r *http.Request) {
	dests, err := s.deps.Destinations.Filter(r.Context(), destinationFilter(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": dests})
}

// GetDestinationDetails handles GET /destinations/details?country=&name=.
func (s *Server) GetDestinationDetails(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	dest, err := s.deps.Destinations.Details(r.Context(), q.Get("country"), q.Get("name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dest)
}

// ListDestinationWeather handles GET /destinations/weather. It filters the
// catalog like ListDestinations, then annotates each destination with its
// current weather. Upstream weather failures never fail the request; they
// surface as per-destination error strings.
func (s *Server) ListDestinationWeather(w http.ResponseWriter, r *http.Request) {
	dests, err := s.deps.Destinations.Filter(r.Context(), destinationFilter(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data": s.deps.Enrich.AnnotateWeather(r.Context(), dests),
	})
}

// enrichRequest is the body for POST /destinations/enrich: a client-supplied
// destination list plus flags selecting which annotations to fetch.
type enrichRequest struct {
	Destinations []domain.Destination `json:"destinations"`
	Weather      bool                 `json:"weather"`
	POIs         bool                 `json:"pois"`
}

// EnrichDestinations handles POST /destinations/enrich. Unlike the GET
// endpoints it annotates a list the client already holds, so filtering has
// already happened client-side. With weather off the list passes through
// with empty annotations; with pois off the pois and points keys are omitted
// entirely.
func (s *Server) EnrichDestinations(w http.ResponseWriter, r *http.Request) {
	var req enrichRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "request body must be valid JSON")
		return
	}

	resp := map[string]any{}

	if req.Weather {
		resp["weather"] = s.deps.Enrich.AnnotateWeather(r.Context(), req.Destinations)
	} else {
		bare := make([]domain.DestinationWeather, len(req.Destinations))
		for i, d := range req.Destinations {
			bare[i].Destination = d
		}
		resp["weather"] = bare
	}

	if req.POIs {
		results := s.deps.Enrich.CollectPOIs(r.Context(), req.Destinations)
		resp["pois"] = results
		resp["points"] = service.FlattenPOIs(results)
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListDestinationPOIs handles GET /destinations/pois. The response carries
// both the per-destination results and the flattened point list the map view
// plots directly.
func (s *Server) ListDestinationPOIs(w http.ResponseWriter, r *http.Request) {
	dests, err := s.deps.Destinations.Filter(r.Context(), destinationFilter(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	results := s.deps.Enrich.CollectPOIs(r.Context(), dests)
	writeJSON(w, http.StatusOK, map[string]any{
		"data":   results,
		"points": service.FlattenPOIs(results),
	})
}
