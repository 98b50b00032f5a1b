package handler

import (
	"net/http"
)

// GetDestinationImage handles GET /images/destination?name=.
func (s *Server) GetDestinationImage(w http.ResponseWriter, r *http.Request) {
	url, err := s.deps.Images.DestinationImage(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// GetAccommodationImage handles GET /images/accommodation?name=.
func (s *Server) GetAccommodationImage(w http.ResponseWriter, r *http.Request) {
	url, err := s.deps.Images.AccommodationImage(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
