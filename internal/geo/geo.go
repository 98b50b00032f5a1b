// Package geo contains the HTTP clients for the third-party geographic and
// media APIs: Nominatim (geocoding), Overpass (OSM feature queries),
// OpenWeatherMap, OpenTripMap (points of interest), and Unsplash (images).
//
// Each client takes its base URL and an *http.Client at construction so tests
// can point it at an httptest.Server. No client retries, backs off, or
// enforces a timeout of its own; failures are returned to the caller, which
// decides whether they are per-item annotations or hard errors.
package geo

import (
	"fmt"
	"net/http"
)

// userAgent identifies this service to Nominatim, which requires a custom
// User-Agent for API access.
const userAgent = "travel-planner/1.0"

// checkStatus returns an error for non-2xx responses, naming the API.
func checkStatus(api string, resp *http.Response) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s: status %d", api, resp.StatusCode)
	}
	return nil
}

// DistanceKm returns the great-circle distance between two coordinates in
// kilometers.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	return haversineMeters(lat1, lon1, lat2, lon2) / 1000
}
