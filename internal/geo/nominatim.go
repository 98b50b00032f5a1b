package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// BoundingBox is a geographic rectangle. Nominatim returns the edges in
// south, north, west, east order; Overpass consumes them as
// south, west, north, east.
type BoundingBox struct {
	South, North, West, East float64
}

// Overpass renders the box in the "south,west,north,east" order Overpass
// QL expects.
func (b BoundingBox) Overpass() string {
	return fmt.Sprintf("%g,%g,%g,%g", b.South, b.West, b.North, b.East)
}

// Center returns the midpoint of the box. Destination distances are measured
// from here.
func (b BoundingBox) Center() (lat, lon float64) {
	return (b.South + b.North) / 2, (b.West + b.East) / 2
}

// validate rejects boxes with out-of-range edges.
func (b BoundingBox) validate() error {
	for _, lat := range []float64{b.South, b.North} {
		if math.IsNaN(lat) || lat < -90 || lat > 90 {
			return fmt.Errorf("latitude %g out of range", lat)
		}
	}
	for _, lon := range []float64{b.West, b.East} {
		if math.IsNaN(lon) || lon < -180 || lon > 180 {
			return fmt.Errorf("longitude %g out of range", lon)
		}
	}
	return nil
}

// NominatimClient resolves place names against the Nominatim geocoding API.
type NominatimClient struct {
	baseURL string
	http    *http.Client
}

// NewNominatimClient constructs a NominatimClient against baseURL.
func NewNominatimClient(baseURL string, client *http.Client) *NominatimClient {
	return &NominatimClient{baseURL: baseURL, http: client}
}

// nominatimPlace is the subset of a Nominatim search result we consume.
type nominatimPlace struct {
	DisplayName string   `json:"display_name"`
	Type        string   `json:"type"`
	BoundingBox []string `json:"boundingbox"` // [south, north, west, east] as strings
}

// CountryBoundingBox resolves a country name to its bounding box.
// Returns domain.ErrNotFound when Nominatim has no match.
func (c *NominatimClient) CountryBoundingBox(ctx context.Context, country string) (BoundingBox, error) {
	q := url.Values{
		"q":           {country},
		"format":      {"json"},
		"limit":       {"1"},
		"featuretype": {"country"},
	}
	places, err := c.search(ctx, q)
	if err != nil {
		return BoundingBox{}, fmt.Errorf("geo.NominatimClient.CountryBoundingBox: %w", err)
	}
	if len(places) == 0 {
		return BoundingBox{}, fmt.Errorf("geo.NominatimClient.CountryBoundingBox: %q: %w", country, domain.ErrNotFound)
	}
	box, err := parseBoundingBox(places[0].BoundingBox)
	if err != nil {
		return BoundingBox{}, fmt.Errorf("geo.NominatimClient.CountryBoundingBox: %q: %w", country, err)
	}
	return box, nil
}

// Address resolves a free-text place query to its display address.
// Returns domain.ErrNotFound when there is no match.
func (c *NominatimClient) Address(ctx context.Context, query string) (string, error) {
	q := url.Values{
		"q":      {query},
		"format": {"json"},
		"limit":  {"1"},
	}
	places, err := c.search(ctx, q)
	if err != nil {
		return "", fmt.Errorf("geo.NominatimClient.Address: %w", err)
	}
	if len(places) == 0 {
		return "", fmt.Errorf("geo.NominatimClient.Address: %q: %w", query, domain.ErrNotFound)
	}
	return places[0].DisplayName, nil
}

func (c *NominatimClient) search(ctx context.Context, q url.Values) ([]nominatimPlace, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkStatus("nominatim", resp); err != nil {
		return nil, err
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, err
	}
	return places, nil
}

// parseBoundingBox converts Nominatim's string-encoded
// [south, north, west, east] box into a validated BoundingBox.
func parseBoundingBox(raw []string) (BoundingBox, error) {
	if len(raw) != 4 {
		return BoundingBox{}, fmt.Errorf("bounding box has %d edges, want 4", len(raw))
	}
	vals := make([]float64, 4)
	for i, s := range raw {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return BoundingBox{}, fmt.Errorf("bounding box edge %q: %w", s, err)
		}
		vals[i] = v
	}
	box := BoundingBox{South: vals[0], North: vals[1], West: vals[2], East: vals[3]}
	if err := box.validate(); err != nil {
		return BoundingBox{}, err
	}
	return box, nil
}
