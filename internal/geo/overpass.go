package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
)

// OverpassClient queries the Overpass OSM feature API with raw Overpass QL.
type OverpassClient struct {
	baseURL string
	http    *http.Client
}

// NewOverpassClient constructs an OverpassClient against baseURL.
func NewOverpassClient(baseURL string, client *http.Client) *OverpassClient {
	return &OverpassClient{baseURL: baseURL, http: client}
}

// Element is one OSM node or way from an Overpass response. Ways carry their
// coordinates in Center; nodes carry them in Lat/Lon.
type Element struct {
	Type   string            `json:"type"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"center"`
	Tags map[string]string `json:"tags"`
}

// Coordinates returns the element's position and whether it has a usable one.
// Nodes use lat/lon directly; ways fall back to their computed center.
func (e Element) Coordinates() (lat, lon float64, ok bool) {
	switch e.Type {
	case "node":
		if e.Lat == 0 && e.Lon == 0 {
			return 0, 0, false
		}
		return e.Lat, e.Lon, true
	case "way":
		if e.Center == nil || (e.Center.Lat == 0 && e.Center.Lon == 0) {
			return 0, 0, false
		}
		return e.Center.Lat, e.Center.Lon, true
	}
	return 0, 0, false
}

// Query posts an Overpass QL program and returns the matched elements.
func (c *OverpassClient) Query(ctx context.Context, ql string) ([]Element, error) {
	body := strings.NewReader("data=" + url.QueryEscape(ql))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/interpreter", body)
	if err != nil {
		return nil, fmt.Errorf("geo.OverpassClient.Query: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geo.OverpassClient.Query: %w", err)
	}
	defer resp.Body.Close()
	if err := checkStatus("overpass", resp); err != nil {
		return nil, fmt.Errorf("geo.OverpassClient.Query: %w", err)
	}

	var parsed struct {
		Elements []Element `json:"elements"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("geo.OverpassClient.Query: %w", err)
	}
	return parsed.Elements, nil
}

// haversineMeters returns the great-circle distance between two coordinates
// in meters.
func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371000.0
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	la1 := lat1 * math.Pi / 180
	la2 := lat2 * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(la1)*math.Cos(la2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadius * c
}
