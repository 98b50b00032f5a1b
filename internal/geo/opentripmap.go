package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// poiKinds is the OpenTripMap category filter applied to every radius query.
const poiKinds = "interesting_places,tourist_attraction"

// POIClient fetches named points of interest from OpenTripMap.
type POIClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewPOIClient constructs a POIClient against baseURL using apiKey.
func NewPOIClient(baseURL, apiKey string, client *http.Client) *POIClient {
	return &POIClient{baseURL: baseURL, apiKey: apiKey, http: client}
}

// Radius returns the named features within radiusMeters of the coordinate.
// Nameless features are dropped. The Destination field of each result is
// left empty; the aggregator tags it with the originating destination.
func (c *POIClient) Radius(ctx context.Context, lat, lon float64, radiusMeters int) ([]domain.PointOfInterest, error) {
	q := url.Values{
		"radius": {strconv.Itoa(radiusMeters)},
		"lon":    {strconv.FormatFloat(lon, 'f', -1, 64)},
		"lat":    {strconv.FormatFloat(lat, 'f', -1, 64)},
		"kinds":  {poiKinds},
		"apikey": {c.apiKey},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/0.1/en/places/radius?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("geo.POIClient.Radius: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geo.POIClient.Radius: %w", err)
	}
	defer resp.Body.Close()
	if err := checkStatus("opentripmap", resp); err != nil {
		return nil, fmt.Errorf("geo.POIClient.Radius: %w", err)
	}

	// GeoJSON: coordinates are [longitude, latitude].
	var parsed struct {
		Features []struct {
			Properties struct {
				Name string `json:"name"`
			} `json:"properties"`
			Geometry struct {
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"features"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("geo.POIClient.Radius: %w", err)
	}

	pois := make([]domain.PointOfInterest, 0, len(parsed.Features))
	for _, f := range parsed.Features {
		if f.Properties.Name == "" || len(f.Geometry.Coordinates) < 2 {
			continue
		}
		pois = append(pois, domain.PointOfInterest{
			Name: f.Properties.Name,
			Lat:  f.Geometry.Coordinates[1],
			Lon:  f.Geometry.Coordinates[0],
		})
	}
	return pois, nil
}
