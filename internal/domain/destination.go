package domain

// Destination is an ephemeral record produced from geocoding/OSM-derived
// data. Destinations are never persisted; they live only in the per-country
// in-memory cache for the lifetime of the process.
type Destination struct {
	Name         string  `json:"name"`
	Country      string  `json:"country"`
	Type         string  `json:"type"` // City, Beach, Mountain, Historic, Natural
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	DistanceKm   float64 `json:"distance_km"` // from the country's bounding-box center
	Description  string  `json:"description,omitempty"`
	WikipediaURL string  `json:"wikipedia_url,omitempty"`
	Address      string  `json:"address,omitempty"` // populated by the details lookup only
}

// DestinationFilter narrows a country's destination list. Type matches exactly
// but case-insensitively; MaxDistanceKm of 0 means no distance limit.
// An empty result is a valid, non-error outcome.
type DestinationFilter struct {
	Country       string
	Type          string
	MaxDistanceKm float64
}

// Weather is the current conditions at a coordinate.
type Weather struct {
	TempC       float64 `json:"temp_c"`
	Description string  `json:"description"`
}

// WeatherAnnotation is the tri-state weather result attached to one
// destination: at most one of Data and Error is set, and Loading is true only
// while a fetch is in flight.
type WeatherAnnotation struct {
	Loading bool     `json:"loading"`
	Data    *Weather `json:"data,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// DestinationWeather is a destination annotated with its weather tri-state.
type DestinationWeather struct {
	Destination
	Weather WeatherAnnotation `json:"weather"`
}

// PointOfInterest is a named feature near a destination, tagged with the
// destination it was fetched for.
type PointOfInterest struct {
	Name        string  `json:"name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Destination string  `json:"destination"`
}

// DestinationPOIs is the per-destination result of the points-of-interest
// fan-out. A failed fetch yields an empty Points list and a non-empty Error;
// it never fails the batch.
type DestinationPOIs struct {
	Destination
	Points []PointOfInterest `json:"points"`
	Error  string            `json:"error,omitempty"`
}
