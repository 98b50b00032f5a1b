package service

import (
	"context"
	"sync"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// poiRadiusMeters is the search radius around each destination for the
// points-of-interest fan-out.
const poiRadiusMeters = 10000

// WeatherFetcher is the slice of the OpenWeatherMap client the enrichment
// service consumes.
type WeatherFetcher interface {
	Current(ctx context.Context, lat, lon float64) (domain.Weather, error)
}

// POIFetcher is the slice of the OpenTripMap client the enrichment service
// consumes.
type POIFetcher interface {
	Radius(ctx context.Context, lat, lon float64, radiusMeters int) ([]domain.PointOfInterest, error)
}

// EnrichmentService annotates destination lists with live weather and nearby
// points of interest. Both fan-outs run one fetch per destination in
// parallel, and a failed fetch marks only its own destination: the batch as a
// whole always succeeds. Either client may be nil when its API key is not
// configured, in which case every annotation carries an error.
type EnrichmentService struct {
	weather WeatherFetcher
	pois    POIFetcher
}

// NewEnrichmentService constructs an EnrichmentService. Pass nil for a
// client whose upstream API is not configured.
func NewEnrichmentService(weather WeatherFetcher, pois POIFetcher) *EnrichmentService {
	return &EnrichmentService{weather: weather, pois: pois}
}

const (
	weatherUnavailable = "weather data unavailable"
	poisUnavailable    = "points of interest unavailable"
)

// AnnotateWeather returns dests in input order, each annotated with its
// current weather or a per-destination error.
func (s *EnrichmentService) AnnotateWeather(ctx context.Context, dests []domain.Destination) []domain.DestinationWeather {
	out := make([]domain.DestinationWeather, len(dests))
	for i, d := range dests {
		out[i].Destination = d
	}
	if s.weather == nil {
		for i := range out {
			out[i].Weather.Error = weatherUnavailable
		}
		return out
	}

	var wg sync.WaitGroup
	for i := range out {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d := out[i].Destination
			w, err := s.weather.Current(ctx, d.Lat, d.Lon)
			if err != nil {
				out[i].Weather.Error = weatherUnavailable
				return
			}
			out[i].Weather.Data = &w
		}(i)
	}
	wg.Wait()
	return out
}

// CollectPOIs returns dests in input order, each carrying the named features
// found nearby, tagged with the destination they were fetched for.
func (s *EnrichmentService) CollectPOIs(ctx context.Context, dests []domain.Destination) []domain.DestinationPOIs {
	out := make([]domain.DestinationPOIs, len(dests))
	for i, d := range dests {
		out[i].Destination = d
		out[i].Points = []domain.PointOfInterest{}
	}
	if s.pois == nil {
		for i := range out {
			out[i].Error = poisUnavailable
		}
		return out
	}

	var wg sync.WaitGroup
	for i := range out {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d := out[i].Destination
			points, err := s.pois.Radius(ctx, d.Lat, d.Lon, poiRadiusMeters)
			if err != nil {
				out[i].Error = poisUnavailable
				return
			}
			for j := range points {
				points[j].Destination = d.Name
			}
			out[i].Points = points
		}(i)
	}
	wg.Wait()
	return out
}

// FlattenPOIs merges the per-destination results into one list, preserving
// the per-destination tag. Failed destinations contribute nothing.
func FlattenPOIs(results []domain.DestinationPOIs) []domain.PointOfInterest {
	flat := []domain.PointOfInterest{}
	for _, r := range results {
		flat = append(flat, r.Points...)
	}
	return flat
}
