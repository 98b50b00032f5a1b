package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/travel-planner/backend/internal/cache"
	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/geo"
)

// Geocoder is the slice of the Nominatim client the destination catalog
// consumes. Declared here so tests can substitute a fake.
type Geocoder interface {
	CountryBoundingBox(ctx context.Context, country string) (geo.BoundingBox, error)
	Address(ctx context.Context, query string) (string, error)
}

// FeatureSource is the slice of the Overpass client the destination catalog
// consumes.
type FeatureSource interface {
	Query(ctx context.Context, ql string) ([]geo.Element, error)
}

// DestinationService builds the per-country destination catalog: geocode the
// country to a bounding box, pull named OSM features inside it, classify
// them, and memoize the result. Catalog entries are ephemeral; nothing here
// touches the database.
type DestinationService struct {
	geocoder Geocoder
	features FeatureSource
	memo     *cache.TTL[[]domain.Destination]
}

// NewDestinationService constructs a DestinationService memoizing results in
// memo.
func NewDestinationService(geocoder Geocoder, features FeatureSource, memo *cache.TTL[[]domain.Destination]) *DestinationService {
	return &DestinationService{geocoder: geocoder, features: features, memo: memo}
}

// ByCountry returns the destination catalog for a country, serving from the
// memo when fresh. When the broad feature query matches nothing it retries
// with a major-cities-only query before giving up.
// Returns domain.ErrValidation for an empty country, domain.ErrNotFound when
// the country cannot be geocoded or yields no destinations at all.
func (s *DestinationService) ByCountry(ctx context.Context, country string) ([]domain.Destination, error) {
	country = strings.TrimSpace(country)
	if country == "" {
		return nil, fmt.Errorf("%w: country is required", domain.ErrValidation)
	}

	key := strings.ToLower(country)
	if cached, ok := s.memo.Get(key); ok {
		return cached, nil
	}

	box, err := s.geocoder.CountryBoundingBox(ctx, country)
	if err != nil {
		return nil, fmt.Errorf("service.DestinationService.ByCountry: %w", err)
	}

	elements, err := s.features.Query(ctx, destinationsQL(box))
	if err != nil {
		return nil, fmt.Errorf("service.DestinationService.ByCountry: %w", err)
	}
	dests := mapDestinations(elements, country, box)

	if len(dests) == 0 {
		elements, err = s.features.Query(ctx, majorCitiesQL(box))
		if err != nil {
			return nil, fmt.Errorf("service.DestinationService.ByCountry: %w", err)
		}
		dests = mapDestinations(elements, country, box)
	}
	if len(dests) == 0 {
		return nil, fmt.Errorf("service.DestinationService.ByCountry: %q: %w", country, domain.ErrNotFound)
	}

	s.memo.Set(key, dests)
	return dests, nil
}

// Filter narrows a country's catalog by type and distance. Type matches
// case-insensitively; MaxDistanceKm of 0 means no distance limit. An empty
// result is a valid outcome, not an error.
func (s *DestinationService) Filter(ctx context.Context, f domain.DestinationFilter) ([]domain.Destination, error) {
	dests, err := s.ByCountry(ctx, f.Country)
	if err != nil {
		return nil, err
	}

	wantType := strings.TrimSpace(f.Type)
	filtered := make([]domain.Destination, 0, len(dests))
	for _, d := range dests {
		if wantType != "" && !strings.EqualFold(d.Type, wantType) {
			continue
		}
		if f.MaxDistanceKm > 0 && d.DistanceKm > f.MaxDistanceKm {
			continue
		}
		filtered = append(filtered, d)
	}
	return filtered, nil
}

// Details returns one destination from a country's catalog by name,
// enriched with its geocoded street address. The address lookup is
// best-effort: when it fails the destination is returned without one.
func (s *DestinationService) Details(ctx context.Context, country, name string) (domain.Destination, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Destination{}, fmt.Errorf("%w: destination name is required", domain.ErrValidation)
	}

	dests, err := s.ByCountry(ctx, country)
	if err != nil {
		return domain.Destination{}, err
	}

	for _, d := range dests {
		if strings.EqualFold(d.Name, name) {
			if addr, err := s.geocoder.Address(ctx, d.Name+", "+d.Country); err == nil {
				d.Address = addr
			}
			return d, nil
		}
	}
	return domain.Destination{}, fmt.Errorf("service.DestinationService.Details: %q: %w", name, domain.ErrNotFound)
}

// destinationsQL is the broad catalog query: settlements, beaches, mountains,
// historic sites, and natural attractions inside the bounding box.
func destinationsQL(box geo.BoundingBox) string {
	b := box.Overpass()
	return fmt.Sprintf(`[out:json][timeout:90];
(
  node["place"~"city|town"](%[1]s);
  way["place"~"city|town"](%[1]s);
  node["natural"~"beach|coastline"](%[1]s);
  way["natural"~"beach|coastline"](%[1]s);
  node["leisure"~"beach_resort|beach"](%[1]s);
  way["leisure"~"beach_resort|beach"](%[1]s);
  node["tourism"="beach"](%[1]s);
  way["tourism"="beach"](%[1]s);
  node["natural"~"peak|volcano|mountain"](%[1]s);
  way["natural"~"peak|volcano|mountain"](%[1]s);
  node["historic"](%[1]s);
  way["historic"](%[1]s);
  node["natural"~"spring|waterfall"](%[1]s);
  way["natural"~"spring|waterfall"](%[1]s);
);
out center;`, b)
}

// majorCitiesQL is the fallback query for countries where the broad query
// comes back empty.
func majorCitiesQL(box geo.BoundingBox) string {
	b := box.Overpass()
	return fmt.Sprintf(`[out:json][timeout:90];
(
  node["place"="city"](%[1]s);
  way["place"="city"](%[1]s);
);
out center;`, b)
}

// mapDestinations converts OSM elements to catalog entries. Nameless or
// coordinate-less elements are dropped; distance is measured from the
// bounding-box center.
func mapDestinations(elements []geo.Element, country string, box geo.BoundingBox) []domain.Destination {
	centerLat, centerLon := box.Center()

	dests := make([]domain.Destination, 0, len(elements))
	for _, el := range elements {
		name := el.Tags["name"]
		if name == "" {
			continue
		}
		lat, lon, ok := el.Coordinates()
		if !ok {
			continue
		}

		dests = append(dests, domain.Destination{
			Name:         name,
			Country:      country,
			Type:         classify(el.Tags),
			Lat:          lat,
			Lon:          lon,
			DistanceKm:   geo.DistanceKm(centerLat, centerLon, lat, lon),
			Description:  el.Tags["description"],
			WikipediaURL: wikipediaURL(el.Tags["wikipedia"]),
		})
	}
	return dests
}

// classify buckets an element by its tags. Order matters: a tagged beach
// stays a Beach even when it also carries a historic or natural tag.
func classify(tags map[string]string) string {
	switch {
	case tags["natural"] == "beach" || tags["natural"] == "coastline" ||
		tags["leisure"] == "beach" || tags["leisure"] == "beach_resort" ||
		tags["tourism"] == "beach" || tags["amenity"] == "beach":
		return "Beach"
	case tags["natural"] == "peak" || tags["natural"] == "mountain" || tags["natural"] == "volcano":
		return "Mountain"
	case tags["historic"] != "":
		return "Historic"
	case tags["natural"] != "":
		return "Natural"
	default:
		return "City"
	}
}

// wikipediaURL turns an OSM "lang:Article" wikipedia tag into a link.
func wikipediaURL(tag string) string {
	if tag == "" {
		return ""
	}
	if _, article, found := strings.Cut(tag, ":"); found {
		return "https://en.wikipedia.org/wiki/" + article
	}
	return "https://en.wikipedia.org/wiki/" + tag
}
