package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/repo"
)

// PhotoSearcher is the slice of the Unsplash client the image service
// consumes.
type PhotoSearcher interface {
	FirstPhotoURL(ctx context.Context, query string) (string, error)
}

// thumbnailParams is appended to every stored Unsplash URL so clients get a
// consistently sized thumbnail.
const thumbnailParams = "&w=300&h=200"

// placeholderBase serves a gray box labeled with the query when no photo can
// be found. Placeholder URLs are never written to the cache, so a later
// request retries the search.
const placeholderBase = "https://via.placeholder.com/300x200?text="

// ImageService resolves home-page thumbnails for destinations and
// accommodations. Resolved URLs are cached in the database forever; lookups
// that fail fall back to a placeholder without poisoning the cache.
type ImageService struct {
	images repo.ImageRepo
	photos PhotoSearcher
	log    *slog.Logger
}

// NewImageService constructs an ImageService. Pass a nil PhotoSearcher when
// the Unsplash API is not configured; every uncached lookup then yields a
// placeholder.
func NewImageService(images repo.ImageRepo, photos PhotoSearcher, logger *slog.Logger) *ImageService {
	return &ImageService{images: images, photos: photos, log: logger}
}

// DestinationImage returns a thumbnail URL for a destination name.
func (s *ImageService) DestinationImage(ctx context.Context, name string) (string, error) {
	return s.resolve(ctx, "dest_"+name, name)
}

// AccommodationImage returns a thumbnail URL for an accommodation name.
func (s *ImageService) AccommodationImage(ctx context.Context, name string) (string, error) {
	return s.resolve(ctx, "acc_"+name, name)
}

func (s *ImageService) resolve(ctx context.Context, key, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	if cached, err := s.images.Get(ctx, key); err == nil {
		return cached, nil
	}

	if s.photos == nil {
		return placeholder(query), nil
	}
	photoURL, err := s.photos.FirstPhotoURL(ctx, query)
	if err != nil {
		s.log.WarnContext(ctx, "image search failed, serving placeholder",
			slog.String("query", query),
			slog.String("error", err.Error()),
		)
		return placeholder(query), nil
	}

	photoURL += thumbnailParams
	if err := s.images.Put(ctx, key, photoURL); err != nil {
		// Serving the image matters more than caching it.
		s.log.WarnContext(ctx, "image cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
	return photoURL, nil
}

func placeholder(query string) string {
	return placeholderBase + url.QueryEscape(query)
}
