package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// ImageRepo defines the persistence operations for the home-page image cache.
// Keys are synthetic ("dest_<name>" / "acc_<name>"); entries never expire.
type ImageRepo interface {
	// Get returns the cached URL for key.
	// Returns domain.ErrNotFound on a cache miss.
	Get(ctx context.Context, key string) (string, error)

	// Put stores the URL for key, overwriting any existing entry.
	Put(ctx context.Context, key, url string) error
}

// pgImageRepo is the Postgres implementation of ImageRepo.
type pgImageRepo struct {
	db db
}

// NewImageRepo constructs an ImageRepo backed by the provided db connection.
func NewImageRepo(db db) ImageRepo {
	return &pgImageRepo{db: db}
}

func (r *pgImageRepo) Get(ctx context.Context, key string) (string, error) {
	const q = `SELECT url FROM home_images WHERE key = @key`

	var url string
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"key": key}).Scan(&url)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("repo.ImageRepo.Get: %w", domain.ErrNotFound)
		}
		return "", fmt.Errorf("repo.ImageRepo.Get: %w", err)
	}
	return url, nil
}

func (r *pgImageRepo) Put(ctx context.Context, key, url string) error {
	const q = `
		INSERT INTO home_images (key, url)
		VALUES (@key, @url)
		ON CONFLICT (key) DO UPDATE SET url = EXCLUDED.url`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"key": key, "url": url}); err != nil {
		return fmt.Errorf("repo.ImageRepo.Put: %w", err)
	}
	return nil
}
