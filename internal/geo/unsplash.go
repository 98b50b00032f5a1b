package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// UnsplashClient searches Unsplash for destination/accommodation thumbnails.
type UnsplashClient struct {
	baseURL   string
	accessKey string
	http      *http.Client
}

// NewUnsplashClient constructs an UnsplashClient against baseURL using accessKey.
func NewUnsplashClient(baseURL, accessKey string, client *http.Client) *UnsplashClient {
	return &UnsplashClient{baseURL: baseURL, accessKey: accessKey, http: client}
}

// FirstPhotoURL returns the regular-size URL of the top search result for
// query. Returns domain.ErrNotFound when the search matches nothing.
func (c *UnsplashClient) FirstPhotoURL(ctx context.Context, query string) (string, error) {
	q := url.Values{
		"query":     {query},
		"per_page":  {"1"},
		"client_id": {c.accessKey},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search/photos?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("geo.UnsplashClient.FirstPhotoURL: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("geo.UnsplashClient.FirstPhotoURL: %w", err)
	}
	defer resp.Body.Close()
	if err := checkStatus("unsplash", resp); err != nil {
		return "", fmt.Errorf("geo.UnsplashClient.FirstPhotoURL: %w", err)
	}

	var parsed struct {
		Results []struct {
			URLs struct {
				Regular string `json:"regular"`
			} `json:"urls"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("geo.UnsplashClient.FirstPhotoURL: %w", err)
	}
	if len(parsed.Results) == 0 || parsed.Results[0].URLs.Regular == "" {
		return "", fmt.Errorf("geo.UnsplashClient.FirstPhotoURL: %q: %w", query, domain.ErrNotFound)
	}
	return parsed.Results[0].URLs.Regular, nil
}
