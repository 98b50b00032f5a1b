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

// WeatherClient fetches current conditions from OpenWeatherMap.
type WeatherClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewWeatherClient constructs a WeatherClient against baseURL using apiKey.
func NewWeatherClient(baseURL, apiKey string, client *http.Client) *WeatherClient {
	return &WeatherClient{baseURL: baseURL, apiKey: apiKey, http: client}
}

// Current returns the current weather at the given coordinate, in metric
// units.
func (c *WeatherClient) Current(ctx context.Context, lat, lon float64) (domain.Weather, error) {
	q := url.Values{
		"lat":   {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":   {strconv.FormatFloat(lon, 'f', -1, 64)},
		"units": {"metric"},
		"appid": {c.apiKey},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/data/2.5/weather?"+q.Encode(), nil)
	if err != nil {
		return domain.Weather{}, fmt.Errorf("geo.WeatherClient.Current: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Weather{}, fmt.Errorf("geo.WeatherClient.Current: %w", err)
	}
	defer resp.Body.Close()
	if err := checkStatus("openweathermap", resp); err != nil {
		return domain.Weather{}, fmt.Errorf("geo.WeatherClient.Current: %w", err)
	}

	var parsed struct {
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return domain.Weather{}, fmt.Errorf("geo.WeatherClient.Current: %w", err)
	}

	w := domain.Weather{TempC: parsed.Main.Temp}
	if len(parsed.Weather) > 0 {
		w.Description = parsed.Weather[0].Description
	}
	return w, nil
}
