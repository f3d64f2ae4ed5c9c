package infra

// openweather.go — HTTP client for the OpenWeather APIs: forward geocoding,
// current conditions, and the one-call "time machine" for daily history.
// All coordinates are WGS84 degrees; temperatures are metric.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sankalp-nadiger/Auditryx/internal/dto"
)

// ErrPlaceNotFound is returned when forward geocoding yields no match.
var ErrPlaceNotFound = errors.New("place not found")

// OpenWeatherClient talks to api.openweathermap.org.
type OpenWeatherClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewOpenWeatherClient(apiKey, baseURL string) *OpenWeatherClient {
	return &OpenWeatherClient{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Resolve geocodes a place name (city or country) to coordinates.
func (c *OpenWeatherClient) Resolve(ctx context.Context, place string) (float64, float64, error) {
	u := fmt.Sprintf("%s/geo/1.0/direct?q=%s&limit=1&appid=%s",
		c.baseURL, url.QueryEscape(place), c.apiKey)

	var matches []struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	}
	if err := c.getJSON(ctx, u, &matches); err != nil {
		return 0, 0, fmt.Errorf("openweather: geocode %q: %w", place, err)
	}
	if len(matches) == 0 {
		return 0, 0, fmt.Errorf("openweather: geocode %q: %w", place, ErrPlaceNotFound)
	}
	return matches[0].Lat, matches[0].Lon, nil
}

// Current fetches the current conditions at a coordinate.
func (c *OpenWeatherClient) Current(ctx context.Context, lat, lon float64) (*dto.CurrentConditions, error) {
	u := fmt.Sprintf("%s/data/2.5/weather?lat=%f&lon=%f&appid=%s&units=metric",
		c.baseURL, lat, lon, c.apiKey)

	var payload struct {
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Main struct {
			Temp     float64  `json:"temp"`
			Humidity *float64 `json:"humidity"`
		} `json:"main"`
	}
	if err := c.getJSON(ctx, u, &payload); err != nil {
		return nil, fmt.Errorf("openweather: current conditions: %w", err)
	}
	if len(payload.Weather) == 0 {
		return nil, errors.New("openweather: current conditions: empty weather block")
	}
	return &dto.CurrentConditions{
		Condition:   payload.Weather[0].Description,
		Temperature: payload.Main.Temp,
		Humidity:    payload.Main.Humidity,
	}, nil
}

// History fetches one reading per day for the past `days` days via the
// time-machine endpoint. Days the upstream cannot serve are skipped — a
// shorter slice is not an error.
func (c *OpenWeatherClient) History(ctx context.Context, lat, lon float64, days int) ([]dto.DailyConditions, error) {
	end := time.Now().Unix()
	results := make([]dto.DailyConditions, 0, days)

	for i := 1; i <= days; i++ {
		ts := end - int64(i)*86400
		u := fmt.Sprintf("%s/data/3.0/onecall/timemachine?lat=%f&lon=%f&dt=%d&appid=%s&units=metric",
			c.baseURL, lat, lon, ts, c.apiKey)

		var payload struct {
			Current *struct {
				Temp     *float64 `json:"temp"`
				Humidity *float64 `json:"humidity"`
				Weather  []struct {
					Description string `json:"description"`
				} `json:"weather"`
			} `json:"current"`
		}
		if err := c.getJSON(ctx, u, &payload); err != nil || payload.Current == nil {
			continue
		}

		condition := ""
		if len(payload.Current.Weather) > 0 {
			condition = payload.Current.Weather[0].Description
		}
		results = append(results, dto.DailyConditions{
			Date:        time.Unix(ts, 0).Format("2006-01-02"),
			Temperature: payload.Current.Temp,
			Condition:   condition,
			Humidity:    payload.Current.Humidity,
		})
	}
	return results, nil
}

func (c *OpenWeatherClient) getJSON(ctx context.Context, rawURL string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream returned %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}
