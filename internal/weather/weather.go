// Package weather fetches current conditions from OpenWeatherMap for the
// corner display. Failures fall back to the previous observation.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// Observation is one current-weather reading.
type Observation struct {
	Temperature float64 // Fahrenheit
	Condition   string  // "Clear", "Rain", ...
	IconCode    string  // "01d", "10n", ...
	Humidity    int
	Description string
	FetchedAt   time.Time
}

var icons = map[string]string{
	"01d": "☀️", "01n": "🌙",
	"02d": "⛅", "02n": "☁️",
	"03d": "☁️", "03n": "☁️",
	"04d": "☁️", "04n": "☁️",
	"09d": "🌧️", "09n": "🌧️",
	"10d": "🌦️", "10n": "🌧️",
	"11d": "⛈️", "11n": "⛈️",
	"13d": "❄️", "13n": "❄️",
	"50d": "🌫️", "50n": "🌫️",
}

// Icon returns the display glyph for the observation's icon code.
func (o Observation) Icon() string {
	if g, ok := icons[o.IconCode]; ok {
		return g
	}
	return "🌡️"
}

// TempDisplay formats the temperature for the corner badge.
func (o Observation) TempDisplay() string {
	return fmt.Sprintf("%d°F", int(o.Temperature+0.5))
}

type apiResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

// Client fetches observations and keeps the last good one.
type Client struct {
	apiKey   string
	lat, lon float64
	httpc    *http.Client
	baseURL  string

	mu     sync.Mutex
	cached *Observation
}

func New(apiKey string, lat, lon float64) *Client {
	return &Client{
		apiKey:  apiKey,
		lat:     lat,
		lon:     lon,
		httpc:   &http.Client{Timeout: 10 * time.Second},
		baseURL: defaultBaseURL,
	}
}

// NewWithBaseURL exists for tests against httptest servers.
func NewWithBaseURL(apiKey string, lat, lon float64, baseURL string) *Client {
	c := New(apiKey, lat, lon)
	c.baseURL = baseURL
	return c
}

// Fetch returns the current observation. On any request or parse failure
// it returns the previous cached observation (nil if none) and the
// error.
func (c *Client) Fetch(ctx context.Context) (*Observation, error) {
	if c.apiKey == "" {
		return c.Cached(), fmt.Errorf("weather: api key not configured")
	}

	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%g", c.lat))
	q.Set("lon", fmt.Sprintf("%g", c.lon))
	q.Set("appid", c.apiKey)
	q.Set("units", "imperial")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return c.Cached(), err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return c.Cached(), err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return c.Cached(), fmt.Errorf("weather: %s", resp.Status)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return c.Cached(), fmt.Errorf("weather: decode: %w", err)
	}
	if len(body.Weather) == 0 {
		return c.Cached(), fmt.Errorf("weather: empty conditions in response")
	}

	obs := &Observation{
		Temperature: body.Main.Temp,
		Condition:   body.Weather[0].Main,
		IconCode:    body.Weather[0].Icon,
		Humidity:    body.Main.Humidity,
		Description: body.Weather[0].Description,
		FetchedAt:   time.Now(),
	}

	c.mu.Lock()
	c.cached = obs
	c.mu.Unlock()

	log.Info().Str("temp", obs.TempDisplay()).Str("condition", obs.Condition).Msg("weather fetched")
	return obs, nil
}

// Cached returns the last good observation, or nil.
func (c *Client) Cached() *Observation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cached
}
