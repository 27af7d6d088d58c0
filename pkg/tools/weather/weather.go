// Package weather answers "what's the weather in X" with the current
// conditions from Open-Meteo, after geocoding X with Nominatim.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"ai-tutor-be/pkg/textnorm"
)

var ErrCityNotFound = errors.New("city not found")

type Report struct {
	City        string  `json:"city"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Temperature float64 `json:"temperature"` // °C
	WindSpeed   float64 `json:"wind_speed"`  // km/h
	WeatherCode int     `json:"weather_code"`
	Time        string  `json:"time"`
}

type Config struct {
	GeocodeURL  string
	ForecastURL string
	UserAgent   string
	DefaultCity string
	Timeout     time.Duration
}

func DefaultConfig() Config {
	return Config{
		GeocodeURL:  "https://nominatim.openstreetmap.org/search",
		ForecastURL: "https://api.open-meteo.com/v1/forecast",
		UserAgent:   "ai-tutor/1.0 (education use)",
		DefaultCity: "Paris",
		Timeout:     15 * time.Second,
	}
}

type coordinates struct {
	lat, lon float64
}

// presets answer for a few large cities when geocoding is unavailable
var presets = map[string]coordinates{
	"paris":     {48.8566, 2.3522},
	"lyon":      {45.7640, 4.8357},
	"marseille": {43.2965, 5.3698},
	"evry":      {48.6239, 2.4289},
	"rennes":    {48.1173, -1.6778},
}

type Client struct {
	cfg    Config
	client *http.Client
}

func NewClient(cfg Config) *Client {
	def := DefaultConfig()
	if cfg.GeocodeURL == "" {
		cfg.GeocodeURL = def.GeocodeURL
	}
	if cfg.ForecastURL == "" {
		cfg.ForecastURL = def.ForecastURL
	}
	if cfg.DefaultCity == "" {
		cfg.DefaultCity = def.DefaultCity
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	return &Client{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}
}

// GetWeather extracts the city from free text and returns its current weather
func (c *Client) GetWeather(ctx context.Context, cityFreeText string) (Report, error) {
	city := ExtractCity(cityFreeText, c.cfg.DefaultCity)

	coords, err := c.geocode(ctx, city)
	if err != nil {
		if ctx.Err() != nil {
			return Report{}, ctx.Err()
		}
		p, ok := presets[textnorm.Normalize(city)]
		if !ok {
			return Report{}, fmt.Errorf("%s: %w", city, err)
		}
		coords = p
	}

	report, err := c.current(ctx, coords)
	if err != nil {
		return Report{}, err
	}
	report.City = city
	return report, nil
}

type nominatimPlace struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (c *Client) geocode(ctx context.Context, city string) (coordinates, error) {
	params := url.Values{}
	params.Set("q", city)
	params.Set("format", "json")
	params.Set("limit", "1")

	var places []nominatimPlace
	if err := c.getJSON(ctx, c.cfg.GeocodeURL+"?"+params.Encode(), &places); err != nil {
		return coordinates{}, err
	}
	if len(places) == 0 {
		return coordinates{}, ErrCityNotFound
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return coordinates{}, fmt.Errorf("parse latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return coordinates{}, fmt.Errorf("parse longitude: %w", err)
	}
	return coordinates{lat: lat, lon: lon}, nil
}

type forecastResponse struct {
	CurrentWeather *struct {
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
		WeatherCode int     `json:"weathercode"`
		Time        string  `json:"time"`
	} `json:"current_weather"`
}

func (c *Client) current(ctx context.Context, at coordinates) (Report, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(at.lat, 'f', 4, 64))
	params.Set("longitude", strconv.FormatFloat(at.lon, 'f', 4, 64))
	params.Set("current_weather", "true")

	var resp forecastResponse
	if err := c.getJSON(ctx, c.cfg.ForecastURL+"?"+params.Encode(), &resp); err != nil {
		return Report{}, err
	}
	if resp.CurrentWeather == nil {
		return Report{}, errors.New("no current weather for this position")
	}

	cw := resp.CurrentWeather
	return Report{
		Latitude:    at.lat,
		Longitude:   at.lon,
		Temperature: cw.Temperature,
		WindSpeed:   cw.WindSpeed,
		WeatherCode: cw.WeatherCode,
		Time:        cw.Time,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("weather service error: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
