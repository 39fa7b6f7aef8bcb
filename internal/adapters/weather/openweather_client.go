package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"ev-route-service/internal/domain"
)

// Client implements the WeatherProvider port against an OpenWeather-style
// current-weather endpoint. Consumers treat it as best-effort; errors here
// never fail a route computation.
type Client struct {
	session *http.Client
	baseURL string
	apiKey  string
	logger  *zap.Logger
}

func NewClient(baseURL, apiKey string, logger *zap.Logger) *Client {
	return &Client{
		session: &http.Client{Timeout: 5 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
		logger:  logger,
	}
}

type currentWeatherResponse struct {
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
		Pressure int     `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Visibility int `json:"visibility"`
	Clouds     struct {
		All int `json:"all"`
	} `json:"clouds"`
}

// CurrentWeather fetches conditions near the given coordinate.
func (c *Client) CurrentWeather(ctx context.Context, at domain.Coordinates) (*domain.WeatherSnapshot, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("weather api key not configured")
	}

	endpoint := fmt.Sprintf("%s/data/2.5/weather?lat=%.6f&lon=%.6f&units=metric&appid=%s",
		c.baseURL, at.Lat, at.Lng, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather provider status %d", resp.StatusCode)
	}

	var decoded currentWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode weather response: %w", err)
	}

	snapshot := &domain.WeatherSnapshot{
		TemperatureC:  decoded.Main.Temp,
		WindSpeedMS:   decoded.Wind.Speed,
		HumidityPct:   decoded.Main.Humidity,
		PressureHPa:   decoded.Main.Pressure,
		VisibilityM:   decoded.Visibility,
		CloudCoverPct: decoded.Clouds.All,
	}
	if len(decoded.Weather) > 0 {
		snapshot.Condition = decoded.Weather[0].Main
	}

	c.logger.Debug("weather snapshot",
		zap.Float64("lat", at.Lat),
		zap.Float64("lng", at.Lng),
		zap.String("condition", snapshot.Condition))

	return snapshot, nil
}
