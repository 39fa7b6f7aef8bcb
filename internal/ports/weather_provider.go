package ports

import (
	"context"

	"ev-route-service/internal/domain"
)

// Contract for fetching current weather near a coordinate. Consumed
// best-effort: callers swallow failures and proceed without a snapshot.
type WeatherProvider interface {
	CurrentWeather(ctx context.Context, at domain.Coordinates) (*domain.WeatherSnapshot, error)
}
