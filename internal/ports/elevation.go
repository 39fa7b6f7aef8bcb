package ports

import (
	"context"
	"time"

	"ev-route-service/internal/domain"
)

// Contract for retrieving terrain elevations along a route.
//
// FetchElevations never fails: unrecoverable provider errors degrade to zero
// elevations so route computation can proceed without terrain data. The
// returned slice matches the sampled coordinate count, not the input count.
type ElevationService interface {
	FetchElevations(ctx context.Context, coords []domain.Coordinates) []float64
}

// Process-wide TTL cache for elevation lookups, keyed by a hash of the
// sampled coordinate sequence. Values for one key are derived
// deterministically from the same input, so concurrent writes are idempotent
// and last-write-wins is safe.
type ElevationCache interface {
	Get(ctx context.Context, key string) ([]float64, bool)
	Put(ctx context.Context, key string, elevations []float64, ttl time.Duration)
}
