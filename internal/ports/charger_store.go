package ports

import (
	"context"

	"ev-route-service/internal/domain"
)

// Port: read-only boundary to the charger storage engine, owned elsewhere.
type ChargerStore interface {
	// FindInBoundingBox returns chargers inside the box at or above the given
	// verification level. DistanceFromRouteKm is left zero; refinement belongs
	// to the locator.
	FindInBoundingBox(ctx context.Context, box domain.BoundingBox, minLevel domain.VerificationLevel) ([]domain.ChargerCandidate, error)
}
