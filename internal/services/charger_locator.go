package services

import (
	"context"
	"math"
	"slices"

	"go.uber.org/zap"

	"ev-route-service/internal/domain"
	"ev-route-service/internal/ports"
)

const (
	// Upper bound on candidates returned per route.
	maxChargerCandidates = 10

	// Route is sampled at roughly every 5% of its length for the refined
	// distance check.
	routeSampleFraction = 0.05

	// Kilometers per degree of latitude.
	kmPerDegreeLat = 111.0
)

// ChargerLocator finds charging stations near a route: a coarse bounding-box
// query against the charger store, refined by minimum Haversine distance to
// sampled route points.
type ChargerLocator struct {
	Store    ports.ChargerStore
	MinLevel domain.VerificationLevel
	Logger   *zap.Logger
}

// FindAlongRoute returns up to 10 chargers within maxDetourKm of the route,
// closest first. A store failure degrades to an empty list with a warning;
// charger lookup must never abort route computation.
func (l *ChargerLocator) FindAlongRoute(
	ctx context.Context,
	coords []domain.Coordinates,
	maxDetourKm float64,
) []domain.ChargerCandidate {
	if len(coords) == 0 {
		return []domain.ChargerCandidate{}
	}

	box := boundingBoxAround(coords, maxDetourKm)

	candidates, err := l.Store.FindInBoundingBox(ctx, box, l.MinLevel)
	if err != nil {
		l.Logger.Warn("charger store query failed, continuing without chargers",
			zap.Error(err),
			zap.Float64("max_detour_km", maxDetourKm))
		return []domain.ChargerCandidate{}
	}

	sampled := sampleRoute(coords, routeSampleFraction)

	kept := make([]domain.ChargerCandidate, 0, len(candidates))
	for _, c := range candidates {
		minDist := math.MaxFloat64
		for _, p := range sampled {
			if d := c.Location.DistanceKm(p); d < minDist {
				minDist = d
			}
		}
		if minDist <= maxDetourKm {
			c.DistanceFromRouteKm = minDist
			kept = append(kept, c)
		}
	}

	// Tie-breaker ensures deterministic ordering when distances are equal.
	slices.SortFunc(kept, func(a, b domain.ChargerCandidate) int {
		if a.DistanceFromRouteKm < b.DistanceFromRouteKm {
			return -1
		}
		if a.DistanceFromRouteKm > b.DistanceFromRouteKm {
			return 1
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})

	if len(kept) > maxChargerCandidates {
		kept = kept[:maxChargerCandidates]
	}

	return kept
}

// boundingBoxAround pads the extent of the route by the detour distance.
// Longitude padding carries a cosine correction: degrees of longitude shrink
// toward the poles.
func boundingBoxAround(coords []domain.Coordinates, detourKm float64) domain.BoundingBox {
	minLat, maxLat := coords[0].Lat, coords[0].Lat
	minLng, maxLng := coords[0].Lng, coords[0].Lng
	latSum := 0.0

	for _, c := range coords {
		minLat = math.Min(minLat, c.Lat)
		maxLat = math.Max(maxLat, c.Lat)
		minLng = math.Min(minLng, c.Lng)
		maxLng = math.Max(maxLng, c.Lng)
		latSum += c.Lat
	}

	avgLat := latSum / float64(len(coords))

	latPad := detourKm / kmPerDegreeLat

	cosLat := math.Cos(avgLat * math.Pi / 180)
	if cosLat < 0.01 {
		cosLat = 0.01
	}
	lngPad := detourKm / (kmPerDegreeLat * cosLat)

	return domain.BoundingBox{
		MinLat: minLat - latPad,
		MaxLat: maxLat + latPad,
		MinLng: minLng - lngPad,
		MaxLng: maxLng + lngPad,
	}
}

// sampleRoute picks points at the given fraction of the route length. The
// first and last points are always included.
func sampleRoute(coords []domain.Coordinates, fraction float64) []domain.Coordinates {
	stride := int(float64(len(coords)) * fraction)
	if stride < 1 {
		stride = 1
	}

	sampled := make([]domain.Coordinates, 0, len(coords)/stride+2)
	for i := 0; i < len(coords); i += stride {
		sampled = append(sampled, coords[i])
	}
	if last := coords[len(coords)-1]; sampled[len(sampled)-1] != last {
		sampled = append(sampled, last)
	}

	return sampled
}
