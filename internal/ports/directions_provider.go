package ports

import (
	"context"

	"ev-route-service/internal/domain"
)

// One turn-by-turn step of a provider route, converted from the provider's
// loose JSON at the adapter boundary. VoiceText and BannerText are the
// preferred spoken/displayed phrasings; Instruction is the maneuver fallback.
type ProviderStep struct {
	DistanceM        float64
	DurationS        float64
	Name             string
	ManeuverType     string
	ManeuverModifier string
	Instruction      string
	Location         domain.Coordinates
	VoiceText        string
	BannerText       string
	Lanes            []string
}

// A single leg of a provider route.
type ProviderLeg struct {
	Summary   string
	DistanceM float64
	DurationS float64
	Steps     []ProviderStep
}

// A fully typed route returned by the directions provider. Geometry is the
// encoded polyline; BaseDurationS is the traffic-free duration when the
// provider reports one (otherwise it equals DurationS).
type ProviderRoute struct {
	DistanceM     float64
	DurationS     float64
	BaseDurationS float64
	Geometry      string
	Summary       string
	Legs          []ProviderLeg
}

// Contract for retrieving routes from an external directions provider.
type DirectionsProvider interface {
	// FetchRoute requests a single route for one profile. Fails with
	// ErrProviderUnavailable, ErrProviderBusy, or a wrapped transient error
	// (ErrRetryExhausted after the retry budget is spent).
	FetchRoute(ctx context.Context, req domain.RouteRequest, profile domain.RouteProfile) (ProviderRoute, error)

	// FetchAlternatives requests multiple alternatives from the default
	// profile. Used as the fallback when every per-profile request fails.
	FetchAlternatives(ctx context.Context, req domain.RouteRequest) ([]ProviderRoute, error)
}
