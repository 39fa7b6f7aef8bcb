package services

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"ev-route-service/internal/adapters/directions"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/ports"
)

// Chennai city-center pair used across the assembler tests.
var testRequest = domain.RouteRequest{
	Origin:      domain.Coordinates{Lat: 13.0827, Lng: 80.2707},
	Destination: domain.Coordinates{Lat: 13.0418, Lng: 80.2341},
}

type stubElevations struct {
	values []float64
}

func (s stubElevations) FetchElevations(_ context.Context, coords []domain.Coordinates) []float64 {
	if s.values != nil {
		return s.values
	}
	// Mimics the degrade path: provider unreachable, zeros substituted.
	return make([]float64, len(coords))
}

type stubWeather struct {
	snapshot *domain.WeatherSnapshot
	err      error
}

func (s stubWeather) CurrentWeather(_ context.Context, _ domain.Coordinates) (*domain.WeatherSnapshot, error) {
	return s.snapshot, s.err
}

func testProviderRoute(durationS float64) ports.ProviderRoute {
	return ports.ProviderRoute{
		DistanceM:     6100,
		DurationS:     durationS,
		BaseDurationS: durationS,
		Geometry:      "_p~iF~ps|U_ulLnnqC_mqNvxq`@",
		Summary:       "Anna Salai",
		Legs: []ports.ProviderLeg{{
			Summary:   "Anna Salai",
			DistanceM: 6100,
			DurationS: durationS,
			Steps: []ports.ProviderStep{{
				DistanceM:    6100,
				DurationS:    durationS,
				Name:         "Anna Salai",
				ManeuverType: "depart",
				Instruction:  "Head southwest on Anna Salai",
				VoiceText:    "Head southwest on Anna Salai for 6 kilometers",
			}},
		}},
	}
}

func newTestRouteService(provider ports.DirectionsProvider) *RouteService {
	return &RouteService{
		Directions:  provider,
		Elevations:  stubElevations{},
		Chargers:    &ChargerLocator{Store: &mockChargerStore{}, Logger: zap.NewNop()},
		Logger:      zap.NewNop(),
		MaxDetourKm: 5,
	}
}

func TestComputeRoutesOrdersProfiles(t *testing.T) {
	provider := &directions.MockDirectionsProvider{
		RoutesByProfile: map[domain.RouteProfile]ports.ProviderRoute{
			domain.ProfileEco:      testProviderRoute(780),
			domain.ProfileBalanced: testProviderRoute(700),
			domain.ProfileFastest:  testProviderRoute(620),
		},
	}
	svc := newTestRouteService(provider)

	bundle, err := svc.ComputeRoutes(context.Background(), testRequest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bundle.Routes) != 3 {
		t.Fatalf("expected 3 alternatives, got %d", len(bundle.Routes))
	}

	wantOrder := []domain.RouteProfile{domain.ProfileEco, domain.ProfileBalanced, domain.ProfileFastest}
	for i, want := range wantOrder {
		route := bundle.Routes[i]

		if route.Profile != want {
			t.Errorf("route %d profile = %q, want %q", i, route.Profile, want)
		}
		if route.EnergyKWh <= 0 {
			t.Errorf("route %d energy = %v, want > 0", i, route.EnergyKWh)
		}
		if len(route.Coordinates) < 2 {
			t.Errorf("route %d has %d coordinates, want >= 2", i, len(route.Coordinates))
		}
		if route.ID == "" {
			t.Errorf("route %d has empty id", i)
		}
		if len(route.Instructions) != 1 {
			t.Errorf("route %d has %d instructions, want 1", i, len(route.Instructions))
		}
	}

	if bundle.TrafficIncidents == nil {
		t.Error("traffic incidents should be an empty list, not nil")
	}
}

func TestComputeRoutesValidation(t *testing.T) {
	svc := newTestRouteService(&directions.MockDirectionsProvider{})

	cases := []struct {
		name string
		req  domain.RouteRequest
	}{
		{
			"latitude out of range",
			domain.RouteRequest{
				Origin:      domain.Coordinates{Lat: 100, Lng: 80},
				Destination: testRequest.Destination,
			},
		},
		{
			"endpoints too close",
			domain.RouteRequest{
				Origin:      testRequest.Origin,
				Destination: testRequest.Origin,
			},
		},
	}

	for _, tc := range cases {
		_, err := svc.ComputeRoutes(context.Background(), tc.req)

		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("%s: error = %v, want ValidationError", tc.name, err)
		}
	}
}

func TestComputeRoutesFallbackAlternatives(t *testing.T) {
	// Every profile fails; the fallback alternatives call saves the request.
	provider := &directions.MockDirectionsProvider{
		Alternatives: []ports.ProviderRoute{testProviderRoute(700), testProviderRoute(750)},
	}
	svc := newTestRouteService(provider)

	bundle, err := svc.ComputeRoutes(context.Background(), testRequest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bundle.Routes) != 2 {
		t.Fatalf("expected 2 fallback alternatives, got %d", len(bundle.Routes))
	}
	for i, route := range bundle.Routes {
		if route.Profile != domain.ProfileAlternative {
			t.Errorf("route %d profile = %q, want %q", i, route.Profile, domain.ProfileAlternative)
		}
	}
}

func TestComputeRoutesNoRouteFound(t *testing.T) {
	provider := &directions.MockDirectionsProvider{
		AlternativesErr: errors.New("connection refused"),
	}
	svc := newTestRouteService(provider)

	_, err := svc.ComputeRoutes(context.Background(), testRequest)
	if !errors.Is(err, ports.ErrNoRouteFound) {
		t.Fatalf("error = %v, want ErrNoRouteFound", err)
	}
}

func TestComputeRoutesElevationOutageDegrades(t *testing.T) {
	provider := &directions.MockDirectionsProvider{
		RoutesByProfile: map[domain.RouteProfile]ports.ProviderRoute{
			domain.ProfileEco:      testProviderRoute(780),
			domain.ProfileBalanced: testProviderRoute(700),
			domain.ProfileFastest:  testProviderRoute(620),
		},
	}
	// stubElevations with no values returns zeros, exactly like an
	// unreachable elevation provider.
	svc := newTestRouteService(provider)

	bundle, err := svc.ComputeRoutes(context.Background(), testRequest)
	if err != nil {
		t.Fatalf("expected success despite elevation outage, got: %v", err)
	}

	for i, route := range bundle.Routes {
		if route.ElevationGainM != 0 || route.ElevationLossM != 0 {
			t.Errorf("route %d gain/loss = %v/%v, want 0/0",
				i, route.ElevationGainM, route.ElevationLossM)
		}
		if route.EnergyKWh <= 0 {
			t.Errorf("route %d energy = %v, want > 0", i, route.EnergyKWh)
		}
	}
}

func TestComputeRoutesWeatherBestEffort(t *testing.T) {
	provider := &directions.MockDirectionsProvider{
		RoutesByProfile: map[domain.RouteProfile]ports.ProviderRoute{
			domain.ProfileEco: testProviderRoute(780),
		},
	}

	svc := newTestRouteService(provider)
	svc.Weather = stubWeather{err: errors.New("weather provider down")}

	bundle, err := svc.ComputeRoutes(context.Background(), testRequest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bundle.Weather != nil {
		t.Fatalf("weather = %+v, want nil after provider failure", bundle.Weather)
	}

	svc.Weather = stubWeather{snapshot: &domain.WeatherSnapshot{TemperatureC: 31, Condition: "Clouds"}}

	bundle, err = svc.ComputeRoutes(context.Background(), testRequest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bundle.Weather == nil || bundle.Weather.Condition != "Clouds" {
		t.Fatalf("weather = %+v, want attached snapshot", bundle.Weather)
	}
}

func TestComputeRoutesCancellation(t *testing.T) {
	provider := &directions.MockDirectionsProvider{
		RoutesByProfile: map[domain.RouteProfile]ports.ProviderRoute{
			domain.ProfileEco: testProviderRoute(780),
		},
	}
	svc := newTestRouteService(provider)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ComputeRoutes(ctx, testRequest)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}
