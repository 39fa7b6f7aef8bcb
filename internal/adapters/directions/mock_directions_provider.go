package directions

import (
	"context"
	"fmt"

	"ev-route-service/internal/domain"
	"ev-route-service/internal/ports"
)

// MockDirectionsProvider serves canned routes for tests.
type MockDirectionsProvider struct {
	RoutesByProfile map[domain.RouteProfile]ports.ProviderRoute
	Alternatives    []ports.ProviderRoute
	AlternativesErr error
}

func (m *MockDirectionsProvider) FetchRoute(
	_ context.Context,
	_ domain.RouteRequest,
	profile domain.RouteProfile,
) (ports.ProviderRoute, error) {
	r, ok := m.RoutesByProfile[profile]
	if !ok {
		return ports.ProviderRoute{}, fmt.Errorf("no mock route for profile %q", profile)
	}
	return r, nil
}

func (m *MockDirectionsProvider) FetchAlternatives(
	_ context.Context,
	_ domain.RouteRequest,
) ([]ports.ProviderRoute, error) {
	if m.AlternativesErr != nil {
		return nil, m.AlternativesErr
	}
	return m.Alternatives, nil
}
