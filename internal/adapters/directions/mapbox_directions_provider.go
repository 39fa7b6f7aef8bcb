package directions

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"ev-route-service/internal/domain"
	"ev-route-service/internal/platform/obs"
	"ev-route-service/internal/ports"
)

// MapboxDirectionsProvider implements DirectionsProvider against the Mapbox
// Directions API.
//
// It coordinates:
//   - Per-profile request construction (geometry, steps, voice/banner data)
//   - Bounded retry with exponential backoff for transient failures
//   - Mapping of upstream auth/rate-limit responses onto the port error classes
//   - Boundary conversion of provider JSON into typed ProviderRoutes
//
// The provider is safe for concurrent use.
type MapboxDirectionsProvider struct {
	session     *http.Client
	accessToken string
	baseURL     string
	backoffBase time.Duration
	logger      *zap.Logger
}

func NewMapboxDirectionsProvider(accessToken string, logger *zap.Logger) (*MapboxDirectionsProvider, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("%w: access token is empty", ports.ErrProviderUnavailable)
	}

	return &MapboxDirectionsProvider{
		session:     &http.Client{Timeout: 15 * time.Second},
		accessToken: accessToken,
		baseURL:     "https://api.mapbox.com",
		backoffBase: 500 * time.Millisecond,
		logger:      logger,
	}, nil
}

// Routing objectives map onto provider profiles. Eco avoids motorways to
// favor lower sustained speeds; fastest uses live traffic.
func providerProfile(profile domain.RouteProfile) (name, exclude string) {
	switch profile {
	case domain.ProfileEco:
		return "driving", "motorway"
	case domain.ProfileFastest:
		return "driving-traffic", ""
	default:
		return "driving", ""
	}
}

// FetchRoute requests a route for one profile and returns the primary
// alternative.
func (p *MapboxDirectionsProvider) FetchRoute(
	ctx context.Context,
	req domain.RouteRequest,
	profile domain.RouteProfile,
) (ports.ProviderRoute, error) {
	routes, err := p.fetch(ctx, req, profile)
	if err != nil {
		return ports.ProviderRoute{}, fmt.Errorf("fetch %s route: %w", profile, err)
	}
	if len(routes) == 0 {
		return ports.ProviderRoute{}, fmt.Errorf("fetch %s route: provider returned no routes", profile)
	}
	return routes[0], nil
}

// FetchAlternatives requests multiple alternatives from the default profile.
func (p *MapboxDirectionsProvider) FetchAlternatives(
	ctx context.Context,
	req domain.RouteRequest,
) ([]ports.ProviderRoute, error) {
	routes, err := p.fetch(ctx, req, domain.ProfileBalanced)
	if err != nil {
		return nil, fmt.Errorf("fetch alternatives: %w", err)
	}
	return routes, nil
}

func (p *MapboxDirectionsProvider) fetch(
	ctx context.Context,
	req domain.RouteRequest,
	profile domain.RouteProfile,
) (_ []ports.ProviderRoute, err error) {
	defer obs.Time(ctx, "directions.fetch")(&err)

	name, exclude := providerProfile(profile)

	// Provider expects lng,lat ordering.
	endpoint := fmt.Sprintf("%s/directions/v5/mapbox/%s/%f,%f;%f,%f",
		p.baseURL, name,
		req.Origin.Lng, req.Origin.Lat,
		req.Destination.Lng, req.Destination.Lat)

	query := url.Values{}
	query.Set("access_token", p.accessToken)
	query.Set("alternatives", "true")
	query.Set("geometries", "polyline")
	query.Set("overview", "full")
	query.Set("steps", "true")
	query.Set("annotations", "duration,distance,speed")
	query.Set("voice_instructions", "true")
	query.Set("banner_instructions", "true")
	if exclude != "" {
		query.Set("exclude", exclude)
	}

	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		return p.newRequest(ctx, endpoint+"?"+query.Encode())
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	routes, err := decodeRoutes(resp.Body)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("directions response",
		zap.String("profile", string(profile)),
		zap.Int("routes", len(routes)))

	return routes, nil
}

func (p *MapboxDirectionsProvider) newRequest(ctx context.Context, rawURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (p *MapboxDirectionsProvider) do(req *http.Request) (*http.Response, error) {
	resp, err := p.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, &httpStatusError{Code: resp.StatusCode}
	}
	return resp, nil
}

// Transient failures get three attempts with exponential backoff.
const maxAttempts = 3

// doWithRetry retries connection and timeout failures only. Authentication
// failures (401/403) and rate limiting (429) fail immediately: the first is a
// configuration error, the second must not be amplified by retries.
func (p *MapboxDirectionsProvider) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	backoff := p.backoffBase
	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := p.do(req)
		if err == nil {
			return resp, nil
		}

		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case http.StatusUnauthorized, http.StatusForbidden:
				return nil, fmt.Errorf("%w: status %d", ports.ErrProviderUnavailable, he.Code)
			case http.StatusTooManyRequests:
				return nil, fmt.Errorf("%w: status %d", ports.ErrProviderBusy, he.Code)
			default:
				return nil, fmt.Errorf("directions provider: %w", he)
			}
		}

		lastErr = err
		if attempt == maxAttempts-1 {
			break
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}

	return nil, fmt.Errorf("%w after %d attempts: %v", ports.ErrRetryExhausted, maxAttempts, lastErr)
}

type httpStatusError struct {
	Code int
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}
