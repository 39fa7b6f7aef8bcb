package services

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ev-route-service/internal/domain"
	"ev-route-service/internal/ports"
)

// RouteService assembles ranked route alternatives. It fans out directions
// requests per profile, runs the decode -> elevation -> energy -> chargers ->
// scoring pipeline for each surviving route, and merges the results into a
// single bundle.
type RouteService struct {
	Directions  ports.DirectionsProvider
	Elevations  ports.ElevationService
	Chargers    *ChargerLocator
	Weather     ports.WeatherProvider
	Logger      *zap.Logger
	MaxDetourKm float64
}

// requestedProfiles are fetched concurrently; each failure is independent.
var requestedProfiles = []domain.RouteProfile{
	domain.ProfileEco,
	domain.ProfileBalanced,
	domain.ProfileFastest,
}

type profileResult struct {
	profile domain.RouteProfile
	route   ports.ProviderRoute
	err     error
}

// ComputeRoutes validates the request, fetches and processes route
// alternatives, and returns them ranked by profile priority together with the
// leading route's chargers and a best-effort weather snapshot.
//
// Fatal errors: *domain.ValidationError for a bad request,
// ports.ErrNoRouteFound when every profile and the fallback yield nothing,
// and the context error on cancellation. Everything else degrades.
func (s *RouteService) ComputeRoutes(ctx context.Context, req domain.RouteRequest) (*domain.RouteBundle, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	resultsCh := make(chan profileResult, len(requestedProfiles))
	var wg sync.WaitGroup

	for _, profile := range requestedProfiles {
		wg.Add(1)
		go func(p domain.RouteProfile) {
			defer wg.Done()
			route, err := s.Directions.FetchRoute(ctx, req, p)
			resultsCh <- profileResult{profile: p, route: route, err: err}
		}(profile)
	}

	wg.Wait()
	close(resultsCh)

	// Collect successes as values; individual profile failures only reduce
	// the number of alternatives.
	survived := make([]profileResult, 0, len(requestedProfiles))
	for res := range resultsCh {
		if res.err != nil {
			s.Logger.Warn("profile route request failed",
				zap.String("profile", string(res.profile)),
				zap.Error(res.err))
			continue
		}
		survived = append(survived, res)
	}

	if len(survived) == 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Fallback: one call asking the default profile for multiple
		// alternatives before giving up entirely.
		alts, err := s.Directions.FetchAlternatives(ctx, req)
		if err != nil {
			s.Logger.Warn("fallback alternatives request failed", zap.Error(err))
		}
		for _, route := range alts {
			survived = append(survived, profileResult{profile: domain.ProfileAlternative, route: route})
		}
		if len(survived) == 0 {
			return nil, ports.ErrNoRouteFound
		}
	}

	// Per-route pipelines are independent and run concurrently; steps within
	// one pipeline are strictly sequential.
	alternatives := make([]domain.RouteAlternative, len(survived))
	var pipelineWG sync.WaitGroup
	for i, res := range survived {
		pipelineWG.Add(1)
		go func(i int, res profileResult) {
			defer pipelineWG.Done()
			alternatives[i] = s.buildAlternative(ctx, res.profile, res.route)
		}(i, res)
	}
	pipelineWG.Wait()

	// Cancelled mid-pipeline: discard partial results rather than returning them.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slices.SortFunc(alternatives, func(a, b domain.RouteAlternative) int {
		if pa, pb := a.Profile.Priority(), b.Profile.Priority(); pa != pb {
			return pa - pb
		}
		if a.DurationS < b.DurationS {
			return -1
		}
		if a.DurationS > b.DurationS {
			return 1
		}
		return strings.Compare(a.ID, b.ID)
	})

	bundle := &domain.RouteBundle{
		Routes:             alternatives,
		ChargersAlongRoute: alternatives[0].Chargers,
		TrafficIncidents:   []domain.TrafficIncident{},
	}

	// Best-effort weather at the midpoint of the leading route; any failure
	// leaves the snapshot empty.
	if s.Weather != nil && len(alternatives[0].Coordinates) > 0 {
		mid := alternatives[0].Coordinates[len(alternatives[0].Coordinates)/2]
		snapshot, err := s.Weather.CurrentWeather(ctx, mid)
		if err != nil {
			s.Logger.Warn("weather fetch failed", zap.Error(err))
		} else {
			bundle.Weather = snapshot
		}
	}

	return bundle, nil
}

// buildAlternative runs the sequential processing pipeline for one provider
// route. Every sub-computation degrades rather than fails, so the result is
// always usable.
func (s *RouteService) buildAlternative(
	ctx context.Context,
	profile domain.RouteProfile,
	route ports.ProviderRoute,
) domain.RouteAlternative {
	coords := DecodePolyline(route.Geometry)

	elevations := s.Elevations.FetchElevations(ctx, coords)
	gainM, lossM := ElevationMetrics(elevations)

	energyKWh := EnergyConsumptionKWh(route.DistanceM, route.DurationS, gainM, lossM)

	chargers := s.Chargers.FindAlongRoute(ctx, coords, s.MaxDetourKm)

	avgUptime := 0.0
	for _, c := range chargers {
		avgUptime += c.UptimePercent / 100
	}
	if len(chargers) > 0 {
		avgUptime /= float64(len(chargers))
	}

	baseDuration := route.BaseDurationS
	if baseDuration == 0 {
		baseDuration = route.DurationS
	}

	summary := route.Summary
	if summary == "" && len(route.Legs) > 0 {
		summary = route.Legs[0].Summary
	}

	return domain.RouteAlternative{
		ID:               uuid.NewString(),
		Profile:          profile,
		Summary:          summary,
		DistanceM:        route.DistanceM,
		DurationS:        route.DurationS,
		BaseDurationS:    baseDuration,
		Geometry:         route.Geometry,
		Coordinates:      coords,
		EnergyKWh:        energyKWh,
		ElevationGainM:   gainM,
		ElevationLossM:   lossM,
		EcoScore:         EcoScore(route.DistanceM, energyKWh, gainM),
		ReliabilityScore: ReliabilityScore(len(chargers), avgUptime),
		Instructions:     flattenInstructions(route.Legs),
		Chargers:         chargers,
	}
}

// flattenInstructions concatenates each leg's steps in route order. Voice
// text is preferred, then banner text, then the raw maneuver instruction.
func flattenInstructions(legs []ports.ProviderLeg) []domain.TurnInstruction {
	out := make([]domain.TurnInstruction, 0, 16)
	idx := 0
	for _, leg := range legs {
		for _, step := range leg.Steps {
			voice := step.VoiceText
			if voice == "" {
				voice = step.BannerText
			}
			if voice == "" {
				voice = step.Instruction
			}

			out = append(out, domain.TurnInstruction{
				StepIndex:        idx,
				DistanceM:        step.DistanceM,
				DurationS:        step.DurationS,
				Instruction:      step.Instruction,
				VoiceText:        voice,
				ManeuverType:     step.ManeuverType,
				ManeuverModifier: step.ManeuverModifier,
				StreetName:       step.Name,
				Location:         step.Location,
				Lanes:            step.Lanes,
			})
			idx++
		}
	}
	return out
}
