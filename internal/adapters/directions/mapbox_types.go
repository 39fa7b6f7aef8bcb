package directions

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"ev-route-service/internal/domain"
	"ev-route-service/internal/ports"
)

// Wire types for the provider's response. Converted into ports structs at
// this boundary so the pipeline never touches loosely typed JSON.

type directionsResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Routes  []wireRoute `json:"routes"`
}

type wireRoute struct {
	Distance        float64   `json:"distance"`
	Duration        float64   `json:"duration"`
	DurationTypical float64   `json:"duration_typical"`
	Geometry        string    `json:"geometry"`
	Legs            []wireLeg `json:"legs"`
}

type wireLeg struct {
	Summary  string     `json:"summary"`
	Distance float64    `json:"distance"`
	Duration float64    `json:"duration"`
	Steps    []wireStep `json:"steps"`
}

type wireStep struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
	Name     string  `json:"name"`
	Maneuver struct {
		Type        string    `json:"type"`
		Modifier    string    `json:"modifier"`
		Instruction string    `json:"instruction"`
		Location    []float64 `json:"location"`
	} `json:"maneuver"`
	VoiceInstructions []struct {
		Announcement string `json:"announcement"`
	} `json:"voiceInstructions"`
	BannerInstructions []struct {
		Primary struct {
			Text string `json:"text"`
		} `json:"primary"`
	} `json:"bannerInstructions"`
	Intersections []struct {
		Lanes []struct {
			Valid       bool     `json:"valid"`
			Indications []string `json:"indications"`
		} `json:"lanes"`
	} `json:"intersections"`
}

// decodeRoutes parses a directions response body into typed provider routes.
func decodeRoutes(body io.Reader) ([]ports.ProviderRoute, error) {
	var decoded directionsResponse
	if err := json.NewDecoder(body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode directions response: %w", err)
	}

	if decoded.Code != "" && decoded.Code != "Ok" {
		return nil, fmt.Errorf("directions provider code %q: %s", decoded.Code, decoded.Message)
	}

	routes := make([]ports.ProviderRoute, 0, len(decoded.Routes))
	for _, wr := range decoded.Routes {
		routes = append(routes, convertRoute(wr))
	}
	return routes, nil
}

func convertRoute(wr wireRoute) ports.ProviderRoute {
	route := ports.ProviderRoute{
		DistanceM:     wr.Distance,
		DurationS:     wr.Duration,
		BaseDurationS: wr.DurationTypical,
		Geometry:      wr.Geometry,
		Legs:          make([]ports.ProviderLeg, 0, len(wr.Legs)),
	}
	if route.BaseDurationS == 0 {
		route.BaseDurationS = wr.Duration
	}

	summaries := make([]string, 0, len(wr.Legs))
	for _, wl := range wr.Legs {
		if wl.Summary != "" {
			summaries = append(summaries, wl.Summary)
		}
		route.Legs = append(route.Legs, convertLeg(wl))
	}
	route.Summary = strings.Join(summaries, ", ")

	return route
}

func convertLeg(wl wireLeg) ports.ProviderLeg {
	leg := ports.ProviderLeg{
		Summary:   wl.Summary,
		DistanceM: wl.Distance,
		DurationS: wl.Duration,
		Steps:     make([]ports.ProviderStep, 0, len(wl.Steps)),
	}
	for _, ws := range wl.Steps {
		leg.Steps = append(leg.Steps, convertStep(ws))
	}
	return leg
}

func convertStep(ws wireStep) ports.ProviderStep {
	step := ports.ProviderStep{
		DistanceM:        ws.Distance,
		DurationS:        ws.Duration,
		Name:             ws.Name,
		ManeuverType:     ws.Maneuver.Type,
		ManeuverModifier: ws.Maneuver.Modifier,
		Instruction:      ws.Maneuver.Instruction,
	}

	// Maneuver locations arrive as [lng, lat].
	if len(ws.Maneuver.Location) == 2 {
		step.Location = domain.Coordinates{
			Lat: ws.Maneuver.Location[1],
			Lng: ws.Maneuver.Location[0],
		}
	}

	if len(ws.VoiceInstructions) > 0 {
		step.VoiceText = ws.VoiceInstructions[0].Announcement
	}
	if len(ws.BannerInstructions) > 0 {
		step.BannerText = ws.BannerInstructions[0].Primary.Text
	}

	if len(ws.Intersections) > 0 {
		for _, lane := range ws.Intersections[0].Lanes {
			if !lane.Valid {
				continue
			}
			step.Lanes = append(step.Lanes, strings.Join(lane.Indications, "/"))
		}
	}

	return step
}
