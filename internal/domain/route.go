package domain

// A named routing objective requested from the directions provider.
type RouteProfile string

const (
	ProfileEco         RouteProfile = "eco"
	ProfileBalanced    RouteProfile = "balanced"
	ProfileFastest     RouteProfile = "fastest"
	ProfileAlternative RouteProfile = "alternative"
)

// Priority returns the ranking order of a profile (lower sorts first).
func (p RouteProfile) Priority() int {
	switch p {
	case ProfileEco:
		return 0
	case ProfileBalanced:
		return 1
	case ProfileFastest:
		return 2
	default:
		return 3
	}
}

// A single turn-by-turn step, concatenated across legs in route order.
type TurnInstruction struct {
	StepIndex        int         `json:"step_index"`
	DistanceM        float64     `json:"distance_m"`
	DurationS        float64     `json:"duration_s"`
	Instruction      string      `json:"instruction"`
	VoiceText        string      `json:"voice_text"`
	ManeuverType     string      `json:"maneuver_type"`
	ManeuverModifier string      `json:"maneuver_modifier,omitempty"`
	StreetName       string      `json:"street_name,omitempty"`
	Location         Coordinates `json:"location"`
	Lanes            []string    `json:"lanes,omitempty"`
}

// Represents one ranked route option between an origin and a destination.
// A RouteAlternative is built once per successful provider response and is
// immutable thereafter.
type RouteAlternative struct {
	ID               string             `json:"id"`
	Profile          RouteProfile       `json:"profile"`
	Summary          string             `json:"summary"`
	DistanceM        float64            `json:"distance_m"`
	DurationS        float64            `json:"duration_s"`
	BaseDurationS    float64            `json:"base_duration_s"`
	Geometry         string             `json:"geometry"`
	Coordinates      []Coordinates      `json:"coordinates"`
	EnergyKWh        float64            `json:"energy_kwh"`
	ElevationGainM   float64            `json:"elevation_gain_m"`
	ElevationLossM   float64            `json:"elevation_loss_m"`
	EcoScore         float64            `json:"eco_score"`
	ReliabilityScore float64            `json:"reliability_score"`
	Instructions     []TurnInstruction  `json:"instructions"`
	Chargers         []ChargerCandidate `json:"chargers"`
}

// A reported traffic disruption near a route. No incident provider is wired;
// the list exists to keep the response shape stable for clients.
type TrafficIncident struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	Severity    string      `json:"severity"`
	Description string      `json:"description"`
	Location    Coordinates `json:"location"`
}

// The full result of a route computation: ranked alternatives, chargers along
// the leading route, and a best-effort weather snapshot for its midpoint.
type RouteBundle struct {
	Routes             []RouteAlternative `json:"routes"`
	ChargersAlongRoute []ChargerCandidate `json:"chargers_along_route"`
	Weather            *WeatherSnapshot   `json:"weather_data"`
	TrafficIncidents   []TrafficIncident  `json:"traffic_incidents"`
}
