package domain

// How thoroughly a charging station record has been verified.
type VerificationLevel int

const (
	VerificationUnverified VerificationLevel = 0
	VerificationCommunity  VerificationLevel = 1
	VerificationVerified   VerificationLevel = 2
)

// A read-only projection of a charging station, filtered and ranked per
// request. DistanceFromRouteKm is filled in by the charger locator; it is the
// minimum Haversine distance from the station to the sampled route path.
type ChargerCandidate struct {
	ID                  int64             `json:"id"`
	Name                string            `json:"name"`
	Address             string            `json:"address"`
	Location            Coordinates       `json:"location"`
	PortTypes           []string          `json:"port_types"`
	AvailablePorts      int               `json:"available_ports"`
	TotalPorts          int               `json:"total_ports"`
	VerificationLevel   VerificationLevel `json:"verification_level"`
	UptimePercent       float64           `json:"uptime_percent"`
	DistanceFromRouteKm float64           `json:"distance_from_route_km"`
	Amenities           []string          `json:"amenities"`
}
