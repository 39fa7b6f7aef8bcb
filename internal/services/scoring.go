package services

import "math"

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// EcoScore rates a route's energy efficiency on a 0-100 scale.
//
// Weighted blend of three clamped components: specific consumption relative
// to a 140 Wh/km reference (50%), total distance (30%), and total climb (20%).
func EcoScore(distanceM, energyKWh, gainM float64) float64 {
	distanceKm := distanceM / 1000

	whPerKm := 140.0
	if distanceKm > 0 {
		whPerKm = energyKWh * 1000 / distanceKm
	}

	energyEfficiency := clamp(100-(whPerKm-140)/2, 0, 100)
	distanceEfficiency := clamp(100-distanceKm/10, 0, 100)
	elevationPenalty := clamp(100-gainM/10, 0, 100)

	score := 0.5*energyEfficiency + 0.3*distanceEfficiency + 0.2*elevationPenalty
	return clamp(score, 0, 100)
}

// ReliabilityScore rates charging coverage along a route on a 0-100 scale
// from the number of candidate chargers and their average uptime fraction.
func ReliabilityScore(chargerCount int, avgReliability float64) float64 {
	return clamp(avgReliability*100+float64(chargerCount)*2, 0, 100)
}
