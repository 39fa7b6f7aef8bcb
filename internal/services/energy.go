package services

import "math"

// Physics constants for a mid-size EV. Fixed rather than configurable: the
// model ranks alternatives against each other, so consistency matters more
// than per-vehicle accuracy.
const (
	vehicleMassKg        = 1800.0
	rollingResistance    = 0.01
	dragCoefficient      = 0.28
	frontalAreaM2        = 2.3
	airDensityKgM3       = 1.225
	regenEfficiency      = 0.70
	drivetrainEfficiency = 0.90
	gravityMS2           = 9.81

	// HVAC, electronics and other parasitic loads.
	auxiliaryOverhead = 1.15

	// Floor of 100 Wh per km; the model never reports less than this baseline.
	minWhPerKm = 100.0
)

// ElevationMetrics walks consecutive elevation samples and accumulates total
// climb and total descent in meters. Fewer than two samples yields (0, 0).
func ElevationMetrics(elevations []float64) (gainM, lossM float64) {
	if len(elevations) < 2 {
		return 0, 0
	}
	for i := 1; i < len(elevations); i++ {
		delta := elevations[i] - elevations[i-1]
		if delta > 0 {
			gainM += delta
		} else {
			lossM += -delta
		}
	}
	return gainM, lossM
}

// EnergyConsumptionKWh estimates the energy needed to drive a route from its
// distance, duration and elevation profile.
//
// The model sums rolling resistance, aerodynamic drag at the average speed,
// and net elevation work (descent recovers energy at the regen efficiency),
// applies the auxiliary overhead, and clamps to the 100 Wh/km floor. The
// result is rounded to 2 decimals.
func EnergyConsumptionKWh(distanceM, durationS, gainM, lossM float64) float64 {
	if distanceM <= 0 {
		return 0
	}

	speedMS := 50.0 / 3.6
	if durationS > 0 {
		speedMS = distanceM / durationS
	}

	rollingWh := vehicleMassKg * gravityMS2 * rollingResistance * distanceM /
		(3600 * drivetrainEfficiency)

	airWh := 0.5 * airDensityKgM3 * dragCoefficient * frontalAreaM2 *
		speedMS * speedMS * speedMS * durationS / (3600 * drivetrainEfficiency)

	elevationWh := vehicleMassKg*gravityMS2*gainM/(3600*drivetrainEfficiency) -
		vehicleMassKg*gravityMS2*lossM*regenEfficiency/3600

	totalWh := (rollingWh + airWh + elevationWh) * auxiliaryOverhead

	if floorWh := distanceM / 1000 * minWhPerKm; totalWh < floorWh {
		totalWh = floorWh
	}

	return math.Round(totalWh/1000*100) / 100
}
