package domain

import "fmt"

// Endpoints closer than this are rejected; the provider cannot produce a
// meaningful driving route between them.
const MinSeparationM = 100.0

// A single route computation request. Created per invocation, never persisted.
type RouteRequest struct {
	Origin      Coordinates `json:"origin"`
	Destination Coordinates `json:"destination"`
}

// A fatal request-validation failure. Never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks coordinate ranges and the minimum straight-line separation.
func (r RouteRequest) Validate() error {
	if !r.Origin.Valid() {
		return &ValidationError{Field: "origin", Reason: "coordinates out of range"}
	}
	if !r.Destination.Valid() {
		return &ValidationError{Field: "destination", Reason: "coordinates out of range"}
	}
	if r.Origin.DistanceKm(r.Destination)*1000 < MinSeparationM {
		return &ValidationError{
			Field:  "destination",
			Reason: fmt.Sprintf("origin and destination must be at least %.0fm apart", MinSeparationM),
		}
	}
	return nil
}
