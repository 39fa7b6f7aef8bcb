package domain

import (
	"math"
	"testing"
)

func TestDistanceKm(t *testing.T) {
	// Chennai Central to Chennai Airport, roughly 16 km great-circle.
	central := Coordinates{Lat: 13.0827, Lng: 80.2707}
	airport := Coordinates{Lat: 12.9941, Lng: 80.1709}

	got := central.DistanceKm(airport)
	if math.Abs(got-14.7) > 0.5 {
		t.Errorf("distance = %v km, expected about 14.7", got)
	}

	if d := central.DistanceKm(central); d != 0 {
		t.Errorf("distance to self = %v, want 0", d)
	}
}

func TestCoordinatesValid(t *testing.T) {
	cases := []struct {
		name   string
		coords Coordinates
		want   bool
	}{
		{"in range", Coordinates{Lat: 13.08, Lng: 80.27}, true},
		{"boundary", Coordinates{Lat: 90, Lng: -180}, true},
		{"latitude too high", Coordinates{Lat: 90.01, Lng: 0}, false},
		{"longitude too low", Coordinates{Lat: 0, Lng: -180.5}, false},
	}

	for _, tc := range cases {
		if got := tc.coords.Valid(); got != tc.want {
			t.Errorf("%s: Valid() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestRouteRequestValidate(t *testing.T) {
	valid := RouteRequest{
		Origin:      Coordinates{Lat: 13.0827, Lng: 80.2707},
		Destination: Coordinates{Lat: 13.0418, Lng: 80.2341},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	badOrigin := valid
	badOrigin.Origin.Lat = 91
	if err := badOrigin.Validate(); err == nil {
		t.Error("expected error for out-of-range origin")
	}

	tooClose := valid
	tooClose.Destination = valid.Origin
	err := tooClose.Validate()
	if err == nil {
		t.Fatal("expected error for coincident endpoints")
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("error type %T, want *ValidationError", err)
	}
	if ve.Field != "destination" {
		t.Errorf("field = %q, want destination", ve.Field)
	}
}
