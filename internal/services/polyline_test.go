package services

import (
	"math"
	"testing"

	"ev-route-service/internal/domain"
)

func TestDecodePolylineReference(t *testing.T) {
	// Reference vector from the polyline algorithm documentation.
	coords := DecodePolyline("_p~iF~ps|U_ulLnnqC_mqNvxq`@")

	want := []domain.Coordinates{
		{Lat: 38.5, Lng: -120.2},
		{Lat: 40.7, Lng: -120.95},
		{Lat: 43.252, Lng: -126.453},
	}

	if len(coords) != len(want) {
		t.Fatalf("decoded %d coordinates, want %d", len(coords), len(want))
	}

	for i := range want {
		if math.Abs(coords[i].Lat-want[i].Lat) > 1e-9 || math.Abs(coords[i].Lng-want[i].Lng) > 1e-9 {
			t.Errorf("coordinate %d = (%v, %v), want (%v, %v)",
				i, coords[i].Lat, coords[i].Lng, want[i].Lat, want[i].Lng)
		}
	}
}

func TestDecodePolylineEmpty(t *testing.T) {
	coords := DecodePolyline("")
	if len(coords) != 0 {
		t.Fatalf("expected empty sequence, got %d coordinates", len(coords))
	}
}

func TestDecodePolylineDeterministic(t *testing.T) {
	encoded := "_p~iF~ps|U_ulLnnqC_mqNvxq`@"

	first := DecodePolyline(encoded)
	second := DecodePolyline(encoded)

	if len(first) != len(second) {
		t.Fatalf("lengths differ across calls: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("coordinate %d differs across calls: %v vs %v", i, first[i], second[i])
		}
	}
}
