package services

import "ev-route-service/internal/domain"

// DecodePolyline decodes a Google-encoded polyline into an ordered coordinate
// sequence with 1e-5 degree precision.
//
// Each coordinate delta is a zigzag-signed varint of 5-bit groups, ASCII
// offset by 63, with bit 0x20 marking continuation. Latitude and longitude
// deltas alternate and accumulate into running totals. The function is pure;
// an empty string yields an empty sequence. Malformed input truncates at the
// last complete coordinate.
func DecodePolyline(encoded string) []domain.Coordinates {
	coords := make([]domain.Coordinates, 0, len(encoded)/4)

	var lat, lng int64
	i := 0

	readDelta := func() (int64, bool) {
		var result int64
		var shift uint
		for {
			if i >= len(encoded) {
				return 0, false
			}
			b := int64(encoded[i]) - 63
			i++
			result |= (b & 0x1f) << shift
			if b&0x20 == 0 {
				break
			}
			shift += 5
		}
		if result&1 != 0 {
			return ^(result >> 1), true
		}
		return result >> 1, true
	}

	for i < len(encoded) {
		dLat, ok := readDelta()
		if !ok {
			break
		}
		dLng, ok := readDelta()
		if !ok {
			break
		}

		lat += dLat
		lng += dLng

		coords = append(coords, domain.Coordinates{
			Lat: float64(lat) / 1e5,
			Lng: float64(lng) / 1e5,
		})
	}

	return coords
}
