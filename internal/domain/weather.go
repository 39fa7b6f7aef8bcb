package domain

// Point-in-time weather conditions near a coordinate. Attached to a route
// bundle on a best-effort basis; absent when the weather provider fails.
type WeatherSnapshot struct {
	TemperatureC  float64 `json:"temperature_c"`
	Condition     string  `json:"condition"`
	WindSpeedMS   float64 `json:"wind_speed_ms"`
	HumidityPct   int     `json:"humidity_pct"`
	PressureHPa   int     `json:"pressure_hpa"`
	VisibilityM   int     `json:"visibility_m"`
	CloudCoverPct int     `json:"cloud_cover_pct"`
}
