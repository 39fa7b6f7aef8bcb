package ports

import "errors"

// Provider error classes. The directions client maps upstream failures onto
// these so callers can decide between retry, fallback, and fail-fast without
// inspecting HTTP details.
var (
	// Missing or rejected credentials (401/403). Configuration error; never retried.
	ErrProviderUnavailable = errors.New("directions provider unavailable")

	// Rate limited (429). Surfaced as service-unavailable without retry.
	ErrProviderBusy = errors.New("directions provider rate limited")

	// Transient failures persisted through every retry attempt.
	ErrRetryExhausted = errors.New("retry attempts exhausted")

	// Every profile request, including the fallback, returned nothing.
	ErrNoRouteFound = errors.New("no route found")
)
