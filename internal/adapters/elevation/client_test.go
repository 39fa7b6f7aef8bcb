package elevation

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"ev-route-service/internal/adapters/cache"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/ports"
)

func newTestClient(baseURL string, elevCache *cache.MemoryElevationCache) *Client {
	var ec ports.ElevationCache
	if elevCache != nil {
		ec = elevCache
	}
	c := NewClient(baseURL, "test-key", ec, time.Hour, zap.NewNop())
	c.backoffBase = time.Millisecond
	return c
}

func elevationHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t.Helper()
		locations := r.URL.Query().Get("locations")
		if locations == "" {
			t.Error("missing locations parameter")
		}
		count := 1
		for _, ch := range locations {
			if ch == '|' {
				count++
			}
		}

		fmt.Fprint(w, `{"status": "OK", "results": [`)
		for i := 0; i < count; i++ {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, `{"elevation": %d}`, (i+1)*10)
		}
		fmt.Fprint(w, `]}`)
	}
}

func TestFetchElevationsSuccess(t *testing.T) {
	server := httptest.NewServer(elevationHandler(t))
	defer server.Close()

	client := newTestClient(server.URL, cache.NewMemoryElevationCache(10))

	coords := []domain.Coordinates{
		{Lat: 13.0827, Lng: 80.2707},
		{Lat: 13.0418, Lng: 80.2341},
	}

	got := client.FetchElevations(context.Background(), coords)
	if len(got) != 2 {
		t.Fatalf("got %d elevations, want 2", len(got))
	}
	if got[0] != 10 || got[1] != 20 {
		t.Errorf("elevations = %v, want [10 20]", got)
	}
}

func TestFetchElevationsServedFromCache(t *testing.T) {
	server := httptest.NewServer(elevationHandler(t))

	elevCache := cache.NewMemoryElevationCache(10)
	client := newTestClient(server.URL, elevCache)

	coords := []domain.Coordinates{{Lat: 13.0827, Lng: 80.2707}}

	first := client.FetchElevations(context.Background(), coords)

	// Provider gone; the cached values must still be served.
	server.Close()

	second := client.FetchElevations(context.Background(), coords)
	if len(second) != len(first) || second[0] != first[0] {
		t.Fatalf("cache miss after provider shutdown: first %v, second %v", first, second)
	}
}

func TestFetchElevationsRetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		elevationHandler(t)(w, r)
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)

	got := client.FetchElevations(context.Background(), []domain.Coordinates{{Lat: 1, Lng: 2}})
	if got[0] != 10 {
		t.Fatalf("elevation = %v, want 10 after rate-limit retries", got[0])
	}
	if n := calls.Load(); n != 3 {
		t.Errorf("provider called %d times, want 3", n)
	}
}

func TestFetchElevationsUnreachableSubstitutesZeros(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1", nil)

	coords := []domain.Coordinates{
		{Lat: 1, Lng: 1},
		{Lat: 2, Lng: 2},
		{Lat: 3, Lng: 3},
	}

	got := client.FetchElevations(context.Background(), coords)
	if len(got) != 3 {
		t.Fatalf("got %d elevations, want 3", len(got))
	}
	for i, v := range got {
		if v != 0 {
			t.Errorf("elevation %d = %v, want 0 for unreachable provider", i, v)
		}
	}
}

func TestFetchElevationsEmptyInput(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1", nil)

	got := client.FetchElevations(context.Background(), nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("got %v, want empty non-nil slice", got)
	}
}

func TestSampleCoordinatesBoundsSize(t *testing.T) {
	coords := make([]domain.Coordinates, 450)
	for i := range coords {
		coords[i] = domain.Coordinates{Lat: float64(i), Lng: float64(i)}
	}

	sampled := sampleCoordinates(coords, maxSamplePoints)
	if len(sampled) > maxSamplePoints {
		t.Fatalf("sampled %d points, want at most %d", len(sampled), maxSamplePoints)
	}
	if sampled[0] != coords[0] {
		t.Errorf("first sample = %v, want path start", sampled[0])
	}

	short := []domain.Coordinates{{Lat: 1, Lng: 1}}
	if got := sampleCoordinates(short, maxSamplePoints); len(got) != 1 {
		t.Errorf("short path resampled to %d points, want 1", len(got))
	}
}

func TestCacheKeyStability(t *testing.T) {
	coords := []domain.Coordinates{
		{Lat: 13.0827, Lng: 80.2707},
		{Lat: 13.0418, Lng: 80.2341},
	}

	if cacheKey(coords) != cacheKey(coords) {
		t.Fatal("cache key not deterministic")
	}

	reordered := []domain.Coordinates{coords[1], coords[0]}
	if cacheKey(coords) == cacheKey(reordered) {
		t.Fatal("cache key ignores coordinate order")
	}
}
