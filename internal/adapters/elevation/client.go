package elevation

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"ev-route-service/internal/domain"
	"ev-route-service/internal/ports"
)

const (
	// Routes are sampled down to at most this many points before lookup.
	maxSamplePoints = 100

	// Provider accepts at most 100 locations per request.
	maxBatchSize = 100

	// Rate-limit responses are retried this many times with exponential backoff.
	maxRateLimitRetries = 2
)

// Client implements the ElevationService port against a Google-style
// elevation endpoint, with a TTL cache in front of it.
//
// It coordinates:
//   - Coordinate sampling to bound request size
//   - Cache lookups keyed by a hash of the sampled path
//   - Batched provider calls with rate-limit retries
//   - Zero-substitution for batches that cannot be fetched
//
// The client is safe for concurrent use.
type Client struct {
	session     *http.Client
	baseURL     string
	apiKey      string
	cache       ports.ElevationCache
	ttl         time.Duration
	backoffBase time.Duration
	logger      *zap.Logger
}

func NewClient(baseURL, apiKey string, elevCache ports.ElevationCache, ttl time.Duration, logger *zap.Logger) *Client {
	return &Client{
		session:     &http.Client{Timeout: 10 * time.Second},
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		cache:       elevCache,
		ttl:         ttl,
		backoffBase: 500 * time.Millisecond,
		logger:      logger,
	}
}

// FetchElevations returns elevations for a sampled subset of coords. It never
// fails: batches the provider cannot serve come back as zeros, and the
// combined result is cached before returning.
func (c *Client) FetchElevations(ctx context.Context, coords []domain.Coordinates) []float64 {
	if len(coords) == 0 {
		return []float64{}
	}

	sampled := sampleCoordinates(coords, maxSamplePoints)
	key := cacheKey(sampled)

	if c.cache != nil {
		if values, ok := c.cache.Get(ctx, key); ok {
			return values
		}
	}

	out := make([]float64, 0, len(sampled))
	for start := 0; start < len(sampled); start += maxBatchSize {
		end := start + maxBatchSize
		if end > len(sampled) {
			end = len(sampled)
		}
		batch := sampled[start:end]

		values, err := c.fetchBatch(ctx, batch)
		if err != nil {
			c.logger.Warn("elevation batch failed, substituting zeros",
				zap.Int("batch_start", start),
				zap.Int("batch_size", len(batch)),
				zap.Error(err))
			values = make([]float64, len(batch))
		}
		out = append(out, values...)
	}

	if c.cache != nil {
		c.cache.Put(ctx, key, out, c.ttl)
	}

	return out
}

// fetchBatch queries one batch, retrying only rate-limit responses.
func (c *Client) fetchBatch(ctx context.Context, batch []domain.Coordinates) ([]float64, error) {
	backoff := c.backoffBase
	var lastErr error

	for attempt := 0; attempt <= maxRateLimitRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		values, rateLimited, err := c.lookup(ctx, batch)
		if err == nil {
			return values, nil
		}
		lastErr = err

		if !rateLimited || attempt == maxRateLimitRetries {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}

	return nil, lastErr
}

type lookupResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Elevation float64 `json:"elevation"`
	} `json:"results"`
}

func (c *Client) lookup(ctx context.Context, batch []domain.Coordinates) (_ []float64, rateLimited bool, err error) {
	var locations strings.Builder
	for i, p := range batch {
		if i > 0 {
			locations.WriteByte('|')
		}
		fmt.Fprintf(&locations, "%.6f,%.6f", p.Lat, p.Lng)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/json", nil)
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}

	q := req.URL.Query()
	q.Set("locations", locations.String())
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}
	req.URL.RawQuery = q.Encode()

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("elevation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, true, fmt.Errorf("elevation provider rate limited")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("elevation provider status %d", resp.StatusCode)
	}

	var decoded lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, false, fmt.Errorf("decode elevation response: %w", err)
	}

	if decoded.Status != "OK" {
		return nil, decoded.Status == "OVER_QUERY_LIMIT", fmt.Errorf("elevation provider status %q", decoded.Status)
	}
	if len(decoded.Results) != len(batch) {
		return nil, false, fmt.Errorf("elevation provider returned %d results for %d locations",
			len(decoded.Results), len(batch))
	}

	values := make([]float64, len(decoded.Results))
	for i, r := range decoded.Results {
		values[i] = r.Elevation
	}
	return values, false, nil
}

// sampleCoordinates thins the path to at most max points while keeping order.
func sampleCoordinates(coords []domain.Coordinates, max int) []domain.Coordinates {
	if len(coords) <= max {
		return coords
	}

	stride := (len(coords) + max - 1) / max
	sampled := make([]domain.Coordinates, 0, max)
	for i := 0; i < len(coords); i += stride {
		sampled = append(sampled, coords[i])
	}
	return sampled
}

// cacheKey hashes the sampled coordinate sequence with FNV-1a. Stable across
// processes so a shared (Redis) cache stays coherent.
func cacheKey(coords []domain.Coordinates) string {
	h := fnv.New64a()
	var buf [16]byte
	for _, c := range coords {
		binary.LittleEndian.PutUint64(buf[0:8], math.Float64bits(c.Lat))
		binary.LittleEndian.PutUint64(buf[8:16], math.Float64bits(c.Lng))
		h.Write(buf[:])
	}
	return fmt.Sprintf("elev:%016x", h.Sum64())
}
