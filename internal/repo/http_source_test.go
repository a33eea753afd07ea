package repo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dealershipai/aoer-engine/internal/cache"
	"github.com/dealershipai/aoer-engine/internal/models"
)

type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.entries[key]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return data, nil
}

func (m *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *memoryCache) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *memoryCache) Close() error { return nil }

func sampleChecksHandler(t *testing.T, calls *int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		*calls++
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/v1/query-checks" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		var payload struct {
			TenantID string `json:"tenant_id"`
			Start    string `json:"start"`
			End      string `json:"end"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if payload.TenantID != "tenant-1" {
			t.Errorf("tenant_id = %q, want tenant-1", payload.TenantID)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"observations": []models.Observation{
				{Query: "toyota dealership near me", Intent: models.IntentLocal, Volume: 1200,
					SERPPosition: 2, AIPresent: true, AIPosition: models.AIPositionTop, AITokens: 480},
			},
		})
	}
}

func TestHTTPSourceFetchWindow(t *testing.T) {
	calls := 0
	server := httptest.NewServer(sampleChecksHandler(t, &calls))
	defer server.Close()

	source := NewHTTPSource(server.URL, "/api/v1/query-checks", time.Second, nil, 0)

	end := time.Now().UTC()
	observations, err := source.FetchWindowObservations(context.Background(), "tenant-1", end.Add(-time.Hour), end)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(observations) != 1 {
		t.Fatalf("expected 1 observation, got %d", len(observations))
	}
	if observations[0].Query != "toyota dealership near me" || !observations[0].AIPresent {
		t.Fatalf("unexpected observation: %+v", observations[0])
	}
}

func TestHTTPSourceCacheReadThrough(t *testing.T) {
	calls := 0
	server := httptest.NewServer(sampleChecksHandler(t, &calls))
	defer server.Close()

	source := NewHTTPSource(server.URL, "/api/v1/query-checks", time.Second, newMemoryCache(), 10*time.Minute)

	end := time.Now().UTC()
	start := end.Add(-time.Hour)
	for i := 0; i < 3; i++ {
		observations, err := source.FetchWindowObservations(context.Background(), "tenant-1", start, end)
		if err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
		if len(observations) != 1 {
			t.Fatalf("fetch %d: expected 1 observation, got %d", i, len(observations))
		}
	}
	if calls != 1 {
		t.Fatalf("expected a single upstream call, got %d", calls)
	}
}

func TestHTTPSourceServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	source := NewHTTPSource(server.URL, "/api/v1/query-checks", time.Second, nil, 0)
	if _, err := source.FetchRecentObservations(context.Background(), "tenant-1", time.Now().Add(-time.Hour)); err == nil {
		t.Fatalf("expected error on upstream failure")
	}
}

func TestHTTPSourceMissingBaseURL(t *testing.T) {
	source := NewHTTPSource("", "/api/v1/query-checks", time.Second, nil, 0)
	if _, err := source.FetchRecentObservations(context.Background(), "tenant-1", time.Now()); err == nil {
		t.Fatalf("expected error when base URL is unset")
	}
}

func TestObservationsCacheKeyHourBuckets(t *testing.T) {
	base := time.Date(2026, time.March, 15, 12, 5, 0, 0, time.UTC)
	a := observationsCacheKey("tenant-1", base, base.Add(time.Hour))
	b := observationsCacheKey("tenant-1", base.Add(10*time.Minute), base.Add(70*time.Minute))
	if a != b {
		t.Fatalf("expected fetches within the hour to share a key, got %q vs %q", a, b)
	}
	c := observationsCacheKey("tenant-2", base, base.Add(time.Hour))
	if a == c {
		t.Fatalf("expected tenant isolation in cache keys")
	}
}
