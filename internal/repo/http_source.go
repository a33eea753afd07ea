// Package repo implements observation sources: clients that fetch per-query
// AI-overview checks for a tenant window from the upstream data provider.
package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/dealershipai/aoer-engine/internal/cache"
	"github.com/dealershipai/aoer-engine/internal/models"
)

// HTTPSource fetches observations from the query-check provider over JSON
// HTTP, with optional cache read-through keyed per tenant window.
type HTTPSource struct {
	baseURL          string
	observationsPath string
	httpClient       *http.Client
	cache            cache.Provider
	cacheTTL         time.Duration
}

// NewHTTPSource constructs a source targeting the configured provider.
func NewHTTPSource(baseURL, observationsPath string, timeout time.Duration, cacheProvider cache.Provider, cacheTTL time.Duration) *HTTPSource {
	if cacheProvider == nil {
		cacheProvider = cache.NoopProvider{}
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if cacheTTL < 0 {
		cacheTTL = 0
	}
	return &HTTPSource{
		baseURL:          strings.TrimRight(baseURL, "/"),
		observationsPath: observationsPath,
		httpClient:       &http.Client{Timeout: timeout},
		cache:            cacheProvider,
		cacheTTL:         cacheTTL,
	}
}

// FetchRecentObservations returns all checks from since up to now.
func (s *HTTPSource) FetchRecentObservations(ctx context.Context, tenantID string, since time.Time) ([]models.Observation, error) {
	return s.FetchWindowObservations(ctx, tenantID, since, time.Now().UTC())
}

// FetchWindowObservations returns checks whose timestamp falls in [start, end).
func (s *HTTPSource) FetchWindowObservations(ctx context.Context, tenantID string, start, end time.Time) ([]models.Observation, error) {
	if s == nil {
		return nil, fmt.Errorf("observation source not initialised")
	}
	if s.baseURL == "" {
		return nil, fmt.Errorf("observation provider base URL not configured")
	}

	cacheKey := ""
	if s.cacheTTL > 0 {
		cacheKey = observationsCacheKey(tenantID, start, end)
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var cached []models.Observation
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	payload := map[string]interface{}{
		"tenant_id": tenantID,
		"start":     start.Format(time.RFC3339),
		"end":       end.Format(time.RFC3339),
	}

	var response struct {
		Observations []models.Observation `json:"observations"`
	}
	if err := s.postJSON(ctx, s.observationsURL(), payload, &response); err != nil {
		return nil, fmt.Errorf("observation provider request failed: %w", err)
	}

	if s.cacheTTL > 0 && cacheKey != "" && len(response.Observations) > 0 {
		if data, err := json.Marshal(response.Observations); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, s.cacheTTL)
		}
	}
	return response.Observations, nil
}

// observationsCacheKey truncates the window bounds to the hour so repeated
// trailing-window fetches within the TTL share an entry.
func observationsCacheKey(tenantID string, start, end time.Time) string {
	return fmt.Sprintf("aoer:obs:%s:%d:%d",
		tenantID, start.Truncate(time.Hour).Unix(), end.Truncate(time.Hour).Unix())
}

func (s *HTTPSource) observationsURL() string {
	cleaned := "/" + strings.TrimLeft(s.observationsPath, "/")
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return s.baseURL + cleaned
	}
	u.Path = path.Join(u.Path, cleaned)
	return u.String()
}

func (s *HTTPSource) postJSON(ctx context.Context, endpoint string, payload any, out any) error {
	if endpoint == "" {
		return fmt.Errorf("empty endpoint")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("observation provider returned %s", resp.Status)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
