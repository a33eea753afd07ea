package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/dealershipai/aoer-engine/internal/models"
)

// PostgresSource reads query checks straight from the backing store, joining
// each check to its monitored query for intent and volume.
type PostgresSource struct {
	db *sql.DB
}

// NewPostgresSource opens a pooled connection to the configured database and
// pings it so misconfiguration fails at startup rather than on first fetch.
func NewPostgresSource(ctx context.Context, dsn string) (*PostgresSource, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(8)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &PostgresSource{db: db}, nil
}

const observationQuery = `
SELECT q.query_text,
       q.intent,
       q.monthly_volume,
       COALESCE(c.serp_position, 0),
       c.ai_present,
       COALESCE(c.ai_position, 'none'),
       c.has_our_citation,
       COALESCE(c.ai_tokens, 0),
       COALESCE(c.ai_links_count, 0),
       COALESCE(c.paa_present, FALSE),
       COALESCE(c.map_pack_present, FALSE),
       COALESCE(c.shopping_present, FALSE),
       c.checked_at
  FROM query_checks c
  JOIN monitored_queries q ON q.id = c.query_id
 WHERE q.tenant_id = $1
   AND c.checked_at >= $2
   AND c.checked_at < $3
 ORDER BY c.checked_at DESC`

// FetchRecentObservations returns all checks from since up to now.
func (s *PostgresSource) FetchRecentObservations(ctx context.Context, tenantID string, since time.Time) ([]models.Observation, error) {
	return s.FetchWindowObservations(ctx, tenantID, since, time.Now().UTC())
}

// FetchWindowObservations returns checks whose timestamp falls in [start, end).
// The bounded form also serves previous-window fetches for trend reports.
func (s *PostgresSource) FetchWindowObservations(ctx context.Context, tenantID string, start, end time.Time) ([]models.Observation, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("postgres source not initialised")
	}

	rows, err := s.db.QueryContext(ctx, observationQuery, tenantID, start, end)
	if err != nil {
		return nil, fmt.Errorf("query observations: %w", err)
	}
	defer rows.Close()

	observations := make([]models.Observation, 0, 64)
	for rows.Next() {
		var (
			obs        models.Observation
			intent     string
			aiPosition string
		)
		if err := rows.Scan(
			&obs.Query,
			&intent,
			&obs.Volume,
			&obs.SERPPosition,
			&obs.AIPresent,
			&aiPosition,
			&obs.HasOurCitation,
			&obs.AITokens,
			&obs.AILinksCount,
			&obs.PAAPresent,
			&obs.MapPackPresent,
			&obs.ShoppingPresent,
			&obs.CheckedAt,
		); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		obs.Intent = models.Intent(intent)
		obs.AIPosition = models.AIPosition(aiPosition)
		observations = append(observations, obs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate observations: %w", err)
	}
	return observations, nil
}

// Close releases the connection pool.
func (s *PostgresSource) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
