package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"nutriplan/internal/shared"
)

// SelectionMetric records metadata for a single slot selection.
type SelectionMetric struct {
	Slot            string
	MealName        string
	Policy          string
	Score           float64
	NutritionSource string
	LatencyMS       int64
	Timestamp       time.Time
}

// Store handles persistence of metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves a metric to the database.
func (s *Store) Record(ctx context.Context, m SelectionMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO selection_metrics (slot, meal_name, policy, score, nutrition_source, latency_ms, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.Slot, m.MealName, m.Policy, m.Score, m.NutritionSource, m.LatencyMS, ts.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert selection metric: %w", err)
	}
	return nil
}

// RecordMeta records metrics directly from shared.SelectionMeta.
func (s *Store) RecordMeta(ctx context.Context, metas ...shared.SelectionMeta) error {
	for _, meta := range metas {
		if err := s.Record(ctx, MapSelection(meta)); err != nil {
			return err
		}
	}
	return nil
}

// DailyUsage represents selection totals for a single day.
type DailyUsage struct {
	Date           string
	TotalSelection int
	Random         int
	BestMatch      int
	Fallback       int
	LookupHits     int
	AvgLatencyMS   float64
}

// GetDailyUsage retrieves usage for the last N days, newest first.
func (s *Store) GetDailyUsage(ctx context.Context, days int) ([]DailyUsage, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	rows, err := s.db.QueryContext(ctx, `
		SELECT substr(timestamp, 1, 10) AS day,
		       COUNT(*),
		       SUM(CASE WHEN policy = ? THEN 1 ELSE 0 END),
		       SUM(CASE WHEN policy = ? THEN 1 ELSE 0 END),
		       SUM(CASE WHEN policy = ? THEN 1 ELSE 0 END),
		       SUM(CASE WHEN nutrition_source = 'lookup' THEN 1 ELSE 0 END),
		       AVG(latency_ms)
		FROM selection_metrics
		WHERE timestamp >= ?
		GROUP BY day
		ORDER BY day DESC`,
		string(shared.PolicyRandom), string(shared.PolicyBestMatch), string(shared.PolicyFallback), since)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily usage: %w", err)
	}
	defer rows.Close()

	var results []DailyUsage
	for rows.Next() {
		var (
			u   DailyUsage
			day sql.NullString
			avg sql.NullFloat64
		)
		if err := rows.Scan(&day, &u.TotalSelection, &u.Random, &u.BestMatch, &u.Fallback, &u.LookupHits, &avg); err != nil {
			return nil, fmt.Errorf("failed to scan daily usage: %w", err)
		}
		u.Date = "Unknown"
		if day.Valid {
			u.Date = day.String
		}
		if avg.Valid {
			u.AvgLatencyMS = avg.Float64
		}
		results = append(results, u)
	}
	return results, rows.Err()
}

// Cleanup removes records older than the specified number of days and
// returns how many were removed.
func (s *Store) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	threshold := time.Now().UTC().AddDate(0, 0, -olderThanDays)
	res, err := s.db.ExecContext(ctx, `DELETE FROM selection_metrics WHERE timestamp < ?`, threshold)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up selection metrics: %w", err)
	}
	return res.RowsAffected()
}

// MapSelection converts shared.SelectionMeta to a SelectionMetric.
func MapSelection(meta shared.SelectionMeta) SelectionMetric {
	return SelectionMetric{
		Slot:            meta.Slot,
		MealName:        meta.MealName,
		Policy:          string(meta.Policy),
		Score:           meta.Score,
		NutritionSource: meta.NutritionSource,
		LatencyMS:       meta.Latency.Milliseconds(),
		Timestamp:       time.Now().UTC(),
	}
}
