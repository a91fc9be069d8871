package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// CommandMetric records one executed console command.
type CommandMetric struct {
	Command   string
	Duration  time.Duration
	Timestamp time.Time
}

// Store handles persistence of command metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves a metric. A zero timestamp is filled with the current
// time.
func (s *Store) Record(ctx context.Context, m CommandMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO command_metrics (command, duration_ms, recorded_at) VALUES (?, ?, ?)",
		m.Command, m.Duration.Milliseconds(), ts)
	if err != nil {
		return fmt.Errorf("failed to record command metric: %w", err)
	}
	return nil
}

// Cleanup removes records older than the specified number of days and
// returns how many were deleted.
func (s *Store) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	threshold := time.Now().UTC().AddDate(0, 0, -olderThanDays)
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM command_metrics WHERE recorded_at < ?", threshold)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up command metrics: %w", err)
	}
	return res.RowsAffected()
}

// CommandCounts returns how many times each command has run, most used
// first.
func (s *Store) CommandCounts(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT command, COUNT(*) FROM command_metrics GROUP BY command ORDER BY COUNT(*) DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to count command metrics: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var command string
		var count int
		if err := rows.Scan(&command, &count); err != nil {
			return nil, fmt.Errorf("failed to scan command count: %w", err)
		}
		counts[command] = count
	}
	return counts, rows.Err()
}
