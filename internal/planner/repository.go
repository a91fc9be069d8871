package planner

import (
	"context"
	"database/sql"
	"fmt"
)

// PlanRepository is a database-backed repository for weekly plan rows.
type PlanRepository struct {
	db *sql.DB
}

// NewPlanRepository creates a new PlanRepository.
func NewPlanRepository(d *sql.DB) *PlanRepository {
	return &PlanRepository{db: d}
}

// Insert appends one plan row. Storage does not enforce day uniqueness;
// replanning the same week appends further rows.
func (r *PlanRepository) Insert(ctx context.Context, e Entry) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO plan (day, breakfast, lunch, dinner) VALUES (?, ?, ?, ?)",
		e.Day, e.Breakfast, e.Lunch, e.Dinner)
	if err != nil {
		return fmt.Errorf("failed to insert plan entry for %s: %w", e.Day, err)
	}
	return nil
}

// Entries returns every stored plan row in storage order.
func (r *PlanRepository) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT day, breakfast, lunch, dinner FROM plan")
	if err != nil {
		return nil, fmt.Errorf("failed to list plan entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Day, &e.Breakfast, &e.Lunch, &e.Dinner); err != nil {
			return nil, fmt.Errorf("failed to scan plan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
