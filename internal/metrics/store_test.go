package metrics

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"meal-planner/internal/database"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "meals.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return NewStore(db.SQL)
}

func TestRecordAndCount(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for _, cmd := range []string{"add", "add", "show"} {
		if err := store.Record(ctx, CommandMetric{Command: cmd, Duration: 5 * time.Millisecond}); err != nil {
			t.Fatalf("Failed to record metric: %v", err)
		}
	}

	counts, err := store.CommandCounts(ctx)
	if err != nil {
		t.Fatalf("Failed to read counts: %v", err)
	}
	if counts["add"] != 2 {
		t.Errorf("Expected 2 'add' records, got %d", counts["add"])
	}
	if counts["show"] != 1 {
		t.Errorf("Expected 1 'show' record, got %d", counts["show"])
	}
}

func TestCleanup(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	old := CommandMetric{
		Command:   "plan",
		Duration:  time.Second,
		Timestamp: time.Now().UTC().AddDate(0, 0, -60),
	}
	if err := store.Record(ctx, old); err != nil {
		t.Fatalf("Failed to record old metric: %v", err)
	}
	if err := store.Record(ctx, CommandMetric{Command: "save", Duration: time.Second}); err != nil {
		t.Fatalf("Failed to record recent metric: %v", err)
	}

	removed, err := store.Cleanup(ctx, 30)
	if err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("Expected 1 removed record, got %d", removed)
	}

	counts, err := store.CommandCounts(ctx)
	if err != nil {
		t.Fatalf("Failed to read counts: %v", err)
	}
	if counts["plan"] != 0 {
		t.Errorf("Expected old 'plan' record to be gone, found %d", counts["plan"])
	}
	if counts["save"] != 1 {
		t.Errorf("Expected recent 'save' record to survive, got %d", counts["save"])
	}
}
