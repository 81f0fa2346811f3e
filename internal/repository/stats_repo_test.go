package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// TestStatsGetCreatesFile verifies a first read yields zero values and
// materializes the file
func TestStatsGetCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	repo := NewStatsRepository(path)

	stats, err := repo.Get(context.Background())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if stats.TotalVisits != 0 || stats.TodayVisits != 0 || stats.LastDate != "" {
		t.Errorf("Fresh stats = %+v, want zero values", stats)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Stats file not created: %v", err)
	}
}

// TestStatsUpdateSameDay verifies repeated visits on one date accumulate both
// counters
func TestStatsUpdateSameDay(t *testing.T) {
	repo := NewStatsRepository(filepath.Join(t.TempDir(), "stats.json"))
	ctx := context.Background()

	first, err := repo.Update(ctx, "2025-06-01")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if first.TotalVisits != 1 || first.TodayVisits != 1 || first.LastDate != "2025-06-01" {
		t.Errorf("First visit = %+v, want totals 1/1", first)
	}

	second, err := repo.Update(ctx, "2025-06-01")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if second.TotalVisits != 2 || second.TodayVisits != 2 {
		t.Errorf("Second visit = %+v, want totals 2/2", second)
	}
}

// TestStatsUpdateRollover verifies a new date resets the daily counter but
// keeps the running total
func TestStatsUpdateRollover(t *testing.T) {
	repo := NewStatsRepository(filepath.Join(t.TempDir(), "stats.json"))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := repo.Update(ctx, "2025-06-01"); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
	}

	rolled, err := repo.Update(ctx, "2025-06-02")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if rolled.TodayVisits != 1 {
		t.Errorf("TodayVisits after rollover = %d, want 1", rolled.TodayVisits)
	}
	if rolled.TotalVisits != 4 {
		t.Errorf("TotalVisits after rollover = %d, want 4", rolled.TotalVisits)
	}
	if rolled.LastDate != "2025-06-02" {
		t.Errorf("LastDate = %q, want %q", rolled.LastDate, "2025-06-02")
	}
}
