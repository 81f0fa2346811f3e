package repository

import (
	"context"
	"sync"

	"github.com/doubletutu/portfolio-api/internal/domain"
)

// StatsRepository persists the singleton visit counter in a JSON file.
type StatsRepository struct {
	path string
	mu   sync.Mutex
}

// NewStatsRepository creates a StatsRepository backed by the file at path.
func NewStatsRepository(path string) *StatsRepository {
	return &StatsRepository{path: path}
}

// Get returns the current visit stats. A missing file yields the zero-value
// record and creates the file so later updates start from a known state.
func (r *StatsRepository) Get(ctx context.Context) (*domain.VisitStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ensure()
}

func (r *StatsRepository) ensure() (*domain.VisitStats, error) {
	var stats domain.VisitStats
	if err := readJSONFile(r.path, &stats); err != nil {
		return nil, err
	}
	if stats.LastDate == "" && stats.TotalVisits == 0 && stats.TodayVisits == 0 {
		if err := writeJSONFile(r.path, &stats); err != nil {
			return nil, err
		}
	}
	return &stats, nil
}

// Update records one visit for the given calendar date. TotalVisits always
// increments; TodayVisits increments while the date matches the stored
// LastDate and resets to 1 when a new date arrives.
func (r *StatsRepository) Update(ctx context.Context, today string) (*domain.VisitStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, err := r.ensure()
	if err != nil {
		return nil, err
	}

	if stats.LastDate != today {
		stats.TodayVisits = 1
		stats.LastDate = today
	} else {
		stats.TodayVisits++
	}
	stats.TotalVisits++

	if err := writeJSONFile(r.path, stats); err != nil {
		return nil, err
	}
	return stats, nil
}
