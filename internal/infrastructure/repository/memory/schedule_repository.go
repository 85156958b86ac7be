package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dinkhousedev/dink-house-scheduler/internal/domain/schedule"
)

// ScheduleRepository is the in-memory definition store used by tests and
// local development. It mirrors the postgres repository's contract, including
// all-or-nothing inserts and override cascade on delete.
type ScheduleRepository struct {
	mu        sync.RWMutex
	defs      map[string]schedule.Definition
	overrides *OverrideRepository

	// FailReads simulates a registry outage so callers can verify the
	// fail-closed behavior of the conflict check path.
	FailReads bool
}

func NewScheduleRepository(overrides *OverrideRepository) *ScheduleRepository {
	return &ScheduleRepository{
		defs:      make(map[string]schedule.Definition),
		overrides: overrides,
	}
}

var errSimulatedOutage = fmt.Errorf("simulated definition store outage")

func (r *ScheduleRepository) ListActive(_ context.Context, weekday time.Weekday) ([]schedule.Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.FailReads {
		return nil, errSimulatedOutage
	}

	out := make([]schedule.Definition, 0)
	for _, d := range r.defs {
		if d.Weekday != weekday || !d.InConflictScope() {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ScheduleRepository) InsertAll(_ context.Context, defs []schedule.Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Validate the whole batch before touching state so a failing sibling
	// never leaves earlier weekdays behind.
	for _, d := range defs {
		if d.ID == "" {
			return fmt.Errorf("definition without id")
		}
		if _, exists := r.defs[d.ID]; exists {
			return fmt.Errorf("definition %s already exists", d.ID)
		}
	}
	for _, d := range defs {
		r.defs[d.ID] = d
	}
	return nil
}

func (r *ScheduleRepository) GetByID(_ context.Context, id string) (schedule.Definition, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.defs[id]
	return d, ok, nil
}

func (r *ScheduleRepository) UpdateSeries(_ context.Context, def schedule.Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.defs[def.ID]; !ok {
		return fmt.Errorf("definition %s not found", def.ID)
	}
	r.defs[def.ID] = def
	return nil
}

func (r *ScheduleRepository) SetActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.defs[id]
	if !ok {
		return fmt.Errorf("definition %s not found", id)
	}
	d.IsActive = active
	r.defs[id] = d
	return nil
}

func (r *ScheduleRepository) Cancel(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.defs[id]
	if !ok {
		return fmt.Errorf("definition %s not found", id)
	}
	d.IsCancelled = true
	r.defs[id] = d
	return nil
}

func (r *ScheduleRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	if _, ok := r.defs[id]; !ok {
		r.mu.Unlock()
		return fmt.Errorf("definition %s not found", id)
	}
	delete(r.defs, id)
	r.mu.Unlock()

	if r.overrides != nil {
		r.overrides.deleteAllForDefinition(id)
	}
	return nil
}

// ListAll returns every stored definition, active or not. Test helper.
func (r *ScheduleRepository) ListAll() []schedule.Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]schedule.Definition, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
