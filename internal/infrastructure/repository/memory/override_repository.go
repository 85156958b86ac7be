package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dinkhousedev/dink-house-scheduler/internal/domain/schedule"
)

type overrideKey struct {
	definitionID string
	date         string
}

type OverrideRepository struct {
	mu        sync.RWMutex
	overrides map[overrideKey]schedule.Override
}

func NewOverrideRepository() *OverrideRepository {
	return &OverrideRepository{overrides: make(map[overrideKey]schedule.Override)}
}

func keyFor(definitionID string, date time.Time) overrideKey {
	return overrideKey{definitionID: definitionID, date: date.Format(schedule.DateLayout)}
}

func (r *OverrideRepository) Upsert(_ context.Context, o schedule.Override) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.overrides[keyFor(o.DefinitionID, o.Date)] = o
	return nil
}

func (r *OverrideRepository) Get(_ context.Context, definitionID string, date time.Time) (schedule.Override, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.overrides[keyFor(definitionID, date)]
	return o, ok, nil
}

func (r *OverrideRepository) ListByDefinition(_ context.Context, definitionID string) ([]schedule.Override, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]schedule.Override, 0)
	for _, o := range r.overrides {
		if o.DefinitionID == definitionID {
			out = append(out, o)
		}
	}
	sortOverrides(out)
	return out, nil
}

func (r *OverrideRepository) ListForRange(_ context.Context, from, to time.Time) ([]schedule.Override, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]schedule.Override, 0)
	for _, o := range r.overrides {
		if o.Date.Before(from) || o.Date.After(to) {
			continue
		}
		out = append(out, o)
	}
	sortOverrides(out)
	return out, nil
}

func (r *OverrideRepository) Delete(_ context.Context, definitionID string, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := keyFor(definitionID, date)
	if _, ok := r.overrides[k]; !ok {
		return schedule.ErrOverrideNotFound
	}
	delete(r.overrides, k)
	return nil
}

func (r *OverrideRepository) deleteAllForDefinition(definitionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for k := range r.overrides {
		if k.definitionID == definitionID {
			delete(r.overrides, k)
		}
	}
}

func sortOverrides(out []schedule.Override) {
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].DefinitionID < out[j].DefinitionID
	})
}
