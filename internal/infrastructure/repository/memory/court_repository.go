package memory

import (
	"context"
	"sync"

	"github.com/dinkhousedev/dink-house-scheduler/internal/domain/court"
)

type CourtRepository struct {
	mu     sync.RWMutex
	courts []court.Court
}

func NewCourtRepository(courts []court.Court) *CourtRepository {
	out := make([]court.Court, len(courts))
	copy(out, courts)
	return &CourtRepository{courts: out}
}

func (r *CourtRepository) List(_ context.Context) ([]court.Court, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]court.Court, len(r.courts))
	copy(out, r.courts)
	return out, nil
}

func (r *CourtRepository) GetByID(_ context.Context, id string) (court.Court, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.courts {
		if c.ID == id {
			return c, true, nil
		}
	}
	return court.Court{}, false, nil
}
