package usecase

import (
	"context"
	"fmt"

	"github.com/dinkhousedev/dink-house-scheduler/internal/domain/court"
)

// CourtService exposes the court registry to the console. The registry is
// effectively static; this service exists so handlers never touch
// repositories directly.
type CourtService struct {
	courtRepo court.Repository
}

func NewCourtService(courtRepo court.Repository) *CourtService {
	return &CourtService{courtRepo: courtRepo}
}

func (s *CourtService) List(ctx context.Context) ([]court.Court, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CourtService.List")
	defer span.End()

	courts, err := s.courtRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list courts: %v", ErrDependencyUnavailable, err)
	}
	return courts, nil
}

func (s *CourtService) Get(ctx context.Context, id string) (court.Court, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CourtService.Get")
	defer span.End()

	c, ok, err := s.courtRepo.GetByID(ctx, id)
	if err != nil {
		return court.Court{}, fmt.Errorf("%w: get court: %v", ErrDependencyUnavailable, err)
	}
	if !ok {
		return court.Court{}, fmt.Errorf("%w: court=%s", ErrNotFound, id)
	}
	return c, nil
}
