package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dinkhousedev/dink-house-scheduler/internal/domain/schedule"
	"github.com/dinkhousedev/dink-house-scheduler/internal/platform/logging"
)

// OverrideService manages single-date exceptions to a recurring definition.
// "Edit this instance only" and "cancel this instance" both land here; the
// series itself is never touched.
type OverrideService struct {
	scheduleRepo schedule.Repository
	overrideRepo schedule.OverrideRepository
	logger       *logging.Logger
}

func NewOverrideService(
	scheduleRepo schedule.Repository,
	overrideRepo schedule.OverrideRepository,
	logger *logging.Logger,
) *OverrideService {
	if logger == nil {
		logger = logging.Default()
	}
	return &OverrideService{
		scheduleRepo: scheduleRepo,
		overrideRepo: overrideRepo,
		logger:       logger,
	}
}

type OverrideInstanceInput struct {
	Name         string
	StartTime    *schedule.TimeOfDay
	EndTime      *schedule.TimeOfDay
	Instructions string
}

// OverrideInstance replaces one occurrence of the series on the given date.
// Repeated overrides for the same date collapse into one row; the newest
// write wins.
func (s *OverrideService) OverrideInstance(ctx context.Context, definitionID string, date time.Time, input OverrideInstanceInput) (schedule.Override, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OverrideService.OverrideInstance")
	defer span.End()

	def, err := s.requireOccurrence(ctx, definitionID, date)
	if err != nil {
		return schedule.Override{}, err
	}

	ov := schedule.Override{
		DefinitionID: def.ID,
		Date:         date,
		Name:         input.Name,
		StartTime:    input.StartTime,
		EndTime:      input.EndTime,
		Instructions: input.Instructions,
	}
	if err := ov.Validate(); err != nil {
		return schedule.Override{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.overrideRepo.Upsert(ctx, ov); err != nil {
		return schedule.Override{}, fmt.Errorf("%w: upsert override: %v", ErrDependencyUnavailable, err)
	}

	s.logger.InfoContext(ctx, "occurrence overridden",
		"schedule_id", def.ID,
		"date", date.Format(schedule.DateLayout),
	)
	return ov, nil
}

// CancelInstance removes a single occurrence while leaving the series and
// all other occurrences intact.
func (s *OverrideService) CancelInstance(ctx context.Context, definitionID string, date time.Time) (schedule.Override, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OverrideService.CancelInstance")
	defer span.End()

	def, err := s.requireOccurrence(ctx, definitionID, date)
	if err != nil {
		return schedule.Override{}, err
	}

	ov := schedule.Override{
		DefinitionID: def.ID,
		Date:         date,
		IsCancelled:  true,
	}
	if err := s.overrideRepo.Upsert(ctx, ov); err != nil {
		return schedule.Override{}, fmt.Errorf("%w: upsert override: %v", ErrDependencyUnavailable, err)
	}

	s.logger.InfoContext(ctx, "occurrence cancelled",
		"schedule_id", def.ID,
		"date", date.Format(schedule.DateLayout),
	)
	return ov, nil
}

// ClearOverride restores the series behavior for a date by deleting its
// override row, whether the override was an edit or a cancellation.
func (s *OverrideService) ClearOverride(ctx context.Context, definitionID string, date time.Time) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.OverrideService.ClearOverride")
	defer span.End()

	if _, err := s.requireDefinition(ctx, definitionID); err != nil {
		return err
	}

	if err := s.overrideRepo.Delete(ctx, definitionID, date); err != nil {
		if errors.Is(err, schedule.ErrOverrideNotFound) {
			return fmt.Errorf("%w: no override for schedule=%s date=%s",
				ErrNotFound, definitionID, date.Format(schedule.DateLayout))
		}
		return fmt.Errorf("%w: delete override: %v", ErrDependencyUnavailable, err)
	}

	s.logger.InfoContext(ctx, "override cleared",
		"schedule_id", definitionID,
		"date", date.Format(schedule.DateLayout),
	)
	return nil
}

func (s *OverrideService) ListForDefinition(ctx context.Context, definitionID string) ([]schedule.Override, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OverrideService.ListForDefinition")
	defer span.End()

	if _, err := s.requireDefinition(ctx, definitionID); err != nil {
		return nil, err
	}

	overrides, err := s.overrideRepo.ListByDefinition(ctx, definitionID)
	if err != nil {
		return nil, fmt.Errorf("%w: list overrides: %v", ErrDependencyUnavailable, err)
	}
	return overrides, nil
}

func (s *OverrideService) requireDefinition(ctx context.Context, definitionID string) (schedule.Definition, error) {
	def, ok, err := s.scheduleRepo.GetByID(ctx, definitionID)
	if err != nil {
		return schedule.Definition{}, fmt.Errorf("%w: get definition: %v", ErrDependencyUnavailable, err)
	}
	if !ok {
		return schedule.Definition{}, fmt.Errorf("%w: schedule=%s", ErrNotFound, definitionID)
	}
	return def, nil
}

// requireOccurrence validates that the date is actually an occurrence of the
// series: right weekday and within the effective range.
func (s *OverrideService) requireOccurrence(ctx context.Context, definitionID string, date time.Time) (schedule.Definition, error) {
	def, err := s.requireDefinition(ctx, definitionID)
	if err != nil {
		return schedule.Definition{}, err
	}

	if date.Weekday() != def.Weekday {
		return schedule.Definition{}, fmt.Errorf(
			"%w: %s is a %s, schedule recurs on %s",
			ErrInvalidInput, date.Format(schedule.DateLayout), date.Weekday(), def.Weekday)
	}
	if !def.HasEffectiveBounds() {
		return schedule.Definition{}, fmt.Errorf("%w: %v", ErrInvalidInput, schedule.ErrMissingEffectiveBounds)
	}
	if date.Before(def.EffectiveFrom) || date.After(def.EffectiveUntil) {
		return schedule.Definition{}, fmt.Errorf(
			"%w: %s is outside the effective range %s..%s",
			ErrInvalidInput,
			date.Format(schedule.DateLayout),
			def.EffectiveFrom.Format(schedule.DateLayout),
			def.EffectiveUntil.Format(schedule.DateLayout))
	}
	return def, nil
}
