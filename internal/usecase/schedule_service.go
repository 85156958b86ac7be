package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/dinkhousedev/dink-house-scheduler/internal/domain/court"
	"github.com/dinkhousedev/dink-house-scheduler/internal/domain/schedule"
	idgen "github.com/dinkhousedev/dink-house-scheduler/internal/platform/id"
	"github.com/dinkhousedev/dink-house-scheduler/internal/platform/logging"
)

// ScheduleService owns the create/edit lifecycle of recurring schedule
// blocks. The in-process conflict check here is advisory UX; the storage
// layer's exclusion constraint remains the final word on double-booking.
type ScheduleService struct {
	courtRepo    court.Repository
	scheduleRepo schedule.Repository
	idGen        idgen.Generator
	logger       *logging.Logger
}

func NewScheduleService(
	courtRepo court.Repository,
	scheduleRepo schedule.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *ScheduleService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScheduleService{
		courtRepo:    courtRepo,
		scheduleRepo: scheduleRepo,
		idGen:        idGen,
		logger:       logger,
	}
}

type CreateScheduleInput struct {
	Name           string
	Description    string
	Weekdays       []time.Weekday
	StartTime      schedule.TimeOfDay
	EndTime        schedule.TimeOfDay
	EffectiveFrom  time.Time
	EffectiveUntil time.Time
	// Category is optional; when empty it is inferred from the resolved
	// session name.
	Category schedule.SessionCategory
}

// ConflictReport aggregates the advisory check across every requested
// weekday.
type ConflictReport struct {
	HasConflicts bool
	ByWeekday    map[time.Weekday][]schedule.Definition
}

// Create materializes one definition per selected weekday, conflict-checks
// each independently, and persists all of them in a single all-or-nothing
// write. Any conflicting weekday rejects the whole submission.
func (s *ScheduleService) Create(ctx context.Context, input CreateScheduleInput) ([]schedule.Definition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Create")
	defer span.End()

	defs, err := s.buildDefinitions(ctx, input, true)
	if err != nil {
		return nil, err
	}

	report, err := s.checkDefinitions(ctx, defs, "")
	if err != nil {
		return nil, err
	}
	if report.HasConflicts {
		return nil, &ConflictError{ByWeekday: report.ByWeekday}
	}

	if err := s.scheduleRepo.InsertAll(ctx, defs); err != nil {
		if errors.Is(err, schedule.ErrStorageConflict) {
			// A concurrent submission won the race; the constraint caught
			// what the advisory check could not.
			return nil, fmt.Errorf("%w: storage constraint rejected booking: %v", ErrConflict, err)
		}
		return nil, fmt.Errorf("%w: insert definitions: %v", ErrDependencyUnavailable, err)
	}

	s.logger.InfoContext(ctx, "schedule created",
		"name", input.Name,
		"weekdays", len(defs),
		"allocations", len(defs[0].Allocations),
	)
	return defs, nil
}

type CheckConflictsInput struct {
	Name           string
	Weekdays       []time.Weekday
	StartTime      schedule.TimeOfDay
	EndTime        schedule.TimeOfDay
	EffectiveFrom  time.Time
	EffectiveUntil time.Time
	Category       schedule.SessionCategory
	// ExcludeDefinitionID drops one definition from the comparison set, for
	// re-checks while editing an existing series.
	ExcludeDefinitionID string
}

// CheckConflicts runs the advisory conflict check without persisting
// anything. Read failures propagate: a check that cannot see the existing
// definitions must not answer "no conflicts".
func (s *ScheduleService) CheckConflicts(ctx context.Context, input CheckConflictsInput) (ConflictReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.CheckConflicts")
	defer span.End()

	defs, err := s.buildDefinitions(ctx, CreateScheduleInput{
		Name:           input.Name,
		Weekdays:       input.Weekdays,
		StartTime:      input.StartTime,
		EndTime:        input.EndTime,
		EffectiveFrom:  input.EffectiveFrom,
		EffectiveUntil: input.EffectiveUntil,
		Category:       input.Category,
	}, false)
	if err != nil {
		return ConflictReport{}, err
	}

	return s.checkDefinitions(ctx, defs, input.ExcludeDefinitionID)
}

func (s *ScheduleService) GetByID(ctx context.Context, id string) (schedule.Definition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.GetByID")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return schedule.Definition{}, fmt.Errorf("%w: schedule id is required", ErrInvalidInput)
	}

	def, ok, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		return schedule.Definition{}, fmt.Errorf("%w: get definition: %v", ErrDependencyUnavailable, err)
	}
	if !ok {
		return schedule.Definition{}, fmt.Errorf("%w: schedule=%s", ErrNotFound, id)
	}
	return def, nil
}

func (s *ScheduleService) ListActive(ctx context.Context, weekday time.Weekday) ([]schedule.Definition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.ListActive")
	defer span.End()

	if weekday < time.Sunday || weekday > time.Saturday {
		return nil, fmt.Errorf("%w: invalid weekday %d", ErrInvalidInput, weekday)
	}

	defs, err := s.scheduleRepo.ListActive(ctx, weekday)
	if err != nil {
		return nil, fmt.Errorf("%w: list definitions: %v", ErrDependencyUnavailable, err)
	}
	return defs, nil
}

type UpdateSeriesInput struct {
	Name           string
	Description    string
	StartTime      schedule.TimeOfDay
	EndTime        schedule.TimeOfDay
	EffectiveFrom  time.Time
	EffectiveUntil time.Time
	Category       schedule.SessionCategory
}

// UpdateSeries edits the recurring definition itself; the change is visible
// to every future materialized instance. Allocations are re-resolved from the
// new name and the edit is re-checked against every other definition.
func (s *ScheduleService) UpdateSeries(ctx context.Context, id string, input UpdateSeriesInput) (schedule.Definition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.UpdateSeries")
	defer span.End()

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return schedule.Definition{}, err
	}

	resolution, category, err := s.resolveForCategory(ctx, input.Name, input.Category)
	if err != nil {
		return schedule.Definition{}, err
	}

	updated := current
	updated.Name = strings.TrimSpace(input.Name)
	updated.Description = input.Description
	updated.StartTime = input.StartTime
	updated.EndTime = input.EndTime
	updated.EffectiveFrom = input.EffectiveFrom
	updated.EffectiveUntil = input.EffectiveUntil
	updated.Category = category
	updated.Allocations = resolution.Allocations

	if err := updated.Validate(); err != nil {
		return schedule.Definition{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	report, err := s.checkDefinitions(ctx, []schedule.Definition{updated}, updated.ID)
	if err != nil {
		return schedule.Definition{}, err
	}
	if report.HasConflicts {
		return schedule.Definition{}, &ConflictError{ByWeekday: report.ByWeekday}
	}

	if err := s.scheduleRepo.UpdateSeries(ctx, updated); err != nil {
		if errors.Is(err, schedule.ErrStorageConflict) {
			return schedule.Definition{}, fmt.Errorf("%w: storage constraint rejected booking: %v", ErrConflict, err)
		}
		return schedule.Definition{}, fmt.Errorf("%w: update definition: %v", ErrDependencyUnavailable, err)
	}

	s.logger.InfoContext(ctx, "schedule series updated", "schedule_id", id)
	return updated, nil
}

// SetActive toggles the reversible soft switch. Inactive series are invisible
// to conflict checks and the calendar.
func (s *ScheduleService) SetActive(ctx context.Context, id string, active bool) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.SetActive")
	defer span.End()

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.scheduleRepo.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("%w: set active: %v", ErrDependencyUnavailable, err)
	}

	s.logger.InfoContext(ctx, "schedule active toggled", "schedule_id", id, "active", active)
	return nil
}

// CancelSeries soft-deletes: the definition stays on record but is excluded
// from conflict checks and materialization. Its overrides are kept.
func (s *ScheduleService) CancelSeries(ctx context.Context, id string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.CancelSeries")
	defer span.End()

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.scheduleRepo.Cancel(ctx, id); err != nil {
		return fmt.Errorf("%w: cancel definition: %v", ErrDependencyUnavailable, err)
	}

	s.logger.InfoContext(ctx, "schedule series cancelled", "schedule_id", id)
	return nil
}

// DeleteSeries removes the definition permanently and cascades its overrides.
func (s *ScheduleService) DeleteSeries(ctx context.Context, id string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.DeleteSeries")
	defer span.End()

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.scheduleRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: delete definition: %v", ErrDependencyUnavailable, err)
	}

	s.logger.InfoContext(ctx, "schedule series deleted", "schedule_id", id)
	return nil
}

func (s *ScheduleService) buildDefinitions(ctx context.Context, input CreateScheduleInput, assignIDs bool) ([]schedule.Definition, error) {
	weekdays, err := normalizeWeekdays(input.Weekdays)
	if err != nil {
		return nil, err
	}

	resolution, category, err := s.resolveForCategory(ctx, input.Name, input.Category)
	if err != nil {
		return nil, err
	}

	defs := make([]schedule.Definition, 0, len(weekdays))
	for _, weekday := range weekdays {
		def := schedule.Definition{
			Name:           strings.TrimSpace(input.Name),
			Description:    input.Description,
			Weekday:        weekday,
			StartTime:      input.StartTime,
			EndTime:        input.EndTime,
			EffectiveFrom:  input.EffectiveFrom,
			EffectiveUntil: input.EffectiveUntil,
			Category:       category,
			Allocations:    resolution.Allocations,
			IsActive:       true,
		}
		if assignIDs {
			defID, err := s.idGen.NewID()
			if err != nil {
				return nil, fmt.Errorf("%w: generate id: %v", ErrDependencyUnavailable, err)
			}
			def.ID = defID
		}
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// resolveForCategory resolves allocations from the session name and settles
// the category. An unrecognized name is an error state unless the staff
// member explicitly chose the mixed category.
func (s *ScheduleService) resolveForCategory(ctx context.Context, name string, category schedule.SessionCategory) (schedule.Resolution, schedule.SessionCategory, error) {
	if strings.TrimSpace(name) == "" {
		return schedule.Resolution{}, "", fmt.Errorf("%w: %v", ErrInvalidInput, schedule.ErrEmptyName)
	}

	courts, err := s.courtRepo.List(ctx)
	if err != nil {
		return schedule.Resolution{}, "", fmt.Errorf("%w: list courts: %v", ErrDependencyUnavailable, err)
	}

	resolution := schedule.Resolve(name, court.AvailableIndoor(courts))

	if category == "" {
		switch resolution.Kind {
		case schedule.ResolutionSkillBand:
			category = schedule.CategoryDedicatedSkill
		case schedule.ResolutionMixed:
			category = schedule.CategoryMixedLevels
		default:
			return schedule.Resolution{}, "", fmt.Errorf(
				"%w: session name %q does not identify a skill band; select a category explicitly",
				ErrInvalidInput, name)
		}
	}
	if !category.Valid() {
		return schedule.Resolution{}, "", fmt.Errorf("%w: %v: %q", ErrInvalidInput, schedule.ErrUnknownCategory, category)
	}
	if category != schedule.CategoryMixedLevels && !resolution.IsResolved() {
		return schedule.Resolution{}, "", fmt.Errorf(
			"%w: session name %q resolves no courts for category %s",
			ErrInvalidInput, name, category)
	}

	return resolution, category, nil
}

// checkDefinitions runs the pure conflict check for every weekday in
// parallel. One repository read per weekday; any read failure fails the whole
// check closed.
func (s *ScheduleService) checkDefinitions(ctx context.Context, defs []schedule.Definition, excludeID string) (ConflictReport, error) {
	byWeekday := make(map[time.Weekday][]schedule.Definition)
	var mu sync.Mutex

	p := pool.New().WithContext(ctx)
	for _, def := range defs {
		def := def
		p.Go(func(ctx context.Context) error {
			existing, err := s.scheduleRepo.ListActive(ctx, def.Weekday)
			if err != nil {
				return fmt.Errorf("list active definitions for weekday %d: %w", def.Weekday, err)
			}
			if excludeID != "" {
				existing = withoutDefinition(existing, excludeID)
			}

			conflicts := schedule.Check(def, existing)
			if len(conflicts) == 0 {
				return nil
			}

			mu.Lock()
			byWeekday[def.Weekday] = conflicts
			mu.Unlock()
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		// Fail closed: a check that could not read the store reports the
		// failure, never "no conflicts".
		return ConflictReport{}, fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}

	return ConflictReport{HasConflicts: len(byWeekday) > 0, ByWeekday: byWeekday}, nil
}

func withoutDefinition(defs []schedule.Definition, id string) []schedule.Definition {
	out := make([]schedule.Definition, 0, len(defs))
	for _, d := range defs {
		if d.ID == id {
			continue
		}
		out = append(out, d)
	}
	return out
}

func normalizeWeekdays(weekdays []time.Weekday) ([]time.Weekday, error) {
	if len(weekdays) == 0 {
		return nil, fmt.Errorf("%w: at least one weekday is required", ErrInvalidInput)
	}

	seen := make(map[time.Weekday]struct{}, len(weekdays))
	out := make([]time.Weekday, 0, len(weekdays))
	for _, w := range weekdays {
		if w < time.Sunday || w > time.Saturday {
			return nil, fmt.Errorf("%w: invalid weekday %d", ErrInvalidInput, w)
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}
