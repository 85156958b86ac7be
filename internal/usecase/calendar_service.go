package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/dinkhousedev/dink-house-scheduler/internal/domain/schedule"
	"github.com/dinkhousedev/dink-house-scheduler/internal/platform/logging"
)

const (
	// materializeWorkers bounds the fan-out while expanding definitions into
	// dated occurrences.
	materializeWorkers = 8

	// maxCalendarRangeDays guards the materializer against runaway ranges.
	maxCalendarRangeDays = 366
)

// Occurrence is one dated instance of a recurring definition after overrides
// are applied. Cancelled occurrences are omitted from calendar output.
type Occurrence struct {
	DefinitionID string
	Date         time.Time
	Name         string
	StartTime    schedule.TimeOfDay
	EndTime      schedule.TimeOfDay
	Category     schedule.SessionCategory
	Allocations  []schedule.CourtAllocation
	Instructions string
	IsOverridden bool
}

// CalendarService materializes recurring definitions into concrete dated
// occurrences for the staff calendar view.
type CalendarService struct {
	scheduleRepo schedule.Repository
	overrideRepo schedule.OverrideRepository
	logger       *logging.Logger
}

func NewCalendarService(
	scheduleRepo schedule.Repository,
	overrideRepo schedule.OverrideRepository,
	logger *logging.Logger,
) *CalendarService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CalendarService{
		scheduleRepo: scheduleRepo,
		overrideRepo: overrideRepo,
		logger:       logger,
	}
}

// Occurrences expands every active definition into dated instances within
// [from, to], both bounds inclusive, with single-date overrides applied.
// Results are sorted by date, then start time, then name.
func (s *CalendarService) Occurrences(ctx context.Context, from, to time.Time) ([]Occurrence, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CalendarService.Occurrences")
	defer span.End()

	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end %s precedes start %s",
			ErrInvalidInput, to.Format(schedule.DateLayout), from.Format(schedule.DateLayout))
	}
	if int(to.Sub(from).Hours()/24) > maxCalendarRangeDays {
		return nil, fmt.Errorf("%w: range exceeds %d days", ErrInvalidInput, maxCalendarRangeDays)
	}

	defs, err := s.listAllActive(ctx)
	if err != nil {
		return nil, err
	}
	overrides, err := s.overrideRepo.ListForRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: list overrides: %v", ErrDependencyUnavailable, err)
	}
	overrideIndex := indexOverrides(overrides)

	p, err := ants.NewPool(materializeWorkers)
	if err != nil {
		return nil, fmt.Errorf("%w: start materializer pool: %v", ErrDependencyUnavailable, err)
	}
	defer p.Release()

	var (
		mu  sync.Mutex
		out []Occurrence
		wg  sync.WaitGroup
	)
	for _, def := range defs {
		def := def
		wg.Add(1)
		submitErr := p.Submit(func() {
			defer wg.Done()
			occs := expandDefinition(def, from, to, overrideIndex)
			if len(occs) == 0 {
				return
			}
			mu.Lock()
			out = append(out, occs...)
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			return nil, fmt.Errorf("%w: submit materializer task: %v", ErrDependencyUnavailable, submitErr)
		}
	}
	wg.Wait()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].Name < out[j].Name
	})

	s.logger.DebugContext(ctx, "calendar materialized",
		"from", from.Format(schedule.DateLayout),
		"to", to.Format(schedule.DateLayout),
		"definitions", len(defs),
		"occurrences", len(out),
	)
	return out, nil
}

func (s *CalendarService) listAllActive(ctx context.Context) ([]schedule.Definition, error) {
	out := make([]schedule.Definition, 0)
	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		defs, err := s.scheduleRepo.ListActive(ctx, weekday)
		if err != nil {
			return nil, fmt.Errorf("%w: list definitions: %v", ErrDependencyUnavailable, err)
		}
		out = append(out, defs...)
	}
	return out, nil
}

type overrideRef struct {
	definitionID string
	date         string
}

func indexOverrides(overrides []schedule.Override) map[overrideRef]schedule.Override {
	idx := make(map[overrideRef]schedule.Override, len(overrides))
	for _, o := range overrides {
		idx[overrideRef{o.DefinitionID, o.Date.Format(schedule.DateLayout)}] = o
	}
	return idx
}

// expandDefinition walks the matching weekdays of [from, to] clipped to the
// definition's effective range. Definitions without effective bounds never
// materialize.
func expandDefinition(def schedule.Definition, from, to time.Time, overrides map[overrideRef]schedule.Override) []Occurrence {
	if !def.HasEffectiveBounds() {
		return nil
	}

	start := from
	if def.EffectiveFrom.After(start) {
		start = def.EffectiveFrom
	}
	end := to
	if def.EffectiveUntil.Before(end) {
		end = def.EffectiveUntil
	}
	if end.Before(start) {
		return nil
	}

	// Advance start to the first matching weekday.
	offset := (int(def.Weekday) - int(start.Weekday()) + 7) % 7
	cursor := start.AddDate(0, 0, offset)

	var out []Occurrence
	for !cursor.After(end) {
		occ := Occurrence{
			DefinitionID: def.ID,
			Date:         cursor,
			Name:         def.Name,
			StartTime:    def.StartTime,
			EndTime:      def.EndTime,
			Category:     def.Category,
			Allocations:  def.Allocations,
		}

		if ov, ok := overrides[overrideRef{def.ID, cursor.Format(schedule.DateLayout)}]; ok {
			if ov.IsCancelled {
				cursor = cursor.AddDate(0, 0, 7)
				continue
			}
			occ.IsOverridden = true
			if ov.Name != "" {
				occ.Name = ov.Name
			}
			if ov.StartTime != nil {
				occ.StartTime = *ov.StartTime
			}
			if ov.EndTime != nil {
				occ.EndTime = *ov.EndTime
			}
			occ.Instructions = ov.Instructions
		}

		out = append(out, occ)
		cursor = cursor.AddDate(0, 0, 7)
	}
	return out
}
