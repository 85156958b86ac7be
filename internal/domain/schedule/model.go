// Package schedule holds the recurring-session model and the pure scheduling
// rules: conflict detection between weekly blocks and skill-band allocation
// resolution. Nothing in this package performs I/O.
package schedule

import (
	"errors"
	"fmt"
	"time"
)

type SessionCategory string

const (
	CategoryDividedBySkill SessionCategory = "divided_by_skill"
	CategoryMixedLevels    SessionCategory = "mixed_levels"
	CategoryDedicatedSkill SessionCategory = "dedicated_skill"
	CategorySpecialEvent   SessionCategory = "special_event"
)

var allCategories = map[SessionCategory]struct{}{
	CategoryDividedBySkill: {},
	CategoryMixedLevels:    {},
	CategoryDedicatedSkill: {},
	CategorySpecialEvent:   {},
}

func (c SessionCategory) Valid() bool {
	_, ok := allCategories[c]
	return ok
}

var (
	ErrEmptyName              = errors.New("session name is required")
	ErrInvalidTimeRange       = errors.New("start time must be before end time")
	ErrInvalidDateRange       = errors.New("effective_from must not be after effective_until")
	ErrMissingEffectiveBounds = errors.New("effective date bounds are required")
	ErrUnknownCategory        = errors.New("unknown session category")
	ErrAllocationsRequired    = errors.New("session category requires court allocations")
)

// CourtAllocation dedicates one court to a skill band for the duration of a
// block. SkillLevelMax nil means open-ended (e.g. advanced 4.5+).
type CourtAllocation struct {
	CourtID         string
	SkillLevelMin   float64
	SkillLevelMax   *float64
	SkillLevelLabel string
	IsMixedLevel    bool
	SortOrder       int
}

// Definition is one weekday-instance of a recurring session. A multi-weekday
// submission materializes one Definition per selected weekday; siblings share
// name, times, date range and allocations but are conflict-checked and stored
// independently.
type Definition struct {
	ID          string
	Name        string
	Description string
	Weekday     time.Weekday
	StartTime   TimeOfDay
	EndTime     TimeOfDay

	// EffectiveFrom/EffectiveUntil bound the dates the pattern is active.
	// A zero value means the bound is missing, which current validation
	// forbids on create but can still appear on legacy rows.
	EffectiveFrom  time.Time
	EffectiveUntil time.Time

	Category    SessionCategory
	Allocations []CourtAllocation
	IsActive    bool
	IsCancelled bool
}

// InConflictScope reports whether the definition participates in conflict
// checks at all. Cancelled or deactivated series never conflict.
func (d Definition) InConflictScope() bool {
	return d.IsActive && !d.IsCancelled
}

// HasEffectiveBounds reports whether both date bounds are present.
func (d Definition) HasEffectiveBounds() bool {
	return !d.EffectiveFrom.IsZero() && !d.EffectiveUntil.IsZero()
}

// CourtIDs returns the set of courts the definition claims.
func (d Definition) CourtIDs() map[string]struct{} {
	out := make(map[string]struct{}, len(d.Allocations))
	for _, a := range d.Allocations {
		out[a.CourtID] = struct{}{}
	}
	return out
}

// Validate enforces the creation invariants. It does not consult the court
// registry; allocation-to-available-court checks belong to the service layer.
func (d Definition) Validate() error {
	if d.Name == "" {
		return ErrEmptyName
	}
	if d.Weekday < time.Sunday || d.Weekday > time.Saturday {
		return fmt.Errorf("invalid weekday %d", d.Weekday)
	}
	if d.StartTime >= d.EndTime {
		return fmt.Errorf("%w: %s >= %s", ErrInvalidTimeRange, d.StartTime, d.EndTime)
	}
	if !d.HasEffectiveBounds() {
		return ErrMissingEffectiveBounds
	}
	if d.EffectiveFrom.After(d.EffectiveUntil) {
		return fmt.Errorf("%w: %s > %s",
			ErrInvalidDateRange,
			d.EffectiveFrom.Format(DateLayout),
			d.EffectiveUntil.Format(DateLayout))
	}
	if !d.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, d.Category)
	}
	// Mixed sessions defer allocation to a later process; every other
	// category is meaningless without courts.
	if d.Category != CategoryMixedLevels && len(d.Allocations) == 0 {
		return fmt.Errorf("%w: category=%s", ErrAllocationsRequired, d.Category)
	}
	return nil
}

// Override is a single-date exception layered on a Definition. Either the
// date is cancelled outright or the replacement fields apply to that date
// only. Overrides never mutate the Definition they shadow.
type Override struct {
	DefinitionID string
	Date         time.Time
	IsCancelled  bool
	Name         string
	StartTime    *TimeOfDay
	EndTime      *TimeOfDay
	Instructions string
}

func (o Override) Validate() error {
	if o.DefinitionID == "" {
		return errors.New("override requires a definition id")
	}
	if o.Date.IsZero() {
		return errors.New("override requires a date")
	}
	if o.IsCancelled {
		return nil
	}
	if o.StartTime != nil && o.EndTime != nil && *o.StartTime >= *o.EndTime {
		return fmt.Errorf("%w: %s >= %s", ErrInvalidTimeRange, *o.StartTime, *o.EndTime)
	}
	return nil
}
