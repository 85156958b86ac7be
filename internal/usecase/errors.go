package usecase

import (
	"errors"
	"fmt"
	"time"

	"github.com/dinkhousedev/dink-house-scheduler/internal/domain/schedule"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("schedule conflict")
	// ErrDependencyUnavailable marks a registry or store read/write failure.
	// It must never be collapsed into "no conflicts found".
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	// ErrPartialWrite marks a multi-weekday creation that could not be fully
	// rolled back after a sibling insert failed.
	ErrPartialWrite = errors.New("partial write")
)

// ConflictError carries the full per-weekday conflict detail so callers can
// render which event, which day and which time collided, not just a boolean.
type ConflictError struct {
	ByWeekday map[time.Weekday][]schedule.Definition
}

func (e *ConflictError) Error() string {
	total := 0
	for _, defs := range e.ByWeekday {
		total += len(defs)
	}
	return fmt.Sprintf("schedule conflict: %d overlapping definition(s) across %d weekday(s)", total, len(e.ByWeekday))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
