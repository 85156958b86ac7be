package schedule

import (
	"context"
	"errors"
	"time"
)

// ErrStorageConflict is returned by repositories when the storage-level
// double-booking constraint rejects a write. The in-process conflict check is
// advisory; this constraint is the source of truth.
var ErrStorageConflict = errors.New("storage rejected overlapping court booking")

// ErrOverrideNotFound is returned when deleting an override that does not
// exist for the given definition and date.
var ErrOverrideNotFound = errors.New("override not found")

// Repository stores recurring schedule definitions.
type Repository interface {
	// ListActive returns definitions eligible for conflict checks on one
	// weekday: active and not cancelled.
	ListActive(ctx context.Context, weekday time.Weekday) ([]Definition, error)
	// InsertAll writes every definition or none of them. Weekday siblings of
	// one submission must never be partially created.
	InsertAll(ctx context.Context, defs []Definition) error
	GetByID(ctx context.Context, id string) (Definition, bool, error)
	UpdateSeries(ctx context.Context, def Definition) error
	SetActive(ctx context.Context, id string, active bool) error
	Cancel(ctx context.Context, id string) error
	// Delete removes the definition and cascades its overrides.
	Delete(ctx context.Context, id string) error
}

// OverrideRepository stores single-date exceptions keyed (definition_id, date).
type OverrideRepository interface {
	Upsert(ctx context.Context, o Override) error
	Get(ctx context.Context, definitionID string, date time.Time) (Override, bool, error)
	ListByDefinition(ctx context.Context, definitionID string) ([]Override, error)
	ListForRange(ctx context.Context, from, to time.Time) ([]Override, error)
	Delete(ctx context.Context, definitionID string, date time.Time) error
}
