package postgres

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/dinkhousedev/dink-house-scheduler/internal/domain/schedule"
	qb "github.com/dinkhousedev/dink-house-scheduler/internal/platform/querybuilder"
)

// OverrideRepository persists single-date exceptions. The unique index on
// (block_public_id, override_date) collapses repeated edits of one date into
// a single row.
type OverrideRepository struct {
	db *sqlx.DB
}

func NewOverrideRepository(db *sqlx.DB) *OverrideRepository {
	return &OverrideRepository{db: db}
}

func (r *OverrideRepository) Upsert(ctx context.Context, o schedule.Override) error {
	query, args, err := qb.InsertInto("schedule_overrides").
		Columns(
			"block_public_id", "override_date", "is_cancelled",
			"name", "start_minutes", "end_minutes", "instructions",
		).
		Values(
			o.DefinitionID, o.Date, o.IsCancelled,
			nullableString(o.Name), nullableMinutes(o.StartTime), nullableMinutes(o.EndTime),
			nullableString(o.Instructions),
		).
		Suffix(`ON CONFLICT (block_public_id, override_date)
DO UPDATE SET
    is_cancelled = EXCLUDED.is_cancelled,
    name = EXCLUDED.name,
    start_minutes = EXCLUDED.start_minutes,
    end_minutes = EXCLUDED.end_minutes,
    instructions = EXCLUDED.instructions,
    updated_at = NOW()`).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build upsert override query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "upsert override block=%s date=%s",
			o.DefinitionID, o.Date.Format(schedule.DateLayout))
	}
	return nil
}

func (r *OverrideRepository) Get(ctx context.Context, definitionID string, date time.Time) (schedule.Override, bool, error) {
	query, args, err := qb.Select("*").From("schedule_overrides").
		Where(
			qb.Eq("block_public_id", definitionID),
			qb.Eq("override_date", date),
		).
		ToSQL()
	if err != nil {
		return schedule.Override{}, false, errors.Wrap(err, "build get override query")
	}

	var row overrideTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return schedule.Override{}, false, nil
		}
		return schedule.Override{}, false, errors.Wrap(err, "get override")
	}
	return row.toDomain(), true, nil
}

func (r *OverrideRepository) ListByDefinition(ctx context.Context, definitionID string) ([]schedule.Override, error) {
	query, args, err := qb.Select("*").From("schedule_overrides").
		Where(qb.Eq("block_public_id", definitionID)).
		OrderBy("override_date").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build list overrides by block query")
	}

	var rows []overrideTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select overrides by block")
	}
	return overridesToDomain(rows), nil
}

func (r *OverrideRepository) ListForRange(ctx context.Context, from, to time.Time) ([]schedule.Override, error) {
	query, args, err := qb.Select("*").From("schedule_overrides").
		Where(
			qb.Gte("override_date", from),
			qb.Lte("override_date", to),
		).
		OrderBy("override_date", "block_public_id").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build list overrides in range query")
	}

	var rows []overrideTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select overrides in range")
	}
	return overridesToDomain(rows), nil
}

func (r *OverrideRepository) Delete(ctx context.Context, definitionID string, date time.Time) error {
	query, args, err := qb.DeleteFrom("schedule_overrides").
		Where(
			qb.Eq("block_public_id", definitionID),
			qb.Eq("override_date", date),
		).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build delete override query")
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrapf(err, "delete override block=%s date=%s",
			definitionID, date.Format(schedule.DateLayout))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected delete override")
	}
	if affected == 0 {
		return schedule.ErrOverrideNotFound
	}
	return nil
}

func overridesToDomain(rows []overrideTableModel) []schedule.Override {
	out := make([]schedule.Override, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}
