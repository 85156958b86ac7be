package postgres

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/dinkhousedev/dink-house-scheduler/internal/domain/schedule"
	qb "github.com/dinkhousedev/dink-house-scheduler/internal/platform/querybuilder"
)

// ScheduleRepository persists recurring definitions. Each block row carries
// its allocations as a JSONB document; the per-court claims are additionally
// flattened into schedule_block_courts, whose exclusion constraint is the
// storage-level double-booking guard. Claim rows exist only while the block
// is active and not cancelled, so out-of-scope blocks never hold courts.
type ScheduleRepository struct {
	db *sqlx.DB
}

func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) ListActive(ctx context.Context, weekday time.Weekday) ([]schedule.Definition, error) {
	query, args, err := qb.Select("*").From("schedule_blocks").
		Where(
			qb.Eq("weekday", int(weekday)),
			qb.Eq("is_active", true),
			qb.Eq("is_cancelled", false),
			qb.IsNull("deleted_at"),
		).
		OrderBy("start_minutes", "public_id").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build list active blocks query")
	}

	var rows []scheduleBlockTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select active blocks")
	}

	out := make([]schedule.Definition, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ScheduleRepository) InsertAll(ctx context.Context, defs []schedule.Definition) error {
	if len(defs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx insert blocks")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, def := range defs {
		if err := insertBlock(ctx, tx, def); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return mapConstraintErr(errors.Wrap(err, "commit insert blocks tx"))
	}
	return nil
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id string) (schedule.Definition, bool, error) {
	query, args, err := qb.Select("*").From("schedule_blocks").
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return schedule.Definition{}, false, errors.Wrap(err, "build get block by id query")
	}

	var row scheduleBlockTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return schedule.Definition{}, false, nil
		}
		return schedule.Definition{}, false, errors.Wrap(err, "get block by id")
	}
	return row.toDomain(), true, nil
}

func (r *ScheduleRepository) UpdateSeries(ctx context.Context, def schedule.Definition) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx update block")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.Update("schedule_blocks").
		Set("name", def.Name).
		Set("description", def.Description).
		Set("start_minutes", int(def.StartTime)).
		Set("end_minutes", int(def.EndTime)).
		Set("effective_from", nullableDate(def.EffectiveFrom)).
		Set("effective_until", nullableDate(def.EffectiveUntil)).
		Set("session_category", string(def.Category)).
		Set("court_allocations", allocationsToJSONB(def.Allocations)).
		Set("updated_at", time.Now().UTC()).
		Where(
			qb.Eq("public_id", def.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build update block query")
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return mapConstraintErr(errors.Wrapf(err, "update block %s", def.ID))
	}

	if err := deleteCourtClaims(ctx, tx, def.ID); err != nil {
		return err
	}
	if def.InConflictScope() {
		if err := insertCourtClaims(ctx, tx, def); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return mapConstraintErr(errors.Wrap(err, "commit update block tx"))
	}
	return nil
}

func (r *ScheduleRepository) SetActive(ctx context.Context, id string, active bool) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx set block active")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.Update("schedule_blocks").
		Set("is_active", active).
		Set("updated_at", time.Now().UTC()).
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build set block active query")
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "set block %s active=%t", id, active)
	}

	if err := syncCourtClaims(ctx, tx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return mapConstraintErr(errors.Wrap(err, "commit set block active tx"))
	}
	return nil
}

func (r *ScheduleRepository) Cancel(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx cancel block")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.Update("schedule_blocks").
		Set("is_cancelled", true).
		Set("updated_at", time.Now().UTC()).
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build cancel block query")
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "cancel block %s", id)
	}

	if err := deleteCourtClaims(ctx, tx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit cancel block tx")
	}
	return nil
}

// Delete removes the block row permanently. Court claims and overrides go
// with it via ON DELETE CASCADE.
func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.DeleteFrom("schedule_blocks").
		Where(qb.Eq("public_id", id)).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build delete block query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "delete block %s", id)
	}
	return nil
}

func insertBlock(ctx context.Context, tx *sqlx.Tx, def schedule.Definition) error {
	query, args, err := qb.InsertInto("schedule_blocks").
		Columns(
			"public_id", "name", "description", "weekday",
			"start_minutes", "end_minutes",
			"effective_from", "effective_until",
			"session_category", "court_allocations",
			"is_active", "is_cancelled",
		).
		Values(
			def.ID, def.Name, def.Description, int(def.Weekday),
			int(def.StartTime), int(def.EndTime),
			nullableDate(def.EffectiveFrom), nullableDate(def.EffectiveUntil),
			string(def.Category), allocationsToJSONB(def.Allocations),
			def.IsActive, def.IsCancelled,
		).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build insert block query")
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return mapConstraintErr(errors.Wrapf(err, "insert block %s", def.ID))
	}

	if def.InConflictScope() {
		if err := insertCourtClaims(ctx, tx, def); err != nil {
			return err
		}
	}
	return nil
}

func insertCourtClaims(ctx context.Context, tx *sqlx.Tx, def schedule.Definition) error {
	if len(def.Allocations) == 0 {
		return nil
	}

	builder := qb.InsertInto("schedule_block_courts").
		Columns(
			"block_public_id", "court_public_id", "weekday",
			"start_minutes", "end_minutes",
			"effective_from", "effective_until",
		)
	seen := make(map[string]struct{}, len(def.Allocations))
	for _, a := range def.Allocations {
		if _, dup := seen[a.CourtID]; dup {
			continue
		}
		seen[a.CourtID] = struct{}{}
		builder.Values(
			def.ID, a.CourtID, int(def.Weekday),
			int(def.StartTime), int(def.EndTime),
			nullableDate(def.EffectiveFrom), nullableDate(def.EffectiveUntil),
		)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return errors.Wrap(err, "build insert court claims query")
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return mapConstraintErr(errors.Wrapf(err, "insert court claims for block %s", def.ID))
	}
	return nil
}

func deleteCourtClaims(ctx context.Context, tx *sqlx.Tx, blockID string) error {
	query, args, err := qb.DeleteFrom("schedule_block_courts").
		Where(qb.Eq("block_public_id", blockID)).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build delete court claims query")
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "delete court claims for block %s", blockID)
	}
	return nil
}

// syncCourtClaims rebuilds the claim rows from the block's current state so
// claims track the in-scope flag after activate/deactivate flips.
func syncCourtClaims(ctx context.Context, tx *sqlx.Tx, blockID string) error {
	query, args, err := qb.Select("*").From("schedule_blocks").
		Where(
			qb.Eq("public_id", blockID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build reload block query")
	}

	var row scheduleBlockTableModel
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return nil
		}
		return errors.Wrapf(err, "reload block %s", blockID)
	}

	if err := deleteCourtClaims(ctx, tx, blockID); err != nil {
		return err
	}
	def := row.toDomain()
	if def.InConflictScope() {
		return insertCourtClaims(ctx, tx, def)
	}
	return nil
}

func nullableDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
