package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/dinkhousedev/dink-house-scheduler/internal/domain/court"
	qb "github.com/dinkhousedev/dink-house-scheduler/internal/platform/querybuilder"
)

type CourtRepository struct {
	db *sqlx.DB
}

func NewCourtRepository(db *sqlx.DB) *CourtRepository {
	return &CourtRepository{db: db}
}

func (r *CourtRepository) List(ctx context.Context) ([]court.Court, error) {
	query, args, err := qb.Select("*").From("courts").
		Where(qb.IsNull("deleted_at")).
		OrderBy("court_number").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build select courts query")
	}

	var rows []courtTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select courts")
	}

	out := make([]court.Court, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *CourtRepository) GetByID(ctx context.Context, id string) (court.Court, bool, error) {
	query, args, err := qb.Select("*").From("courts").
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return court.Court{}, false, errors.Wrap(err, "build get court by id query")
	}

	var row courtTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return court.Court{}, false, nil
		}
		return court.Court{}, false, errors.Wrap(err, "get court by id")
	}
	return row.toDomain(), true, nil
}
