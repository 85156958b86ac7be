package postgres

import (
	"database/sql"

	"github.com/cockroachdb/errors"
	"github.com/lib/pq"

	"github.com/dinkhousedev/dink-house-scheduler/internal/domain/schedule"
)

const (
	pqUniqueViolation    = "23505"
	pqExclusionViolation = "23P01"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// mapConstraintErr translates the double-booking exclusion constraint (and
// the sibling unique constraints) into the domain sentinel so callers never
// depend on driver error codes.
func mapConstraintErr(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation, pqExclusionViolation:
			return errors.Mark(err, schedule.ErrStorageConflict)
		}
	}
	return err
}
