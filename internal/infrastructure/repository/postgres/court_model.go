package postgres

import (
	"time"

	"github.com/dinkhousedev/dink-house-scheduler/internal/domain/court"
)

type courtTableModel struct {
	ID          int64      `db:"id"`
	PublicID    string     `db:"public_id"`
	Number      int        `db:"court_number"`
	Environment string     `db:"environment"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

func (m courtTableModel) toDomain() court.Court {
	return court.Court{
		ID:          m.PublicID,
		Number:      m.Number,
		Environment: court.Environment(m.Environment),
		Status:      court.Status(m.Status),
	}
}
