package postgres

import (
	"time"

	"github.com/dinkhousedev/dink-house-scheduler/internal/domain/schedule"
)

type overrideTableModel struct {
	ID            int64     `db:"id"`
	BlockPublicID string    `db:"block_public_id"`
	Date          time.Time `db:"override_date"`
	IsCancelled   bool      `db:"is_cancelled"`
	Name          *string   `db:"name"`
	StartMinutes  *int      `db:"start_minutes"`
	EndMinutes    *int      `db:"end_minutes"`
	Instructions  *string   `db:"instructions"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (m overrideTableModel) toDomain() schedule.Override {
	o := schedule.Override{
		DefinitionID: m.BlockPublicID,
		Date:         m.Date.UTC().Truncate(24 * time.Hour),
		IsCancelled:  m.IsCancelled,
	}
	if m.Name != nil {
		o.Name = *m.Name
	}
	if m.StartMinutes != nil {
		t := schedule.TimeOfDay(*m.StartMinutes)
		o.StartTime = &t
	}
	if m.EndMinutes != nil {
		t := schedule.TimeOfDay(*m.EndMinutes)
		o.EndTime = &t
	}
	if m.Instructions != nil {
		o.Instructions = *m.Instructions
	}
	return o
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullableMinutes(t *schedule.TimeOfDay) *int {
	if t == nil {
		return nil
	}
	v := int(*t)
	return &v
}
