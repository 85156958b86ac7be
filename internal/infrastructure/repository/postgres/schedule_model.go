package postgres

import (
	"database/sql/driver"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/dinkhousedev/dink-house-scheduler/internal/domain/schedule"
)

type scheduleBlockTableModel struct {
	ID             int64            `db:"id"`
	PublicID       string           `db:"public_id"`
	Name           string           `db:"name"`
	Description    string           `db:"description"`
	Weekday        int              `db:"weekday"`
	StartMinutes   int              `db:"start_minutes"`
	EndMinutes     int              `db:"end_minutes"`
	EffectiveFrom  *time.Time       `db:"effective_from"`
	EffectiveUntil *time.Time       `db:"effective_until"`
	Category       string           `db:"session_category"`
	Allocations    allocationsJSONB `db:"court_allocations"`
	IsActive       bool             `db:"is_active"`
	IsCancelled    bool             `db:"is_cancelled"`
	CreatedAt      time.Time        `db:"created_at"`
	UpdatedAt      time.Time        `db:"updated_at"`
	DeletedAt      *time.Time       `db:"deleted_at"`
}

func (m scheduleBlockTableModel) toDomain() schedule.Definition {
	def := schedule.Definition{
		ID:          m.PublicID,
		Name:        m.Name,
		Description: m.Description,
		Weekday:     time.Weekday(m.Weekday),
		StartTime:   schedule.TimeOfDay(m.StartMinutes),
		EndTime:     schedule.TimeOfDay(m.EndMinutes),
		Category:    schedule.SessionCategory(m.Category),
		Allocations: m.Allocations.toDomain(),
		IsActive:    m.IsActive,
		IsCancelled: m.IsCancelled,
	}
	// NULL bounds stay zero; the conflict checker treats them as unknown and
	// fails safe.
	if m.EffectiveFrom != nil {
		def.EffectiveFrom = *m.EffectiveFrom
	}
	if m.EffectiveUntil != nil {
		def.EffectiveUntil = *m.EffectiveUntil
	}
	return def
}

// allocationWireModel is the JSONB shape of one court allocation. The column
// keeps snake_case keys so ad-hoc SQL against the document stays readable.
type allocationWireModel struct {
	CourtID         string   `json:"court_id"`
	SkillLevelMin   float64  `json:"skill_level_min"`
	SkillLevelMax   *float64 `json:"skill_level_max,omitempty"`
	SkillLevelLabel string   `json:"skill_level_label,omitempty"`
	IsMixedLevel    bool     `json:"is_mixed_level,omitempty"`
	SortOrder       int      `json:"sort_order"`
}

type allocationsJSONB []allocationWireModel

func allocationsToJSONB(allocations []schedule.CourtAllocation) allocationsJSONB {
	out := make(allocationsJSONB, 0, len(allocations))
	for _, a := range allocations {
		out = append(out, allocationWireModel{
			CourtID:         a.CourtID,
			SkillLevelMin:   a.SkillLevelMin,
			SkillLevelMax:   a.SkillLevelMax,
			SkillLevelLabel: a.SkillLevelLabel,
			IsMixedLevel:    a.IsMixedLevel,
			SortOrder:       a.SortOrder,
		})
	}
	return out
}

func (a allocationsJSONB) toDomain() []schedule.CourtAllocation {
	out := make([]schedule.CourtAllocation, 0, len(a))
	for _, w := range a {
		out = append(out, schedule.CourtAllocation{
			CourtID:         w.CourtID,
			SkillLevelMin:   w.SkillLevelMin,
			SkillLevelMax:   w.SkillLevelMax,
			SkillLevelLabel: w.SkillLevelLabel,
			IsMixedLevel:    w.IsMixedLevel,
			SortOrder:       w.SortOrder,
		})
	}
	return out
}

func (a allocationsJSONB) Value() (driver.Value, error) {
	encoded, err := sonic.Marshal([]allocationWireModel(a))
	if err != nil {
		return nil, errors.Wrap(err, "encode court allocations")
	}
	return encoded, nil
}

func (a *allocationsJSONB) Scan(src any) error {
	if src == nil {
		*a = nil
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.Newf("unsupported court_allocations source type %T", src)
	}

	var out []allocationWireModel
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return errors.Wrap(err, "decode court allocations")
	}
	*a = out
	return nil
}
