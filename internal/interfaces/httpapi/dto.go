package httpapi

import (
	"github.com/dinkhousedev/dink-house-scheduler/internal/domain/court"
	"github.com/dinkhousedev/dink-house-scheduler/internal/domain/schedule"
	"github.com/dinkhousedev/dink-house-scheduler/internal/usecase"
)

type courtDTO struct {
	ID          string `json:"id"`
	Number      int    `json:"court_number"`
	Environment string `json:"environment"`
	Status      string `json:"status"`
}

type allocationDTO struct {
	CourtID         string   `json:"court_id"`
	SkillLevelMin   float64  `json:"skill_level_min"`
	SkillLevelMax   *float64 `json:"skill_level_max,omitempty"`
	SkillLevelLabel string   `json:"skill_level_label,omitempty"`
	IsMixedLevel    bool     `json:"is_mixed_level,omitempty"`
	SortOrder       int      `json:"sort_order"`
}

type scheduleDTO struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Weekday        int             `json:"weekday"`
	WeekdayName    string          `json:"weekday_name"`
	StartTime      string          `json:"start_time"`
	EndTime        string          `json:"end_time"`
	EffectiveFrom  string          `json:"effective_from,omitempty"`
	EffectiveUntil string          `json:"effective_until,omitempty"`
	Category       string          `json:"session_category"`
	Allocations    []allocationDTO `json:"court_allocations"`
	IsActive       bool            `json:"is_active"`
	IsCancelled    bool            `json:"is_cancelled"`
}

type overrideDTO struct {
	ScheduleID   string `json:"schedule_id"`
	Date         string `json:"date"`
	IsCancelled  bool   `json:"is_cancelled"`
	Name         string `json:"name,omitempty"`
	StartTime    string `json:"start_time,omitempty"`
	EndTime      string `json:"end_time,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

type occurrenceDTO struct {
	ScheduleID   string          `json:"schedule_id"`
	Date         string          `json:"date"`
	Name         string          `json:"name"`
	StartTime    string          `json:"start_time"`
	EndTime      string          `json:"end_time"`
	Category     string          `json:"session_category"`
	Allocations  []allocationDTO `json:"court_allocations"`
	Instructions string          `json:"instructions,omitempty"`
	IsOverridden bool            `json:"is_overridden,omitempty"`
}

type conflictDTO struct {
	ScheduleID string `json:"schedule_id"`
	Name       string `json:"name"`
	Weekday    int    `json:"weekday"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

type conflictReportDTO struct {
	Sequence     uint64                `json:"sequence"`
	Stale        bool                  `json:"stale"`
	HasConflicts bool                  `json:"has_conflicts"`
	ByWeekday    map[int][]conflictDTO `json:"conflicts_by_weekday,omitempty"`
}

func courtToDTO(c court.Court) courtDTO {
	return courtDTO{
		ID:          c.ID,
		Number:      c.Number,
		Environment: string(c.Environment),
		Status:      string(c.Status),
	}
}

func courtsToDTO(courts []court.Court) []courtDTO {
	out := make([]courtDTO, 0, len(courts))
	for _, c := range courts {
		out = append(out, courtToDTO(c))
	}
	return out
}

func allocationsToDTO(allocations []schedule.CourtAllocation) []allocationDTO {
	out := make([]allocationDTO, 0, len(allocations))
	for _, a := range allocations {
		out = append(out, allocationDTO{
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

func scheduleToDTO(def schedule.Definition) scheduleDTO {
	dto := scheduleDTO{
		ID:          def.ID,
		Name:        def.Name,
		Description: def.Description,
		Weekday:     int(def.Weekday),
		WeekdayName: def.Weekday.String(),
		StartTime:   def.StartTime.String(),
		EndTime:     def.EndTime.String(),
		Category:    string(def.Category),
		Allocations: allocationsToDTO(def.Allocations),
		IsActive:    def.IsActive,
		IsCancelled: def.IsCancelled,
	}
	if !def.EffectiveFrom.IsZero() {
		dto.EffectiveFrom = def.EffectiveFrom.Format(schedule.DateLayout)
	}
	if !def.EffectiveUntil.IsZero() {
		dto.EffectiveUntil = def.EffectiveUntil.Format(schedule.DateLayout)
	}
	return dto
}

func schedulesToDTO(defs []schedule.Definition) []scheduleDTO {
	out := make([]scheduleDTO, 0, len(defs))
	for _, def := range defs {
		out = append(out, scheduleToDTO(def))
	}
	return out
}

func overrideToDTO(o schedule.Override) overrideDTO {
	dto := overrideDTO{
		ScheduleID:   o.DefinitionID,
		Date:         o.Date.Format(schedule.DateLayout),
		IsCancelled:  o.IsCancelled,
		Name:         o.Name,
		Instructions: o.Instructions,
	}
	if o.StartTime != nil {
		dto.StartTime = o.StartTime.String()
	}
	if o.EndTime != nil {
		dto.EndTime = o.EndTime.String()
	}
	return dto
}

func occurrencesToDTO(occs []usecase.Occurrence) []occurrenceDTO {
	out := make([]occurrenceDTO, 0, len(occs))
	for _, occ := range occs {
		out = append(out, occurrenceDTO{
			ScheduleID:   occ.DefinitionID,
			Date:         occ.Date.Format(schedule.DateLayout),
			Name:         occ.Name,
			StartTime:    occ.StartTime.String(),
			EndTime:      occ.EndTime.String(),
			Category:     string(occ.Category),
			Allocations:  allocationsToDTO(occ.Allocations),
			Instructions: occ.Instructions,
			IsOverridden: occ.IsOverridden,
		})
	}
	return out
}

func conflictReportToDTO(report usecase.ConflictReport, sequence uint64, stale bool) conflictReportDTO {
	dto := conflictReportDTO{
		Sequence:     sequence,
		Stale:        stale,
		HasConflicts: report.HasConflicts,
	}
	if len(report.ByWeekday) == 0 {
		return dto
	}

	dto.ByWeekday = make(map[int][]conflictDTO, len(report.ByWeekday))
	for weekday, defs := range report.ByWeekday {
		items := make([]conflictDTO, 0, len(defs))
		for _, def := range defs {
			items = append(items, conflictDTO{
				ScheduleID: def.ID,
				Name:       def.Name,
				Weekday:    int(def.Weekday),
				StartTime:  def.StartTime.String(),
				EndTime:    def.EndTime.String(),
			})
		}
		dto.ByWeekday[int(weekday)] = items
	}
	return dto
}
