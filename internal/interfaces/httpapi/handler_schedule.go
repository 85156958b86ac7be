package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/dinkhousedev/dink-house-scheduler/internal/domain/schedule"
	"github.com/dinkhousedev/dink-house-scheduler/internal/usecase"
)

type createScheduleRequest struct {
	Name           string `json:"name" validate:"required,max=200"`
	Description    string `json:"description" validate:"omitempty,max=2000"`
	Weekdays       []int  `json:"weekdays" validate:"required,min=1,max=7,dive,gte=0,lte=6"`
	StartTime      string `json:"start_time" validate:"required"`
	EndTime        string `json:"end_time" validate:"required"`
	EffectiveFrom  string `json:"effective_from" validate:"required"`
	EffectiveUntil string `json:"effective_until" validate:"required"`
	Category       string `json:"session_category" validate:"omitempty,max=50"`
}

type conflictCheckRequest struct {
	Name              string `json:"name" validate:"required,max=200"`
	Weekdays          []int  `json:"weekdays" validate:"required,min=1,max=7,dive,gte=0,lte=6"`
	StartTime         string `json:"start_time" validate:"required"`
	EndTime           string `json:"end_time" validate:"required"`
	EffectiveFrom     string `json:"effective_from" validate:"required"`
	EffectiveUntil    string `json:"effective_until" validate:"required"`
	Category          string `json:"session_category" validate:"omitempty,max=50"`
	ExcludeScheduleID string `json:"exclude_schedule_id" validate:"omitempty,max=64"`
	// Sequence orders in-flight checks from one editing session; a check with
	// a lower sequence than an already-answered one is reported stale.
	Sequence uint64 `json:"sequence" validate:"required,gt=0"`
}

type updateScheduleRequest struct {
	Name           string `json:"name" validate:"required,max=200"`
	Description    string `json:"description" validate:"omitempty,max=2000"`
	StartTime      string `json:"start_time" validate:"required"`
	EndTime        string `json:"end_time" validate:"required"`
	EffectiveFrom  string `json:"effective_from" validate:"required"`
	EffectiveUntil string `json:"effective_until" validate:"required"`
	Category       string `json:"session_category" validate:"omitempty,max=50"`
}

type setActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type overrideOccurrenceRequest struct {
	Cancel       bool   `json:"cancel"`
	Name         string `json:"name" validate:"omitempty,max=200"`
	StartTime    string `json:"start_time" validate:"omitempty"`
	EndTime      string `json:"end_time" validate:"omitempty"`
	Instructions string `json:"instructions" validate:"omitempty,max=2000"`
}

func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSchedule")
	defer span.End()

	var req createScheduleRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input, err := createInputFromRequest(req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	defs, err := h.scheduleService.Create(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "create schedule failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, schedulesToDTO(defs))
}

func (h *Handler) CheckScheduleConflicts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CheckScheduleConflicts")
	defer span.End()

	var req conflictCheckRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	weekdays, err := parseWeekdays(req.Weekdays)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	startTime, err := parseTimeOfDayField("start_time", req.StartTime)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	endTime, err := parseTimeOfDayField("end_time", req.EndTime)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	effectiveFrom, err := parseDateField("effective_from", req.EffectiveFrom)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	effectiveUntil, err := parseDateField("effective_until", req.EffectiveUntil)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	report, published, err := h.conflictChecker.Run(ctx, req.Sequence, usecase.CheckConflictsInput{
		Name:                strings.TrimSpace(req.Name),
		Weekdays:            weekdays,
		StartTime:           startTime,
		EndTime:             endTime,
		EffectiveFrom:       effectiveFrom,
		EffectiveUntil:      effectiveUntil,
		Category:            schedule.SessionCategory(strings.TrimSpace(req.Category)),
		ExcludeDefinitionID: strings.TrimSpace(req.ExcludeScheduleID),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "conflict check failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, conflictReportToDTO(report, req.Sequence, !published))
}

func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSchedules")
	defer span.End()

	rawWeekday := strings.TrimSpace(r.URL.Query().Get("weekday"))
	if rawWeekday == "" {
		writeError(ctx, w, fmt.Errorf("%w: weekday query parameter is required", usecase.ErrInvalidInput))
		return
	}
	weekdayValue, err := strconv.Atoi(rawWeekday)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: weekday must be 0..6: %v", usecase.ErrInvalidInput, err))
		return
	}

	defs, err := h.scheduleService.ListActive(ctx, time.Weekday(weekdayValue))
	if err != nil {
		h.logger.WarnContext(ctx, "list schedules failed", "weekday", weekdayValue, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, schedulesToDTO(defs))
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSchedule")
	defer span.End()

	scheduleID := strings.TrimSpace(r.PathValue("scheduleID"))
	def, err := h.scheduleService.GetByID(ctx, scheduleID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scheduleToDTO(def))
}

func (h *Handler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateSchedule")
	defer span.End()

	scheduleID := strings.TrimSpace(r.PathValue("scheduleID"))

	var req updateScheduleRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	startTime, err := parseTimeOfDayField("start_time", req.StartTime)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	endTime, err := parseTimeOfDayField("end_time", req.EndTime)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	effectiveFrom, err := parseDateField("effective_from", req.EffectiveFrom)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	effectiveUntil, err := parseDateField("effective_until", req.EffectiveUntil)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	def, err := h.scheduleService.UpdateSeries(ctx, scheduleID, usecase.UpdateSeriesInput{
		Name:           strings.TrimSpace(req.Name),
		Description:    req.Description,
		StartTime:      startTime,
		EndTime:        endTime,
		EffectiveFrom:  effectiveFrom,
		EffectiveUntil: effectiveUntil,
		Category:       schedule.SessionCategory(strings.TrimSpace(req.Category)),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update schedule failed", "schedule_id", scheduleID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scheduleToDTO(def))
}

func (h *Handler) SetScheduleActive(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetScheduleActive")
	defer span.End()

	scheduleID := strings.TrimSpace(r.PathValue("scheduleID"))

	var req setActiveRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.scheduleService.SetActive(ctx, scheduleID, *req.Active); err != nil {
		h.logger.WarnContext(ctx, "set schedule active failed", "schedule_id", scheduleID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"id": scheduleID, "active": *req.Active})
}

// DeleteSchedule cancels the series. With ?hard=true the row is removed
// outright and its overrides cascade.
func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteSchedule")
	defer span.End()

	scheduleID := strings.TrimSpace(r.PathValue("scheduleID"))
	hard := strings.EqualFold(strings.TrimSpace(r.URL.Query().Get("hard")), "true")

	var err error
	if hard {
		err = h.scheduleService.DeleteSeries(ctx, scheduleID)
	} else {
		err = h.scheduleService.CancelSeries(ctx, scheduleID)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "delete schedule failed", "schedule_id", scheduleID, "hard", hard, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"id": scheduleID, "deleted": hard, "cancelled": !hard})
}

func (h *Handler) OverrideOccurrence(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OverrideOccurrence")
	defer span.End()

	scheduleID := strings.TrimSpace(r.PathValue("scheduleID"))
	date, err := parseDateField("date", r.PathValue("date"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req overrideOccurrenceRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	var override schedule.Override
	if req.Cancel {
		override, err = h.overrideService.CancelInstance(ctx, scheduleID, date)
	} else {
		input := usecase.OverrideInstanceInput{
			Name:         strings.TrimSpace(req.Name),
			Instructions: req.Instructions,
		}
		if req.StartTime != "" {
			startTime, parseErr := parseTimeOfDayField("start_time", req.StartTime)
			if parseErr != nil {
				writeError(ctx, w, parseErr)
				return
			}
			input.StartTime = &startTime
		}
		if req.EndTime != "" {
			endTime, parseErr := parseTimeOfDayField("end_time", req.EndTime)
			if parseErr != nil {
				writeError(ctx, w, parseErr)
				return
			}
			input.EndTime = &endTime
		}
		override, err = h.overrideService.OverrideInstance(ctx, scheduleID, date, input)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "override occurrence failed",
			"schedule_id", scheduleID,
			"date", date.Format(schedule.DateLayout),
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, overrideToDTO(override))
}

func (h *Handler) ClearOccurrenceOverride(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearOccurrenceOverride")
	defer span.End()

	scheduleID := strings.TrimSpace(r.PathValue("scheduleID"))
	date, err := parseDateField("date", r.PathValue("date"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.overrideService.ClearOverride(ctx, scheduleID, date); err != nil {
		h.logger.WarnContext(ctx, "clear override failed",
			"schedule_id", scheduleID,
			"date", date.Format(schedule.DateLayout),
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"schedule_id": scheduleID,
		"date":        date.Format(schedule.DateLayout),
		"cleared":     true,
	})
}

func decodeRequest(r *http.Request, out any) error {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func createInputFromRequest(req createScheduleRequest) (usecase.CreateScheduleInput, error) {
	weekdays, err := parseWeekdays(req.Weekdays)
	if err != nil {
		return usecase.CreateScheduleInput{}, err
	}
	startTime, err := parseTimeOfDayField("start_time", req.StartTime)
	if err != nil {
		return usecase.CreateScheduleInput{}, err
	}
	endTime, err := parseTimeOfDayField("end_time", req.EndTime)
	if err != nil {
		return usecase.CreateScheduleInput{}, err
	}
	effectiveFrom, err := parseDateField("effective_from", req.EffectiveFrom)
	if err != nil {
		return usecase.CreateScheduleInput{}, err
	}
	effectiveUntil, err := parseDateField("effective_until", req.EffectiveUntil)
	if err != nil {
		return usecase.CreateScheduleInput{}, err
	}

	return usecase.CreateScheduleInput{
		Name:           strings.TrimSpace(req.Name),
		Description:    req.Description,
		Weekdays:       weekdays,
		StartTime:      startTime,
		EndTime:        endTime,
		EffectiveFrom:  effectiveFrom,
		EffectiveUntil: effectiveUntil,
		Category:       schedule.SessionCategory(strings.TrimSpace(req.Category)),
	}, nil
}
