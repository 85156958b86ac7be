package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dinkhousedev/dink-house-scheduler/internal/domain/schedule"
	"github.com/dinkhousedev/dink-house-scheduler/internal/platform/logging"
	"github.com/dinkhousedev/dink-house-scheduler/internal/usecase"
)

type Handler struct {
	scheduleService *usecase.ScheduleService
	overrideService *usecase.OverrideService
	calendarService *usecase.CalendarService
	conflictChecker *usecase.LiveConflictChecker
	courtService    *usecase.CourtService
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	scheduleService *usecase.ScheduleService,
	overrideService *usecase.OverrideService,
	calendarService *usecase.CalendarService,
	conflictChecker *usecase.LiveConflictChecker,
	courtService *usecase.CourtService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		scheduleService: scheduleService,
		overrideService: overrideService,
		calendarService: calendarService,
		conflictChecker: conflictChecker,
		courtService:    courtService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func parseTimeOfDayField(field, value string) (schedule.TimeOfDay, error) {
	t, err := schedule.ParseTimeOfDay(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", usecase.ErrInvalidInput, field, err)
	}
	return t, nil
}

func parseDateField(field, value string) (time.Time, error) {
	d, err := schedule.ParseDate(strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %v", usecase.ErrInvalidInput, field, err)
	}
	return d, nil
}

func parseWeekdays(raw []int) ([]time.Weekday, error) {
	out := make([]time.Weekday, 0, len(raw))
	for _, v := range raw {
		if v < int(time.Sunday) || v > int(time.Saturday) {
			return nil, fmt.Errorf("%w: weekday %d out of range 0..6", usecase.ErrInvalidInput, v)
		}
		out = append(out, time.Weekday(v))
	}
	return out, nil
}
