package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dinkhousedev/dink-house-scheduler/internal/usecase"
)

func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCalendar")
	defer span.End()

	rawFrom := strings.TrimSpace(r.URL.Query().Get("from"))
	rawTo := strings.TrimSpace(r.URL.Query().Get("to"))
	if rawFrom == "" || rawTo == "" {
		writeError(ctx, w, fmt.Errorf("%w: from and to query parameters are required", usecase.ErrInvalidInput))
		return
	}

	from, err := parseDateField("from", rawFrom)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	to, err := parseDateField("to", rawTo)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	occs, err := h.calendarService.Occurrences(ctx, from, to)
	if err != nil {
		h.logger.WarnContext(ctx, "calendar materialization failed",
			"from", rawFrom,
			"to", rawTo,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, occurrencesToDTO(occs))
}
