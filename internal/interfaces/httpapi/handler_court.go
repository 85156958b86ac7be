package httpapi

import (
	"net/http"
)

func (h *Handler) ListCourts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCourts")
	defer span.End()

	courts, err := h.courtService.List(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list courts failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, courtsToDTO(courts))
}
