package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerReadRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/courts", handler.ListCourts)
	mux.HandleFunc("GET /v1/schedules", handler.ListSchedules)
	mux.HandleFunc("GET /v1/schedules/{scheduleID}", handler.GetSchedule)
	mux.HandleFunc("GET /v1/calendar", handler.GetCalendar)
}

func registerStaffRoutes(mux *http.ServeMux, handler *Handler, staffToken string) {
	mux.Handle("POST /v1/schedules", RequireStaffToken(staffToken, http.HandlerFunc(handler.CreateSchedule)))
	mux.Handle("POST /v1/schedules/conflict-check", RequireStaffToken(staffToken, http.HandlerFunc(handler.CheckScheduleConflicts)))
	mux.Handle("PUT /v1/schedules/{scheduleID}", RequireStaffToken(staffToken, http.HandlerFunc(handler.UpdateSchedule)))
	mux.Handle("PATCH /v1/schedules/{scheduleID}/active", RequireStaffToken(staffToken, http.HandlerFunc(handler.SetScheduleActive)))
	mux.Handle("DELETE /v1/schedules/{scheduleID}", RequireStaffToken(staffToken, http.HandlerFunc(handler.DeleteSchedule)))
	mux.Handle("PUT /v1/schedules/{scheduleID}/occurrences/{date}", RequireStaffToken(staffToken, http.HandlerFunc(handler.OverrideOccurrence)))
	mux.Handle("DELETE /v1/schedules/{scheduleID}/occurrences/{date}", RequireStaffToken(staffToken, http.HandlerFunc(handler.ClearOccurrenceOverride)))
}
