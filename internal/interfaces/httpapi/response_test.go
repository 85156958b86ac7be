package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/dinkhousedev/dink-house-scheduler/internal/domain/schedule"
	"github.com/dinkhousedev/dink-house-scheduler/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestWriteError_ConflictCarriesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	conflictErr := &usecase.ConflictError{
		ByWeekday: map[time.Weekday][]schedule.Definition{
			time.Monday: {
				{ID: "block-1", Name: "Beginner Open Play (DUPR 2.0-3.0)", Weekday: time.Monday, StartTime: 480, EndTime: 600},
			},
		},
	}
	writeError(context.Background(), rec, conflictErr)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "CONFLICT" {
		t.Fatalf("expected error status CONFLICT, got %v", errorObj["status"])
	}
	items, ok := errorObj["errors"].([]any)
	if !ok || len(items) < 2 {
		t.Fatalf("expected per-block conflict detail items, got %v", errorObj["errors"])
	}
}

func TestMapError_StatusCodes(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: x", usecase.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("%w: x", usecase.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: x", usecase.ErrUnauthorized), http.StatusUnauthorized},
		{fmt.Errorf("%w: x", usecase.ErrConflict), http.StatusConflict},
		{fmt.Errorf("%w: x", usecase.ErrPartialWrite), http.StatusInternalServerError},
		{fmt.Errorf("%w: x", usecase.ErrDependencyUnavailable), http.StatusServiceUnavailable},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := mapError(tc.err).HTTPStatus; got != tc.status {
			t.Fatalf("mapError(%v) = %d, want %d", tc.err, got, tc.status)
		}
	}
}
