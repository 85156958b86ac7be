package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dinkhousedev/dink-house-scheduler/internal/domain/schedule"
)

func TestOccurrencesExpandWeekly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.service.Create(ctx, createInput(t,
		"Beginner Open Play (DUPR 2.0-3.0)",
		[]time.Weekday{time.Monday, time.Wednesday}, "08:00", "10:00")); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Two full weeks: two Mondays and two Wednesdays.
	occs, err := env.calendar.Occurrences(ctx, day(t, "2026-01-05"), day(t, "2026-01-18"))
	if err != nil {
		t.Fatalf("occurrences: %v", err)
	}
	if len(occs) != 4 {
		t.Fatalf("got %d occurrences, want 4", len(occs))
	}

	wantDates := []string{"2026-01-05", "2026-01-07", "2026-01-12", "2026-01-14"}
	for i, want := range wantDates {
		if got := occs[i].Date.Format(schedule.DateLayout); got != want {
			t.Fatalf("occurrence %d date = %s, want %s", i, got, want)
		}
	}
}

func TestOccurrencesClipToEffectiveRange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	input := createInput(t, "Beginner Open Play (DUPR 2.0-3.0)",
		[]time.Weekday{time.Monday}, "08:00", "10:00")
	input.EffectiveFrom = day(t, "2026-01-12")
	input.EffectiveUntil = day(t, "2026-01-19")
	if _, err := env.service.Create(ctx, input); err != nil {
		t.Fatalf("create: %v", err)
	}

	occs, err := env.calendar.Occurrences(ctx, day(t, "2026-01-01"), day(t, "2026-01-31"))
	if err != nil {
		t.Fatalf("occurrences: %v", err)
	}
	if len(occs) != 2 {
		t.Fatalf("got %d occurrences, want 2 inside the effective window", len(occs))
	}
	if got := occs[0].Date.Format(schedule.DateLayout); got != "2026-01-12" {
		t.Fatalf("first occurrence = %s, want 2026-01-12", got)
	}
	if got := occs[1].Date.Format(schedule.DateLayout); got != "2026-01-19" {
		t.Fatalf("last occurrence = %s, want boundary date 2026-01-19", got)
	}
}

func TestOccurrencesApplyCancellationOverride(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	defs, err := env.service.Create(ctx, createInput(t,
		"Beginner Open Play (DUPR 2.0-3.0)",
		[]time.Weekday{time.Monday}, "08:00", "10:00"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := env.overrides.CancelInstance(ctx, defs[0].ID, day(t, "2026-01-12")); err != nil {
		t.Fatalf("cancel instance: %v", err)
	}

	occs, err := env.calendar.Occurrences(ctx, day(t, "2026-01-05"), day(t, "2026-01-19"))
	if err != nil {
		t.Fatalf("occurrences: %v", err)
	}
	if len(occs) != 2 {
		t.Fatalf("got %d occurrences, want 2 after one cancellation", len(occs))
	}
	for _, occ := range occs {
		if occ.Date.Format(schedule.DateLayout) == "2026-01-12" {
			t.Fatalf("cancelled occurrence still materialized")
		}
	}
}

func TestOccurrencesApplyReplacementOverride(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	defs, err := env.service.Create(ctx, createInput(t,
		"Beginner Open Play (DUPR 2.0-3.0)",
		[]time.Weekday{time.Monday}, "08:00", "10:00"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newStart := tod(t, "09:00")
	newEnd := tod(t, "11:00")
	if _, err := env.overrides.OverrideInstance(ctx, defs[0].ID, day(t, "2026-01-12"), OverrideInstanceInput{
		Name:         "Holiday Beginner Clinic",
		StartTime:    &newStart,
		EndTime:      &newEnd,
		Instructions: "Bring a guest",
	}); err != nil {
		t.Fatalf("override instance: %v", err)
	}

	occs, err := env.calendar.Occurrences(ctx, day(t, "2026-01-12"), day(t, "2026-01-12"))
	if err != nil {
		t.Fatalf("occurrences: %v", err)
	}
	if len(occs) != 1 {
		t.Fatalf("got %d occurrences, want 1", len(occs))
	}
	occ := occs[0]
	if !occ.IsOverridden {
		t.Fatalf("occurrence not marked overridden")
	}
	if occ.Name != "Holiday Beginner Clinic" {
		t.Fatalf("name = %q", occ.Name)
	}
	if occ.StartTime != newStart || occ.EndTime != newEnd {
		t.Fatalf("times = %v..%v, want 09:00..11:00", occ.StartTime, occ.EndTime)
	}
	if occ.Instructions != "Bring a guest" {
		t.Fatalf("instructions = %q", occ.Instructions)
	}
	// Series allocations survive an instance rename.
	if len(occ.Allocations) != 5 {
		t.Fatalf("got %d allocations, want the series' 5", len(occ.Allocations))
	}
}

func TestClearOverrideRestoresSeries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	defs, err := env.service.Create(ctx, createInput(t,
		"Beginner Open Play (DUPR 2.0-3.0)",
		[]time.Weekday{time.Monday}, "08:00", "10:00"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := env.overrides.CancelInstance(ctx, defs[0].ID, day(t, "2026-01-12")); err != nil {
		t.Fatalf("cancel instance: %v", err)
	}
	if err := env.overrides.ClearOverride(ctx, defs[0].ID, day(t, "2026-01-12")); err != nil {
		t.Fatalf("clear override: %v", err)
	}

	occs, err := env.calendar.Occurrences(ctx, day(t, "2026-01-12"), day(t, "2026-01-12"))
	if err != nil {
		t.Fatalf("occurrences: %v", err)
	}
	if len(occs) != 1 {
		t.Fatalf("series occurrence not restored after clearing override")
	}
	if occs[0].IsOverridden {
		t.Fatalf("restored occurrence still marked overridden")
	}
}

func TestOverrideRejectsWrongWeekday(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	defs, err := env.service.Create(ctx, createInput(t,
		"Beginner Open Play (DUPR 2.0-3.0)",
		[]time.Weekday{time.Monday}, "08:00", "10:00"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// 2026-01-13 is a Tuesday.
	_, err = env.overrides.CancelInstance(ctx, defs[0].ID, day(t, "2026-01-13"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for wrong weekday, got %v", err)
	}
}

func TestOverrideRejectsDateOutsideEffectiveRange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	defs, err := env.service.Create(ctx, createInput(t,
		"Beginner Open Play (DUPR 2.0-3.0)",
		[]time.Weekday{time.Monday}, "08:00", "10:00"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = env.overrides.CancelInstance(ctx, defs[0].ID, day(t, "2026-08-03"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for out-of-range date, got %v", err)
	}
}

func TestClearOverrideUnknownDate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	defs, err := env.service.Create(ctx, createInput(t,
		"Beginner Open Play (DUPR 2.0-3.0)",
		[]time.Weekday{time.Monday}, "08:00", "10:00"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = env.overrides.ClearOverride(ctx, defs[0].ID, day(t, "2026-01-12"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing override, got %v", err)
	}
}

func TestOccurrencesRejectInvertedRange(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.calendar.Occurrences(context.Background(), day(t, "2026-02-01"), day(t, "2026-01-01"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
