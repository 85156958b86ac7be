package usecase

import (
	"context"
	"testing"
	"time"
)

func checkInput(t *testing.T, start, end string) CheckConflictsInput {
	t.Helper()
	return CheckConflictsInput{
		Name:           "Beginner Open Play (DUPR 2.0-3.0)",
		Weekdays:       []time.Weekday{time.Monday},
		StartTime:      tod(t, start),
		EndTime:        tod(t, end),
		EffectiveFrom:  day(t, "2026-01-05"),
		EffectiveUntil: day(t, "2026-06-28"),
	}
}

func TestLiveCheckerPublishesLatest(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.service.Create(ctx, createInput(t,
		"Advanced Drills (DUPR 4.5+)",
		[]time.Weekday{time.Monday}, "08:00", "10:00")); err != nil {
		t.Fatalf("seed create: %v", err)
	}

	seq := env.checker.Begin()
	report, ok, err := env.checker.Run(ctx, seq, checkInput(t, "09:00", "11:00"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !ok {
		t.Fatalf("sole in-flight check must publish")
	}
	if !report.HasConflicts {
		t.Fatalf("overlapping check reported no conflicts")
	}

	latest, has := env.checker.Latest()
	if !has || !latest.HasConflicts {
		t.Fatalf("Latest() did not reflect the published report")
	}
}

func TestLiveCheckerDiscardsStaleResult(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.service.Create(ctx, createInput(t,
		"Advanced Drills (DUPR 4.5+)",
		[]time.Weekday{time.Monday}, "08:00", "10:00")); err != nil {
		t.Fatalf("seed create: %v", err)
	}

	// The user edits twice; the newer edit's check completes first.
	oldSeq := env.checker.Begin()
	newSeq := env.checker.Begin()

	newReport, ok, err := env.checker.Run(ctx, newSeq, checkInput(t, "10:00", "12:00"))
	if err != nil {
		t.Fatalf("new run: %v", err)
	}
	if !ok {
		t.Fatalf("newest check must publish")
	}
	if newReport.HasConflicts {
		t.Fatalf("back-to-back slot reported conflicts")
	}

	// The older check, for a conflicting form state, finishes late. It must
	// not overwrite the current verdict.
	_, ok, err = env.checker.Run(ctx, oldSeq, checkInput(t, "09:00", "11:00"))
	if err != nil {
		t.Fatalf("old run: %v", err)
	}
	if ok {
		t.Fatalf("stale check published its result")
	}

	latest, has := env.checker.Latest()
	if !has {
		t.Fatalf("no published report")
	}
	if latest.HasConflicts {
		t.Fatalf("stale conflicting verdict replaced the current clean one")
	}
}

func TestLiveCheckerPropagatesOutage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.defRepo.FailReads = true
	seq := env.checker.Begin()
	_, ok, err := env.checker.Run(ctx, seq, checkInput(t, "08:00", "10:00"))
	if err == nil {
		t.Fatalf("expected outage error")
	}
	if ok {
		t.Fatalf("failed check must not publish")
	}
	if _, has := env.checker.Latest(); has {
		t.Fatalf("failed check left a published report")
	}
}
