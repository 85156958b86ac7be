package schedule

import (
	"testing"
	"time"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := ParseDate(value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return d
}

func allocationsFor(courtIDs ...string) []CourtAllocation {
	out := make([]CourtAllocation, 0, len(courtIDs))
	for i, id := range courtIDs {
		out = append(out, CourtAllocation{
			CourtID:         id,
			SkillLevelMin:   2.0,
			SkillLevelMax:   ratingPtr(3.0),
			SkillLevelLabel: "Beginner",
			SortOrder:       i,
		})
	}
	return out
}

func mondayBlock(t *testing.T, id, start, end string, courtIDs ...string) Definition {
	t.Helper()
	return Definition{
		ID:             id,
		Name:           "Morning Open Play - Beginner (DUPR 2.0-3.0)",
		Weekday:        time.Monday,
		StartTime:      mustTime(t, start),
		EndTime:        mustTime(t, end),
		EffectiveFrom:  date(t, "2024-01-01"),
		EffectiveUntil: date(t, "2024-06-30"),
		Category:       CategoryDedicatedSkill,
		Allocations:    allocationsFor(courtIDs...),
		IsActive:       true,
	}
}

func TestCheckDetectsTripleOverlap(t *testing.T) {
	existing := mondayBlock(t, "beginner", "09:00", "11:00", "c1", "c2", "c3", "c4", "c5")
	candidate := mondayBlock(t, "", "10:00", "12:00", "c1", "c2", "c3", "c4", "c5")

	conflicts := Check(candidate, []Definition{existing})
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(conflicts))
	}
	if conflicts[0].ID != "beginner" {
		t.Fatalf("expected conflict with beginner block, got %s", conflicts[0].ID)
	}
}

func TestCheckBackToBackNeverConflicts(t *testing.T) {
	existing := mondayBlock(t, "beginner", "09:00", "11:00", "c1", "c2")
	candidate := mondayBlock(t, "", "11:00", "13:00", "c1", "c2")

	if conflicts := Check(candidate, []Definition{existing}); len(conflicts) != 0 {
		t.Fatalf("back-to-back blocks must not conflict, got %d", len(conflicts))
	}
}

func TestCheckDifferentWeekdayNeverConflicts(t *testing.T) {
	existing := mondayBlock(t, "beginner", "09:00", "11:00", "c1")
	candidate := mondayBlock(t, "", "09:00", "11:00", "c1")
	candidate.Weekday = time.Tuesday

	if conflicts := Check(candidate, []Definition{existing}); len(conflicts) != 0 {
		t.Fatalf("different weekdays must not conflict, got %d", len(conflicts))
	}
}

func TestCheckDisjointCourtsNeverConflict(t *testing.T) {
	existing := mondayBlock(t, "beginner", "09:00", "11:00", "c1", "c2")
	candidate := mondayBlock(t, "", "09:00", "11:00", "c3", "c4")

	if conflicts := Check(candidate, []Definition{existing}); len(conflicts) != 0 {
		t.Fatalf("disjoint courts must not conflict, got %d", len(conflicts))
	}
}

func TestCheckDisjointDateRangesNeverConflict(t *testing.T) {
	existing := mondayBlock(t, "beginner", "09:00", "11:00", "c1")
	candidate := mondayBlock(t, "", "09:00", "11:00", "c1")
	candidate.EffectiveFrom = date(t, "2024-07-01")
	candidate.EffectiveUntil = date(t, "2024-12-31")

	if conflicts := Check(candidate, []Definition{existing}); len(conflicts) != 0 {
		t.Fatalf("disjoint date ranges must not conflict, got %d", len(conflicts))
	}
}

func TestCheckAdjacentDateRangesConflict(t *testing.T) {
	// Inclusive bounds: a range ending 2024-06-30 overlaps one starting
	// 2024-06-30.
	existing := mondayBlock(t, "beginner", "09:00", "11:00", "c1")
	candidate := mondayBlock(t, "", "09:00", "11:00", "c1")
	candidate.EffectiveFrom = date(t, "2024-06-30")
	candidate.EffectiveUntil = date(t, "2024-12-31")

	if conflicts := Check(candidate, []Definition{existing}); len(conflicts) != 1 {
		t.Fatalf("ranges sharing a boundary date must conflict, got %d", len(conflicts))
	}
}

func TestCheckMissingBoundsFailSafe(t *testing.T) {
	// Legacy rows without effective bounds always conflict, never silently
	// cleared.
	existing := mondayBlock(t, "legacy", "09:00", "11:00", "c1")
	existing.EffectiveFrom = time.Time{}
	existing.EffectiveUntil = time.Time{}

	candidate := mondayBlock(t, "", "09:00", "11:00", "c1")
	candidate.EffectiveFrom = date(t, "2030-01-01")
	candidate.EffectiveUntil = date(t, "2030-06-30")

	if conflicts := Check(candidate, []Definition{existing}); len(conflicts) != 1 {
		t.Fatalf("unbounded legacy row must conflict, got %d", len(conflicts))
	}
}

func TestCheckEmptyAllocationsNeverConflict(t *testing.T) {
	existing := mondayBlock(t, "beginner", "09:00", "11:00", "c1", "c2")

	candidate := mondayBlock(t, "", "09:00", "11:00")
	candidate.Category = CategoryMixedLevels
	if conflicts := Check(candidate, []Definition{existing}); len(conflicts) != 0 {
		t.Fatalf("candidate without allocations claims no courts, got %d conflicts", len(conflicts))
	}

	unresolved := mondayBlock(t, "mixed", "09:00", "11:00")
	unresolved.Category = CategoryMixedLevels
	withCourts := mondayBlock(t, "", "09:00", "11:00", "c1")
	if conflicts := Check(withCourts, []Definition{unresolved}); len(conflicts) != 0 {
		t.Fatalf("existing block without allocations claims no courts, got %d conflicts", len(conflicts))
	}
}

func TestCheckSkipsCancelledAndInactive(t *testing.T) {
	cancelled := mondayBlock(t, "cancelled", "09:00", "11:00", "c1")
	cancelled.IsCancelled = true
	inactive := mondayBlock(t, "inactive", "09:00", "11:00", "c1")
	inactive.IsActive = false

	candidate := mondayBlock(t, "", "09:00", "11:00", "c1")
	if conflicts := Check(candidate, []Definition{cancelled, inactive}); len(conflicts) != 0 {
		t.Fatalf("cancelled/inactive series must never conflict, got %d", len(conflicts))
	}
}

func TestCheckReportsEveryConflictingDefinition(t *testing.T) {
	first := mondayBlock(t, "first", "08:00", "10:00", "c1")
	second := mondayBlock(t, "second", "09:30", "11:30", "c1")
	unrelated := mondayBlock(t, "unrelated", "09:00", "11:00", "c9")

	candidate := mondayBlock(t, "", "09:00", "11:00", "c1")
	conflicts := Check(candidate, []Definition{first, second, unrelated})
	if len(conflicts) != 2 {
		t.Fatalf("expected 2 conflicts, got %d", len(conflicts))
	}
}

func TestDefinitionValidate(t *testing.T) {
	valid := mondayBlock(t, "", "09:00", "11:00", "c1")
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid definition rejected: %v", err)
	}

	noName := valid
	noName.Name = ""
	if err := noName.Validate(); err != ErrEmptyName {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}

	inverted := valid
	inverted.StartTime, inverted.EndTime = inverted.EndTime, inverted.StartTime
	if err := inverted.Validate(); err == nil {
		t.Fatal("expected error for start >= end")
	}

	unbounded := valid
	unbounded.EffectiveUntil = time.Time{}
	if err := unbounded.Validate(); err != ErrMissingEffectiveBounds {
		t.Fatalf("expected ErrMissingEffectiveBounds, got %v", err)
	}

	invertedDates := valid
	invertedDates.EffectiveFrom = date(t, "2024-07-01")
	if err := invertedDates.Validate(); err == nil {
		t.Fatal("expected error for from > until")
	}

	bare := valid
	bare.Category = CategoryDividedBySkill
	bare.Allocations = nil
	if err := bare.Validate(); err == nil {
		t.Fatal("expected error for non-mixed category without allocations")
	}

	mixed := valid
	mixed.Category = CategoryMixedLevels
	mixed.Allocations = nil
	if err := mixed.Validate(); err != nil {
		t.Fatalf("mixed category may omit allocations: %v", err)
	}
}
