package schedule

import (
	"testing"

	"github.com/dinkhousedev/dink-house-scheduler/internal/domain/court"
)

func fiveIndoorCourts() []court.Court {
	return []court.Court{
		{ID: "c1", Number: 1, Environment: court.EnvironmentIndoor, Status: court.StatusAvailable},
		{ID: "c2", Number: 2, Environment: court.EnvironmentIndoor, Status: court.StatusAvailable},
		{ID: "c3", Number: 3, Environment: court.EnvironmentIndoor, Status: court.StatusAvailable},
		{ID: "c4", Number: 4, Environment: court.EnvironmentIndoor, Status: court.StatusAvailable},
		{ID: "c5", Number: 5, Environment: court.EnvironmentIndoor, Status: court.StatusAvailable},
	}
}

func TestResolveBeginnerBand(t *testing.T) {
	res := Resolve("Morning Open Play - Beginner (DUPR 2.0-3.0)", fiveIndoorCourts())

	if res.Kind != ResolutionSkillBand {
		t.Fatalf("expected skill_band resolution, got %s", res.Kind)
	}
	if len(res.Allocations) != 5 {
		t.Fatalf("expected one allocation per indoor court, got %d", len(res.Allocations))
	}
	for i, a := range res.Allocations {
		if a.SkillLevelMin != 2.0 {
			t.Fatalf("allocation %d: min %.1f, want 2.0", i, a.SkillLevelMin)
		}
		if a.SkillLevelMax == nil || *a.SkillLevelMax != 3.0 {
			t.Fatalf("allocation %d: max %v, want 3.0", i, a.SkillLevelMax)
		}
		if a.IsMixedLevel {
			t.Fatalf("allocation %d: must not be mixed level", i)
		}
		if a.SortOrder != i {
			t.Fatalf("allocation %d: sort order %d", i, a.SortOrder)
		}
	}
}

func TestResolveLabelWinsOverToken(t *testing.T) {
	// The standard band is fixed even when the embedded token disagrees.
	res := Resolve("Intermediate Ladder (DUPR 2.5-5.0)", fiveIndoorCourts())
	if res.Kind != ResolutionSkillBand {
		t.Fatalf("expected skill_band, got %s", res.Kind)
	}
	if res.Min != 3.0 || res.Max == nil || *res.Max != 4.5 {
		t.Fatalf("expected intermediate band [3.0,4.5], got [%.1f,%v]", res.Min, res.Max)
	}
}

func TestResolveAdvancedOpenEnded(t *testing.T) {
	res := Resolve("Advanced Drills", fiveIndoorCourts())
	if res.Kind != ResolutionSkillBand {
		t.Fatalf("expected skill_band, got %s", res.Kind)
	}
	if res.Min != 4.5 || res.Max != nil {
		t.Fatalf("expected advanced band [4.5,open), got [%.1f,%v]", res.Min, res.Max)
	}
}

func TestResolveMixedLevelsEmpty(t *testing.T) {
	res := Resolve("Mixed Levels Play (DUPR 2.0-5.0)", fiveIndoorCourts())
	if res.Kind != ResolutionMixed {
		t.Fatalf("expected mixed resolution, got %s", res.Kind)
	}
	if len(res.Allocations) != 0 {
		t.Fatalf("mixed sessions defer allocation, got %d entries", len(res.Allocations))
	}
}

func TestResolveSpecialEventWithSkillToken(t *testing.T) {
	// Bare "mixed" is not the mixed-levels phrase: the rating token still
	// resolves. Source behavior preserved deliberately.
	res := Resolve("Weekend Warriors - Mixed (DUPR 2.0-5.0)", fiveIndoorCourts())
	if res.Kind != ResolutionSkillBand {
		t.Fatalf("expected skill_band resolution, got %s", res.Kind)
	}
	if len(res.Allocations) != 5 {
		t.Fatalf("expected allocations despite special-event name, got %d", len(res.Allocations))
	}
	if res.Min != 2.0 || res.Max == nil || *res.Max != 5.0 {
		t.Fatalf("expected [2.0,5.0], got [%.1f,%v]", res.Min, res.Max)
	}
}

func TestResolvePlusSuffixUsesCeiling(t *testing.T) {
	res := Resolve("Ladder Night (3.5+)", fiveIndoorCourts())
	if res.Kind != ResolutionSkillBand {
		t.Fatalf("expected skill_band, got %s", res.Kind)
	}
	if res.Min != 3.5 || res.Max == nil || *res.Max != RatingCeiling {
		t.Fatalf("expected [3.5,%.1f], got [%.1f,%v]", RatingCeiling, res.Min, res.Max)
	}
}

func TestResolveUnrecognizedName(t *testing.T) {
	res := Resolve("Friday Night Lights", fiveIndoorCourts())
	if res.Kind != ResolutionUnresolved {
		t.Fatalf("expected unresolved, got %s", res.Kind)
	}
	if res.IsResolved() {
		t.Fatal("unresolved resolution must not report resolved")
	}
	if len(res.Allocations) != 0 {
		t.Fatalf("unresolved names carry no allocations, got %d", len(res.Allocations))
	}
}

func TestResolveCaseInsensitive(t *testing.T) {
	res := Resolve("BEGINNER clinic", fiveIndoorCourts())
	if res.Kind != ResolutionSkillBand || res.Label != "Beginner" {
		t.Fatalf("expected beginner band, got kind=%s label=%s", res.Kind, res.Label)
	}

	res = Resolve("Sunday SOCIAL PLAY", fiveIndoorCourts())
	if res.Kind != ResolutionMixed {
		t.Fatalf("expected mixed for social play, got %s", res.Kind)
	}
}

func TestResolveOnlyIndoorCourts(t *testing.T) {
	courts := append(fiveIndoorCourts(), court.Court{
		ID: "out1", Number: 6, Environment: court.EnvironmentOutdoor, Status: court.StatusAvailable,
	})
	indoor := court.Indoor(courts)
	res := Resolve("Beginner Open Play", indoor)
	if len(res.Allocations) != 5 {
		t.Fatalf("outdoor courts must not be allocated, got %d", len(res.Allocations))
	}
}
