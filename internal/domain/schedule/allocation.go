package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dinkhousedev/dink-house-scheduler/internal/domain/court"
)

// RatingCeiling caps open-ended rating tokens such as "3.5+".
const RatingCeiling = 5.0

type ResolutionKind string

const (
	// ResolutionSkillBand means every indoor court was dedicated to one band.
	ResolutionSkillBand ResolutionKind = "skill_band"
	// ResolutionMixed means allocation is deferred to a later process.
	ResolutionMixed ResolutionKind = "mixed"
	// ResolutionUnresolved means the name identified nothing; callers must
	// treat this as an error state requiring explicit category selection.
	ResolutionUnresolved ResolutionKind = "unresolved"
)

// Resolution is the outcome of parsing a session name. Mixed and unresolved
// both carry empty allocations but are distinct states.
type Resolution struct {
	Kind        ResolutionKind
	Label       string
	Min         float64
	Max         *float64
	Allocations []CourtAllocation
}

func (r Resolution) IsResolved() bool {
	return r.Kind != ResolutionUnresolved
}

type skillBand struct {
	label string
	min   float64
	max   *float64
}

// standardBands fixes the venue's rating bands for the common labels. A
// matched label wins over any embedded rating token.
var standardBands = []skillBand{
	{label: "Beginner", min: 2.0, max: ratingPtr(3.0)},
	{label: "Intermediate", min: 3.0, max: ratingPtr(4.5)},
	{label: "Advanced", min: 4.5, max: nil},
}

// mixedPhrases defer allocation entirely. Note "mixed levels", not bare
// "mixed": a special-event name like "Weekend Warriors - Mixed (DUPR 2.0-5.0)"
// must still fall through to rating-token parsing.
var mixedPhrases = []string{"mixed levels", "all levels", "social play"}

// ratingTokenRe recognizes "(2.0-3.5)", "(DUPR 2.0-3.5)" and "(4.0+)".
var ratingTokenRe = regexp.MustCompile(`(?i)\(\s*(?:dupr\s*)?(\d(?:\.\d+)?)\s*(?:-\s*(\d(?:\.\d+)?)|\+)\s*\)`)

// Resolve turns a human-chosen session name into the concrete allocation
// list: one entry per indoor court for skill-band sessions, none for mixed
// sessions. Pure function of (name, court list).
func Resolve(name string, indoorCourts []court.Court) Resolution {
	lower := strings.ToLower(name)

	for _, band := range standardBands {
		if strings.Contains(lower, strings.ToLower(band.label)) {
			return Resolution{
				Kind:        ResolutionSkillBand,
				Label:       band.label,
				Min:         band.min,
				Max:         band.max,
				Allocations: allocateAll(indoorCourts, band),
			}
		}
	}

	for _, phrase := range mixedPhrases {
		if strings.Contains(lower, phrase) {
			return Resolution{Kind: ResolutionMixed}
		}
	}

	if band, ok := parseRatingToken(name); ok {
		return Resolution{
			Kind:        ResolutionSkillBand,
			Label:       band.label,
			Min:         band.min,
			Max:         band.max,
			Allocations: allocateAll(indoorCourts, band),
		}
	}

	return Resolution{Kind: ResolutionUnresolved}
}

func parseRatingToken(name string) (skillBand, bool) {
	m := ratingTokenRe.FindStringSubmatch(name)
	if m == nil {
		return skillBand{}, false
	}

	min, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return skillBand{}, false
	}

	max := RatingCeiling
	if m[2] != "" {
		max, err = strconv.ParseFloat(m[2], 64)
		if err != nil || max < min {
			return skillBand{}, false
		}
	}

	return skillBand{
		label: fmt.Sprintf("%.1f-%.1f", min, max),
		min:   min,
		max:   ratingPtr(max),
	}, true
}

func allocateAll(indoorCourts []court.Court, band skillBand) []CourtAllocation {
	out := make([]CourtAllocation, 0, len(indoorCourts))
	for i, c := range indoorCourts {
		out = append(out, CourtAllocation{
			CourtID:         c.ID,
			SkillLevelMin:   band.min,
			SkillLevelMax:   band.max,
			SkillLevelLabel: band.label,
			IsMixedLevel:    false,
			SortOrder:       i,
		})
	}
	return out
}

func ratingPtr(v float64) *float64 {
	return &v
}
