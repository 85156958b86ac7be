package schedule

// Check returns the existing definitions that would double-book a court if
// the candidate were created. Pure and idempotent: safe to re-run on every
// form edit.
//
// A definition conflicts when all of the following hold:
//   - it is active and not cancelled (anything else never conflicts),
//   - it runs on the candidate's weekday,
//   - its time-of-day window overlaps the candidate's (half-open),
//   - its effective date range overlaps the candidate's, and
//   - it claims at least one court the candidate also claims.
//
// Missing effective bounds on either record count as overlapping. Legacy rows
// without bounds must surface as conflicts rather than be silently cleared.
func Check(candidate Definition, existing []Definition) []Definition {
	candidateCourts := candidate.CourtIDs()

	var conflicts []Definition
	for _, d := range existing {
		if !d.InConflictScope() {
			continue
		}
		if d.Weekday != candidate.Weekday {
			continue
		}
		if !TimeRangesOverlap(candidate.StartTime, candidate.EndTime, d.StartTime, d.EndTime) {
			continue
		}
		if !dateRangesOverlap(candidate, d) {
			continue
		}
		if !claimsSharedCourt(candidateCourts, d) {
			continue
		}
		conflicts = append(conflicts, d)
	}
	return conflicts
}

// dateRangesOverlap compares inclusive effective date ranges, failing safe
// when either side has no bounds on record.
func dateRangesOverlap(a, b Definition) bool {
	if !a.HasEffectiveBounds() || !b.HasEffectiveBounds() {
		return true
	}
	return !a.EffectiveFrom.After(b.EffectiveUntil) && !b.EffectiveFrom.After(a.EffectiveUntil)
}

// claimsSharedCourt reports whether the two allocation sets intersect. An
// empty set on either side cannot conflict: a session without assigned courts
// (an unresolved mixed block) claims nothing yet, and its courts are settled
// by a later process.
func claimsSharedCourt(candidateCourts map[string]struct{}, d Definition) bool {
	if len(candidateCourts) == 0 || len(d.Allocations) == 0 {
		return false
	}
	for _, a := range d.Allocations {
		if _, ok := candidateCourts[a.CourtID]; ok {
			return true
		}
	}
	return false
}
