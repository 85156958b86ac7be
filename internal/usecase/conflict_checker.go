package usecase

import (
	"context"
	"sync"
	"sync/atomic"
)

// LiveConflictChecker serializes the form-editing feedback loop: every
// keystroke-triggered check gets a monotonic sequence number, and only the
// latest issued check may publish its result. A slow response for an old
// form state can never overwrite feedback for the current one.
type LiveConflictChecker struct {
	service *ScheduleService

	seq    atomic.Uint64
	latest atomic.Uint64

	mu     sync.RWMutex
	report ConflictReport
	hasRun bool
}

func NewLiveConflictChecker(service *ScheduleService) *LiveConflictChecker {
	return &LiveConflictChecker{service: service}
}

// Begin reserves a sequence number for a check about to run. Every edit of
// the form calls Begin before Run so later edits invalidate earlier ones
// even while those are still in flight.
func (c *LiveConflictChecker) Begin() uint64 {
	return c.seq.Add(1)
}

// Run executes the check for a previously reserved sequence number. The
// returned ok is false when the result is stale, meaning a newer check was
// issued while this one ran; stale results are discarded unpublished.
func (c *LiveConflictChecker) Run(ctx context.Context, seq uint64, input CheckConflictsInput) (ConflictReport, bool, error) {
	report, err := c.service.CheckConflicts(ctx, input)
	if err != nil {
		return ConflictReport{}, false, err
	}

	for {
		current := c.latest.Load()
		if seq <= current {
			return ConflictReport{}, false, nil
		}
		if c.latest.CompareAndSwap(current, seq) {
			break
		}
	}

	c.mu.Lock()
	c.report = report
	c.hasRun = true
	c.mu.Unlock()
	return report, true, nil
}

// Latest returns the most recently published result, if any check has
// completed.
func (c *LiveConflictChecker) Latest() (ConflictReport, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.report, c.hasRun
}
