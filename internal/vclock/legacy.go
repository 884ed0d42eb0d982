package vclock

import (
	"strconv"
	"time"
)

// Legacy compatibility surface for drivers written against the older
// step-counter clock. New code should use Tick, Advance and the
// EventTime family; these exist purely for drop-in substitution.

// TimeStep returns the current tick under its legacy name.
func (c *Clock) TimeStep() int64 {
	return c.Tick()
}

// SetTimeStep sets the tick directly.
//
// WARNING: this bypasses Advance entirely - call counters are NOT
// cleared, and the monotonicity guarantee does not apply. Setting the
// step backwards or to the same value leaves stale counters behind
// and can reproduce timestamps from the overwritten tick. Provided
// only because the legacy driver mutated the step field directly.
func (c *Clock) SetTimeStep(v int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tick = v
}

// TimeStepString returns the current tick as a string, matching the
// legacy accessor's shape.
func (c *Clock) TimeStepString() string {
	return strconv.FormatInt(c.Tick(), 10)
}

// TimeTransfer returns the calendar instant at the start of the
// current tick. Both arguments are ignored: the legacy interface
// passed wall-clock instants, but this clock is detached from
// wall-clock time. Surface shape only, no behavioral parity.
func (c *Clock) TimeTransfer(now, start time.Time) time.Time {
	_ = now
	_ = start
	c.mu.Lock()
	tickStart, _ := c.rangeLocked()
	c.mu.Unlock()
	return c.ToTime(tickStart)
}
