package vclock

import (
	"fmt"
	"sync"
	"time"
)

// Defaults match the simulation driver's standard configuration:
// one tick per simulated day, epoch at the start of 2024, seed 42.
const (
	DefaultTickDuration int64 = 86400
	DefaultSeed         int64 = 42
)

// DefaultEpoch is the calendar instant corresponding to virtual second 0.
var DefaultEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// isoLayout is the display format for virtual timestamps.
const isoLayout = "2006-01-02 15:04:05"

// Clock is the deterministic simulation clock.
//
// Construction fixes the configuration (tick duration, epoch, seed);
// after that the only externally visible state is the current tick,
// which moves forward via Advance and back to zero via Reset.
//
// Thread-safety: all methods are safe for concurrent use via an
// internal mutex, but determinism requires callers to be serialized
// in a fixed order (see package documentation).
type Clock struct {
	tickDuration int64
	epoch        time.Time
	seed         int64

	mu       sync.Mutex
	tick     int64
	counters map[actorKey]int64
	used     map[int64]map[int64]struct{}
}

// actorKey scopes call counters to a (tick, actor) pair.
// Counters are cleared on every Advance, so the tick component only
// distinguishes entries written through the legacy SetTimeStep path.
type actorKey struct {
	tick  int64
	actor int64
}

// Option configures a Clock at construction.
type Option func(*Clock)

// WithTickDuration sets the length of one tick in virtual seconds.
// Must be positive; New rejects the configuration otherwise.
func WithTickDuration(seconds int64) Option {
	return func(c *Clock) {
		c.tickDuration = seconds
	}
}

// WithEpoch sets the calendar instant corresponding to virtual second 0.
func WithEpoch(epoch time.Time) Option {
	return func(c *Clock) {
		c.epoch = epoch
	}
}

// WithSeed sets the seed controlling all deterministic randomness.
func WithSeed(seed int64) Option {
	return func(c *Clock) {
		c.seed = seed
	}
}

// New creates a Clock at tick 0 with the given options.
//
// Returns an error for a non-positive tick duration: a zero or
// negative tick range would make TickRange ill-defined, so this is
// the one configuration mistake worth failing fast on.
func New(opts ...Option) (*Clock, error) {
	c := &Clock{
		tickDuration: DefaultTickDuration,
		epoch:        DefaultEpoch,
		seed:         DefaultSeed,
		counters:     make(map[actorKey]int64),
		used:         make(map[int64]map[int64]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tickDuration <= 0 {
		return nil, fmt.Errorf("vclock: tick duration must be positive, got %d", c.tickDuration)
	}
	return c, nil
}

// Advance moves simulation time forward by n ticks.
//
// This is the only way time moves forward. Call counters are scoped
// to the current tick, so they are cleared here; the used-timestamp
// history is kept (past ticks are never revisited, and the history is
// useful when debugging a trace).
//
// Returns an error for n < 1: advancing by zero or a negative count
// would violate tick monotonicity.
func (c *Clock) Advance(n int) error {
	if n < 1 {
		return fmt.Errorf("vclock: advance count must be >= 1, got %d", n)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tick += int64(n)
	c.counters = make(map[actorKey]int64)
	return nil
}

// Tick returns the current tick number.
func (c *Clock) Tick() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tick
}

// TickRange returns the inclusive virtual-second range of the current
// tick: [tick*duration, (tick+1)*duration - 1].
func (c *Clock) TickRange() (start, end int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rangeLocked()
}

func (c *Clock) rangeLocked() (start, end int64) {
	start = c.tick * c.tickDuration
	return start, start + c.tickDuration - 1
}

// EventTime generates a virtual timestamp for an independent event
// (one with no causal parent) performed by the given actor.
//
// The result lies within the current tick's range, is unique among
// timestamps issued in this tick (unless the range is completely
// full), and is a pure function of (seed, tick, actor, hint, call
// index). The hint is an opaque action tag used only to diversify
// seed derivation; the empty string is valid.
func (c *Clock) EventTime(actorID int64, hint string) int64 {
	return c.synthesize(actorID, nil, hint)
}

// EventTimeAfter generates a virtual timestamp for an event that is
// causally dependent on an earlier event: the result is strictly
// greater than parent.
//
// If the parent sits at or beyond the end of the current tick's range
// there is no room left inside the tick; the result is then exactly
// parent+1, spilling past the nominal boundary. Causality wins over
// range containment at tick edges.
func (c *Clock) EventTimeAfter(actorID int64, parent int64, hint string) int64 {
	return c.synthesize(actorID, &parent, hint)
}

func (c *Clock) synthesize(actorID int64, parent *int64, hint string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	tickStart, tickEnd := c.rangeLocked()

	minAllowed := tickStart
	if parent != nil {
		minAllowed = *parent + 1
	}

	// Parent at or past the tick boundary: spill one second past it.
	// The counter is deliberately not consumed on this path, so the
	// next in-range call for the same actor derives the same seed it
	// would have without the overflow.
	if minAllowed > tickEnd {
		return *parent + 1
	}

	key := actorKey{tick: c.tick, actor: actorID}
	callIndex := c.counters[key]
	c.counters[key] = callIndex + 1

	draw := deriveDraw(c.seed, c.tick, actorID, callIndex, hint)
	rangeSize := tickEnd - minAllowed + 1
	candidate := minAllowed + int64(draw%uint64(rangeSize))

	used := c.used[c.tick]
	if used == nil {
		used = make(map[int64]struct{})
		c.used[c.tick] = used
	}

	// Linear probe for uniqueness, wrapping within [minAllowed, tickEnd].
	// After rangeSize attempts the range is provably full; the last
	// probed value is accepted with a collision rather than failing,
	// since no free value exists.
	for attempts := int64(0); attempts < rangeSize; attempts++ {
		if _, taken := used[candidate]; !taken {
			break
		}
		candidate++
		if candidate > tickEnd {
			candidate = minAllowed
		}
	}

	used[candidate] = struct{}{}
	return candidate
}

// ToTime converts a virtual timestamp to its calendar instant.
func (c *Clock) ToTime(virtualSeconds int64) time.Time {
	return c.epoch.Add(time.Duration(virtualSeconds) * time.Second)
}

// ToISO formats a virtual timestamp as "YYYY-MM-DD HH:MM:SS".
func (c *Clock) ToISO(virtualSeconds int64) string {
	return c.ToTime(virtualSeconds).Format(isoLayout)
}

// FromTime converts a calendar instant back to virtual seconds.
// Inverse of ToTime for whole-second instants; sub-second precision
// is truncated, since virtual time is integer-second granularity.
func (c *Clock) FromTime(t time.Time) int64 {
	return int64(t.Sub(c.epoch) / time.Second)
}

// Reset restores the clock to its initial state: tick 0, empty
// counters and timestamp history. Configuration (duration, epoch,
// seed) is kept, so a reset clock reproduces a fresh clock's outputs
// on an identical call sequence.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tick = 0
	c.counters = make(map[actorKey]int64)
	c.used = make(map[int64]map[int64]struct{})
}

// String reports the clock's current position for logging.
func (c *Clock) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	start, end := c.rangeLocked()
	return fmt.Sprintf("Clock(tick=%d, tick_duration_s=%d, current_range=[%d, %d])",
		c.tick, c.tickDuration, start, end)
}
