// Package vclock implements the simulation's virtual timebase.
//
// The clock is fully detached from wall-clock time: simulated time
// advances only when the driver calls Advance, and every simulated
// event receives a unique virtual-second timestamp inside the current
// tick's range. The same seed, the same call sequence, and the same
// Advance interleaving always produce the same timestamps, which is
// what makes runs replayable and golden traces stable.
//
// ARCHITECTURE:
//
// Single clock instance per run, mutex-guarded. The driver is expected
// to be single-writer (one event at a time); the lock exists so that
// diagnostic readers cannot observe torn state, not to make concurrent
// event generation deterministic. Determinism depends on call order:
// the per-call seed includes a per-(tick, actor) call index, so racing
// callers would race for indices and diverge between runs.
//
// INVARIANTS:
//
//   - The tick number only increases, and only via Advance (the legacy
//     SetTimeStep shim is the documented exception).
//   - A child event stamped with EventTimeAfter is strictly later than
//     its parent, even when the parent sits at the tick boundary (the
//     timestamp then spills one second past the nominal range).
//   - Within one tick no two events share a timestamp, unless the
//     tick's range is completely full, in which case a collision is
//     tolerated rather than reported.
//   - Timestamps are a pure function of (seed, tick, actor, hint,
//     call index). NEVER mix wall-clock time into timestamp synthesis.
//
// Calendar conversion is plain epoch-plus-offset arithmetic at whole
// second granularity; there are no timezone semantics.
package vclock
