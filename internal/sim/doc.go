// Package sim drives scripted simulation runs against the virtual
// clock and records the resulting events.
//
// ARCHITECTURE:
//
// Single-Writer Step Loop:
// The driver executes one scenario in a single goroutine, one event at
// a time, in script order. This is what makes runs deterministic: the
// clock's per-call seed depends on the per-(tick, actor) call index,
// so the call order IS the semantics. Never parallelize event
// generation.
//
// Execution flow per run:
//  1. Construct a fresh clock from the scenario's clock config
//  2. For each scripted tick, stamp each event via the clock
//     (EventTime / EventTimeAfter for events with a causal parent)
//  3. Write each event to the store under the run token, stamped
//     with a monotonic seq
//  4. Advance the clock between ticks
//
// Replay re-executes the same scenario against a fresh clock and
// compares the produced timestamp sequence against the recorded one,
// event by event. A divergence means either the scenario changed or
// determinism was broken; both are reported, never repaired.
package sim
