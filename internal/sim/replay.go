package sim

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tmarek/socsim/internal/scenario"
	"github.com/tmarek/socsim/internal/store"
)

// ReplayReport is the result of comparing a re-execution against the
// recorded log of an earlier run.
type ReplayReport struct {
	RunToken string

	// Deterministic is true when every re-derived timestamp matches
	// the recorded one, in order.
	Deterministic bool

	// Recorded and Replayed are the two timestamp sequences.
	Recorded []int64
	Replayed []int64

	// FirstDivergence is the index of the first mismatch, -1 when
	// Deterministic. A length mismatch diverges at the shorter length.
	FirstDivergence int
}

// Replay re-executes the scenario against a fresh clock and compares
// the produced timestamp sequence with the one recorded under
// runToken. Determinism means the sequences are identical; any
// divergence is reported, never repaired.
//
// The scenario must be the one the run was recorded from: Replay
// fails fast if the recorded run names a different scenario.
func (d *Driver) Replay(ctx context.Context, scn *scenario.Scenario, runToken string) (*ReplayReport, error) {
	run, err := d.store.ReadRun(ctx, runToken)
	if err != nil {
		return nil, fmt.Errorf("replay %s: %w", runToken, err)
	}
	if run.Scenario != scn.Name {
		return nil, fmt.Errorf("replay %s: run was recorded from scenario %q, not %q",
			runToken, run.Scenario, scn.Name)
	}

	recorded, err := d.store.ReadEventTimes(ctx, runToken)
	if err != nil {
		return nil, fmt.Errorf("replay %s: %w", runToken, err)
	}

	events, err := timeline(scn, func(_ *store.Event) error { return ctx.Err() })
	if err != nil {
		return nil, fmt.Errorf("replay %s: %w", runToken, err)
	}

	replayed := make([]int64, len(events))
	for i, ev := range events {
		replayed[i] = ev.VirtualTime
	}

	report := &ReplayReport{
		RunToken:        runToken,
		Recorded:        recorded,
		Replayed:        replayed,
		FirstDivergence: -1,
		Deterministic:   true,
	}

	n := len(recorded)
	if len(replayed) < n {
		n = len(replayed)
	}
	for i := 0; i < n; i++ {
		if recorded[i] != replayed[i] {
			report.Deterministic = false
			report.FirstDivergence = i
			break
		}
	}
	if report.Deterministic && len(recorded) != len(replayed) {
		report.Deterministic = false
		report.FirstDivergence = n
	}

	if report.Deterministic {
		slog.Info("replay deterministic", "run", runToken, "events", len(recorded))
	} else {
		slog.Error("replay diverged", "run", runToken, "at", report.FirstDivergence)
	}
	return report, nil
}
