package sim

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tmarek/socsim/internal/action"
	"github.com/tmarek/socsim/internal/scenario"
	"github.com/tmarek/socsim/internal/store"
)

// Driver executes scenarios and records their event logs.
type Driver struct {
	store  *store.Store
	tokens TokenGenerator
}

// New creates a Driver writing to the given store.
// If gen is nil, UUIDv7 run tokens are used.
func New(st *store.Store, gen TokenGenerator) *Driver {
	if gen == nil {
		gen = UUIDv7Generator{}
	}
	return &Driver{store: st, tokens: gen}
}

// RunResult is the outcome of one recorded run.
type RunResult struct {
	RunToken string
	Events   []store.Event
}

// Run executes the scenario and records every event under a fresh run
// token. The scenario must already be validated (the loaders do this);
// Run re-checks only what it cannot proceed without.
func (d *Driver) Run(ctx context.Context, scn *scenario.Scenario) (*RunResult, error) {
	clock, err := scn.Clock.NewClock()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", scn.Name, err)
	}

	token := d.tokens.Generate()
	slog.Info("run starting", "scenario", scn.Name, "run", token)

	if err := d.store.WriteRun(ctx, store.Run{
		Token:        token,
		Scenario:     scn.Name,
		Seed:         scn.Clock.Seed,
		TickDuration: scn.Clock.TickDuration,
		EpochISO:     clock.ToISO(0),
	}); err != nil {
		return nil, fmt.Errorf("run %s: %w", scn.Name, err)
	}

	events, err := timeline(scn, func(ev *store.Event) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		ev.RunToken = token
		return d.store.WriteEvent(ctx, *ev)
	})
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", scn.Name, err)
	}

	slog.Info("run complete", "scenario", scn.Name, "run", token, "events", len(events))
	return &RunResult{RunToken: token, Events: events}, nil
}

// timeline executes the scenario's script against a fresh clock,
// calling emit for every stamped event in order. This is the single
// code path shared by Run and Replay: replay is not a special mode,
// it is the same execution compared against the recorded log.
func timeline(scn *scenario.Scenario, emit func(*store.Event) error) ([]store.Event, error) {
	clock, err := scn.Clock.NewClock()
	if err != nil {
		return nil, err
	}

	var events []store.Event
	byLabel := make(map[string]int64)
	seq := int64(0)

	for ti, tick := range scn.Ticks {
		if ti > 0 {
			if err := clock.Advance(1); err != nil {
				return nil, err
			}
			slog.Debug("tick advanced", "tick", clock.Tick())
		}

		for ei, spec := range tick.Events {
			kind := action.Type(spec.Action)
			if !kind.Valid() {
				return nil, fmt.Errorf("ticks[%d].events[%d]: unknown action %q", ti, ei, spec.Action)
			}

			var parentTime *int64
			if spec.Parent != "" {
				p, ok := byLabel[spec.Parent]
				if !ok {
					return nil, fmt.Errorf("ticks[%d].events[%d]: parent %q not found", ti, ei, spec.Parent)
				}
				parentTime = &p
			}

			var ts int64
			if parentTime != nil {
				ts = clock.EventTimeAfter(spec.Actor, *parentTime, spec.Action)
			} else {
				ts = clock.EventTime(spec.Actor, spec.Action)
			}

			label := spec.Label
			if label == "" {
				label = fmt.Sprintf("t%d.e%d", ti, ei)
			}
			byLabel[label] = ts

			seq++
			ev := store.Event{
				Seq:         seq,
				Tick:        clock.Tick(),
				Label:       label,
				Actor:       spec.Actor,
				Action:      spec.Action,
				ParentTime:  parentTime,
				VirtualTime: ts,
				ISOTime:     clock.ToISO(ts),
			}
			if err := emit(&ev); err != nil {
				return nil, err
			}
			events = append(events, ev)
		}
	}

	return events, nil
}
