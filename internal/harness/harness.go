// Package harness runs scenarios in isolation for conformance tests.
//
// Each harness run uses a fresh in-memory database and a fixed run
// token, so the resulting trace depends only on the scenario itself.
// Golden files under testdata/golden pin the exact timestamp traces;
// they are the stability contract for the seed derivation. A golden
// diff means the derivation changed and the seed domain must be
// versioned, never that the golden file should be silently updated.
package harness

import (
	"context"
	"fmt"

	"github.com/tmarek/socsim/internal/scenario"
	"github.com/tmarek/socsim/internal/sim"
	"github.com/tmarek/socsim/internal/store"
)

// Result captures one harness execution.
type Result struct {
	RunToken string
	Events   []store.Event
}

// Run executes a scenario against a fresh in-memory store under a
// fixed run token and returns the recorded events.
func Run(scn *scenario.Scenario, runToken string) (*Result, error) {
	if err := scn.Validate(); err != nil {
		return nil, fmt.Errorf("harness: %w", err)
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("harness: %w", err)
	}
	defer st.Close()

	driver := sim.New(st, sim.NewFixedGenerator(runToken))
	result, err := driver.Run(context.Background(), scn)
	if err != nil {
		return nil, fmt.Errorf("harness: %w", err)
	}

	return &Result{RunToken: result.RunToken, Events: result.Events}, nil
}
