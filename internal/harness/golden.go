package harness

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/tmarek/socsim/internal/scenario"
)

// TraceSnapshot captures the complete timestamp trace for a scenario
// execution. Serialized deterministically for golden comparison.
type TraceSnapshot struct {
	Scenario string       `json:"scenario"`
	Run      string       `json:"run"`
	Trace    []TraceEvent `json:"trace"`
}

// TraceEvent is one event in a trace snapshot.
type TraceEvent struct {
	Seq    int64  `json:"seq"`
	Tick   int64  `json:"tick"`
	Label  string `json:"label"`
	Actor  int64  `json:"actor"`
	Action string `json:"action"`
	Parent *int64 `json:"parent,omitempty"`
	Time   int64  `json:"time"`
	ISO    string `json:"iso"`
}

// Snapshot builds a TraceSnapshot from a harness result.
func Snapshot(scenarioName string, result *Result) TraceSnapshot {
	trace := make([]TraceEvent, len(result.Events))
	for i, ev := range result.Events {
		trace[i] = TraceEvent{
			Seq:    ev.Seq,
			Tick:   ev.Tick,
			Label:  ev.Label,
			Actor:  ev.Actor,
			Action: ev.Action,
			Parent: ev.ParentTime,
			Time:   ev.VirtualTime,
			ISO:    ev.ISOTime,
		}
	}
	return TraceSnapshot{Scenario: scenarioName, Run: result.RunToken, Trace: trace}
}

// AssertGolden compares a result's trace snapshot against the golden
// file testdata/golden/{name}.golden.
//
// To regenerate golden files after an intentional derivation change
// (which also requires bumping the seed domain version), run:
//
//	go test ./internal/harness -update
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	snapshot := Snapshot(name, result)
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}

// RunWithGolden executes a scenario under the given run token and
// compares its trace against the golden file named after the scenario.
func RunWithGolden(t *testing.T, scn *scenario.Scenario, runToken string) error {
	t.Helper()

	result, err := Run(scn, runToken)
	if err != nil {
		return err
	}
	return AssertGolden(t, scn.Name, result)
}
