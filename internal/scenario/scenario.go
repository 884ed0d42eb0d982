// Package scenario defines and loads scripted simulation scenarios.
//
// A scenario fixes everything a deterministic run needs: the clock
// configuration (tick duration, epoch, seed) and the per-tick event
// script (which actor performs which action, and which earlier event,
// if any, it causally depends on). Scenarios are authored in CUE for
// production runs; the test harness also accepts YAML.
package scenario

import (
	"fmt"
	"time"

	"github.com/tmarek/socsim/internal/action"
	"github.com/tmarek/socsim/internal/vclock"
)

// Scenario is a complete scripted simulation.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name" json:"name"`

	// Description explains what this scenario models.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Clock is the clock configuration for the run.
	Clock ClockConfig `yaml:"clock,omitempty" json:"clock,omitempty"`

	// Ticks is the event script, one entry per simulated tick.
	// The driver advances the clock between entries.
	Ticks []Tick `yaml:"ticks" json:"ticks"`
}

// ClockConfig carries the clock construction parameters.
// Zero values fall back to the standard defaults (one-day ticks,
// 2024-01-01 epoch). The seed is taken as-is: seed 0 is a valid,
// distinct seed.
type ClockConfig struct {
	TickDuration int64  `yaml:"tick_duration,omitempty" json:"tickDuration,omitempty"`
	Seed         int64  `yaml:"seed,omitempty" json:"seed,omitempty"`
	Epoch        string `yaml:"epoch,omitempty" json:"epoch,omitempty"` // RFC 3339
}

// Tick scripts the events of one simulated tick.
type Tick struct {
	Events []EventSpec `yaml:"events" json:"events"`
}

// EventSpec scripts a single simulated event.
type EventSpec struct {
	// Label names this event so later events can reference it as a
	// causal parent. Optional for events nothing depends on; the
	// driver assigns a positional label when empty.
	Label string `yaml:"label,omitempty" json:"label,omitempty"`

	// Actor is the id of the agent performing the action.
	Actor int64 `yaml:"actor" json:"actor"`

	// Action is the action kind, from the closed action taxonomy.
	Action string `yaml:"action" json:"action"`

	// Parent is the label of an earlier event this one causally
	// depends on. Empty for independent events.
	Parent string `yaml:"parent,omitempty" json:"parent,omitempty"`
}

// NewClock constructs a vclock.Clock from the scenario's clock
// configuration. Zero-valued fields use the package defaults; the
// epoch string must be RFC 3339 when present.
func (c ClockConfig) NewClock() (*vclock.Clock, error) {
	opts := []vclock.Option{vclock.WithSeed(c.Seed)}
	if c.TickDuration != 0 {
		opts = append(opts, vclock.WithTickDuration(c.TickDuration))
	}
	if c.Epoch != "" {
		epoch, err := time.Parse(time.RFC3339, c.Epoch)
		if err != nil {
			return nil, fmt.Errorf("scenario: invalid epoch %q: %w", c.Epoch, err)
		}
		opts = append(opts, vclock.WithEpoch(epoch))
	}
	return vclock.New(opts...)
}

// Validate checks the scenario for structural errors: a missing name,
// a negative tick duration, unknown actions, duplicate labels, and
// parent references that do not point at an earlier event.
//
// Returns a *LoadError with code and path context on failure.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return &LoadError{Code: ErrCodeInvalid, Message: "scenario name is required"}
	}
	if s.Clock.TickDuration < 0 {
		return &LoadError{Code: ErrCodeInvalid, Message: fmt.Sprintf("tick duration must be positive, got %d", s.Clock.TickDuration)}
	}
	if s.Clock.Epoch != "" {
		if _, err := time.Parse(time.RFC3339, s.Clock.Epoch); err != nil {
			return &LoadError{Code: ErrCodeInvalid, Message: fmt.Sprintf("epoch %q is not RFC 3339: %v", s.Clock.Epoch, err)}
		}
	}

	seen := make(map[string]bool)
	for ti, tick := range s.Ticks {
		for ei, ev := range tick.Events {
			at := fmt.Sprintf("ticks[%d].events[%d]", ti, ei)
			if !action.Type(ev.Action).Valid() {
				return &LoadError{Code: ErrCodeInvalid, Message: fmt.Sprintf("%s: unknown action %q", at, ev.Action)}
			}
			if ev.Parent != "" && !seen[ev.Parent] {
				return &LoadError{Code: ErrCodeInvalid, Message: fmt.Sprintf("%s: parent %q does not reference an earlier event", at, ev.Parent)}
			}
			if ev.Label != "" {
				if seen[ev.Label] {
					return &LoadError{Code: ErrCodeInvalid, Message: fmt.Sprintf("%s: duplicate label %q", at, ev.Label)}
				}
				seen[ev.Label] = true
			}
		}
	}
	return nil
}
