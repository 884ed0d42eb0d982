package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Run describes one recorded simulation run: the token identifying it
// and the clock configuration needed to replay it deterministically.
type Run struct {
	Token        string
	Scenario     string
	Seed         int64
	TickDuration int64
	EpochISO     string
}

// Event is one recorded simulated event.
type Event struct {
	RunToken    string
	Seq         int64
	Tick        int64
	Label       string
	Actor       int64
	Action      string
	ParentTime  *int64 // nil for independent events
	VirtualTime int64
	ISOTime     string
}

// WriteRun inserts a run record.
// Uses ON CONFLICT(token) DO NOTHING for idempotency - re-recording
// the same run token is silently ignored.
func (s *Store) WriteRun(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (token, scenario, seed, tick_duration, epoch_iso)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(token) DO NOTHING
	`,
		run.Token,
		run.Scenario,
		run.Seed,
		run.TickDuration,
		run.EpochISO,
	)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}

// WriteEvent inserts an event record.
// Idempotent on (run_token, seq): a duplicate write of the same event
// is silently ignored, so a crashed run can be re-driven from the top
// without corrupting the log. Other constraint violations (missing
// run, NOT NULL) still return errors.
func (s *Store) WriteEvent(ctx context.Context, ev Event) error {
	var parent sql.NullInt64
	if ev.ParentTime != nil {
		parent = sql.NullInt64{Int64: *ev.ParentTime, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events
		(run_token, seq, tick, label, actor, action, parent_time, virtual_time, iso_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_token, seq) DO NOTHING
	`,
		ev.RunToken,
		ev.Seq,
		ev.Tick,
		ev.Label,
		ev.Actor,
		ev.Action,
		parent,
		ev.VirtualTime,
		ev.ISOTime,
	)
	if err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}
