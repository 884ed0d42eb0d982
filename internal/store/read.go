package store

import (
	"context"
	"database/sql"
	"fmt"
)

// ReadRun returns the run record for a token.
// Returns sql.ErrNoRows (wrapped) if the run does not exist.
func (s *Store) ReadRun(ctx context.Context, token string) (Run, error) {
	var run Run
	err := s.db.QueryRowContext(ctx, `
		SELECT token, scenario, seed, tick_duration, epoch_iso
		FROM runs
		WHERE token = ?
	`, token).Scan(&run.Token, &run.Scenario, &run.Seed, &run.TickDuration, &run.EpochISO)
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", token, err)
	}
	return run, nil
}

// Runs returns all recorded runs, ordered by token for determinism.
// Returns an empty slice (not nil) if no runs exist.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT token, scenario, seed, tick_duration, epoch_iso
		FROM runs
		ORDER BY token ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.Token, &run.Scenario, &run.Seed, &run.TickDuration, &run.EpochISO); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadEvents returns all events for a run in deterministic order:
// ORDER BY seq ASC. Returns an empty slice (not nil) if the run has
// no events.
func (s *Store) ReadEvents(ctx context.Context, runToken string) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_token, seq, tick, label, actor, action, parent_time, virtual_time, iso_time
		FROM events
		WHERE run_token = ?
		ORDER BY seq ASC
	`, runToken)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

// ReadEventTimes returns just the virtual timestamps for a run, in
// seq order. This is the sequence replay verification compares.
func (s *Store) ReadEventTimes(ctx context.Context, runToken string) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT virtual_time
		FROM events
		WHERE run_token = ?
		ORDER BY seq ASC
	`, runToken)
	if err != nil {
		return nil, fmt.Errorf("query event times: %w", err)
	}
	defer rows.Close()

	times := []int64{}
	for rows.Next() {
		var v int64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan event time: %w", err)
		}
		times = append(times, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event times: %w", err)
	}
	return times, nil
}

func scanEvent(rows *sql.Rows) (Event, error) {
	var ev Event
	var parent sql.NullInt64
	if err := rows.Scan(
		&ev.RunToken, &ev.Seq, &ev.Tick, &ev.Label, &ev.Actor,
		&ev.Action, &parent, &ev.VirtualTime, &ev.ISOTime,
	); err != nil {
		return Event{}, fmt.Errorf("scan event: %w", err)
	}
	if parent.Valid {
		p := parent.Int64
		ev.ParentTime = &p
	}
	return ev, nil
}
