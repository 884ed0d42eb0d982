package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tmarek/socsim/internal/scenario"
	"github.com/tmarek/socsim/internal/sim"
	"github.com/tmarek/socsim/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	RunToken string
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <scenario-dir>",
		Short: "Verify a recorded run replays deterministically",
		Long: `Re-execute a scenario on a fresh clock and compare the produced
timestamps against a recorded run, event by event.

Exits 0 when the replay is deterministic and 1 on divergence. A
divergence means the scenario files changed since the run was
recorded, or determinism was broken.

Example:
  socsim replay --db ./socsim.db --run 0190b5a3-... ./scenarios/smoke`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite event log (required)")
	cmd.Flags().StringVar(&opts.RunToken, "run", "", "run token to verify (required)")
	_ = cmd.MarkFlagRequired("db")
	_ = cmd.MarkFlagRequired("run")

	return cmd
}

// replaySummary is the replay command's output payload.
type replaySummary struct {
	RunToken        string `json:"run_token"`
	Deterministic   bool   `json:"deterministic"`
	Events          int    `json:"events"`
	FirstDivergence int    `json:"first_divergence"` // -1 when deterministic
}

func (s replaySummary) String() string {
	if s.Deterministic {
		return fmt.Sprintf("run %s: deterministic (%d events)", s.RunToken, s.Events)
	}
	return fmt.Sprintf("run %s: DIVERGED at event %d", s.RunToken, s.FirstDivergence)
}

func runReplay(opts *ReplayOptions, scenarioDir string, cmd *cobra.Command) error {
	configureLogging(opts.RootOptions)

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	scn, err := scenario.LoadDir(scenarioDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load scenario", err)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open event log", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing event log", "error", closeErr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	driver := sim.New(st, nil)
	report, err := driver.Replay(ctx, scn, opts.RunToken)
	if err != nil {
		return WrapExitError(ExitCommandError, "replay failed", err)
	}

	summary := replaySummary{
		RunToken:        report.RunToken,
		Deterministic:   report.Deterministic,
		Events:          len(report.Recorded),
		FirstDivergence: report.FirstDivergence,
	}
	if err := formatter.Success(summary); err != nil {
		return err
	}
	if !report.Deterministic {
		return NewExitError(ExitFailure, "replay diverged from recorded run")
	}
	return nil
}
