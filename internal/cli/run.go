package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tmarek/socsim/internal/scenario"
	"github.com/tmarek/socsim/internal/sim"
	"github.com/tmarek/socsim/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database string

	// Tokens allows overriding the run token generator (for testing).
	// If nil, UUIDv7 tokens are used.
	Tokens sim.TokenGenerator
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenario-dir>",
		Short: "Execute a scenario and record its event log",
		Long: `Execute a CUE scenario on a fresh deterministic clock.

The scenario directory must contain CUE files defining a top-level
'scenario' struct. Every simulated event is stamped with a virtual
timestamp and written to the SQLite event log under a new run token.

Example:
  socsim run --db ./socsim.db ./scenarios/launch-day
  socsim run --db /tmp/test.db ./scenarios/smoke --verbose`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite event log (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

// runSummary is the run command's output payload.
type runSummary struct {
	Scenario string `json:"scenario"`
	RunToken string `json:"run_token"`
	Events   int    `json:"events"`
	Ticks    int    `json:"ticks"`
}

func (s runSummary) String() string {
	return "run " + s.RunToken + ": " + s.Scenario
}

func runScenario(opts *RunOptions, scenarioDir string, cmd *cobra.Command) error {
	configureLogging(opts.RootOptions)

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	slog.Info("loading scenario", "dir", scenarioDir)
	scn, err := scenario.LoadDir(scenarioDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load scenario", err)
	}
	formatter.VerboseLog("Loaded scenario %q (%d ticks)", scn.Name, len(scn.Ticks))

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open event log", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing event log", "error", closeErr)
		}
	}()

	// Use the command's context if available (set by ExecuteContext).
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	driver := sim.New(st, opts.Tokens)
	result, err := driver.Run(ctx, scn)
	if err != nil {
		return WrapExitError(ExitFailure, "run failed", err)
	}

	return formatter.Success(runSummary{
		Scenario: scn.Name,
		RunToken: result.RunToken,
		Events:   len(result.Events),
		Ticks:    len(scn.Ticks),
	})
}

// configureLogging sets the default slog handler from the root flags.
func configureLogging(opts *RootOptions) {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
