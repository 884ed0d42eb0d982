package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tmarek/socsim/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	RunToken string
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Print a recorded run's event log",
		Long: `Print the events of a recorded run in seq order, with virtual
timestamps and their calendar rendering. Without --run, lists the
recorded runs instead.

Example:
  socsim trace --db ./socsim.db
  socsim trace --db ./socsim.db --run 0190b5a3-... --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite event log (required)")
	cmd.Flags().StringVar(&opts.RunToken, "run", "", "run token to print (omit to list runs)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

// traceEvent is one event row in the trace output.
type traceEvent struct {
	Seq    int64  `json:"seq"`
	Tick   int64  `json:"tick"`
	Label  string `json:"label"`
	Actor  int64  `json:"actor"`
	Action string `json:"action"`
	Parent *int64 `json:"parent,omitempty"`
	Time   int64  `json:"time"`
	ISO    string `json:"iso"`
}

// traceListing is the trace command's output payload.
type traceListing struct {
	RunToken string       `json:"run_token,omitempty"`
	Runs     []string     `json:"runs,omitempty"`
	Events   []traceEvent `json:"events,omitempty"`
}

func (l traceListing) String() string {
	var b strings.Builder
	if l.RunToken == "" {
		fmt.Fprintf(&b, "%d recorded run(s)\n", len(l.Runs))
		for _, token := range l.Runs {
			fmt.Fprintf(&b, "  %s\n", token)
		}
		return strings.TrimRight(b.String(), "\n")
	}

	w := tabwriter.NewWriter(&b, 2, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEQ\tTICK\tACTOR\tACTION\tTIME\tISO")
	for _, ev := range l.Events {
		fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%d\t%s\n",
			ev.Seq, ev.Tick, ev.Actor, ev.Action, ev.Time, ev.ISO)
	}
	w.Flush()
	return strings.TrimRight(b.String(), "\n")
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	configureLogging(opts.RootOptions)

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
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

	if opts.RunToken == "" {
		runs, err := st.Runs(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list runs", err)
		}
		tokens := make([]string, len(runs))
		for i, run := range runs {
			tokens[i] = run.Token
		}
		return formatter.Success(traceListing{Runs: tokens})
	}

	events, err := st.ReadEvents(ctx, opts.RunToken)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read events", err)
	}
	if len(events) == 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("no events recorded for run %s", opts.RunToken))
	}

	rows := make([]traceEvent, len(events))
	for i, ev := range events {
		rows[i] = traceEvent{
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
	return formatter.Success(traceListing{RunToken: opts.RunToken, Events: rows})
}
