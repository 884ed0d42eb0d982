package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/tmarek/socsim/internal/scenario"
)

// ValidationResult holds the validate command's output payload.
type ValidationResult struct {
	Valid    bool   `json:"valid"`
	Scenario string `json:"scenario,omitempty"`
	Ticks    int    `json:"ticks,omitempty"`
	Events   int    `json:"events,omitempty"`
}

func (r ValidationResult) String() string {
	if r.Valid {
		return "valid: " + r.Scenario
	}
	return "invalid"
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenario-dir>",
		Short: "Validate a scenario without running it",
		Long: `Load and validate a CUE scenario: clock configuration, action
kinds, labels, and parent references. Nothing is executed and no
database is touched. Faster than a run for authoring feedback.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, scenarioDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	scn, err := scenario.LoadDir(scenarioDir)
	if err != nil {
		var loadErr *scenario.LoadError
		if errors.As(err, &loadErr) {
			if outErr := formatter.Error(loadErr.Code, loadErr.Message, nil); outErr != nil {
				return outErr
			}
			return NewExitError(ExitFailure, "scenario is invalid")
		}
		return WrapExitError(ExitCommandError, "failed to load scenario", err)
	}

	events := 0
	for _, tick := range scn.Ticks {
		events += len(tick.Events)
	}
	formatter.VerboseLog("Scenario %q: %d tick(s), %d event(s)", scn.Name, len(scn.Ticks), events)

	return formatter.Success(ValidationResult{
		Valid:    true,
		Scenario: scn.Name,
		Ticks:    len(scn.Ticks),
		Events:   events,
	})
}
