package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testScenarioCUE = `
scenario: {
	name: "cli-smoke"
	clock: {
		tickDuration: 86400
		seed:         42
	}
	ticks: [
		{events: [
			{label: "p1", actor: 1, action: "create_post"},
			{actor: 2, action: "create_comment", parent: "p1"},
		]},
		{events: [
			{actor: 1, action: "repost", parent: "p1"},
		]},
	]
}
`

func writeScenarioDir(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scenario.cue"), []byte(src), 0o644))
	return dir
}

// execute runs the CLI with args and returns stdout and the error.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// decodeResponse parses a JSON-format CLI response.
func decodeResponse(t *testing.T, out string) CLIResponse {
	t.Helper()
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	return resp
}

func TestRootCommand_RejectsInvalidFormat(t *testing.T) {
	_, err := execute(t, "--format", "xml", "validate", "nowhere")
	assert.Error(t, err)
}

func TestValidateCommand_ValidScenario(t *testing.T) {
	dir := writeScenarioDir(t, testScenarioCUE)

	out, err := execute(t, "validate", dir, "--format", "json")
	require.NoError(t, err)

	resp := decodeResponse(t, out)
	assert.Equal(t, "ok", resp.Status)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "cli-smoke", data["scenario"])
	assert.Equal(t, float64(2), data["ticks"])
	assert.Equal(t, float64(3), data["events"])
}

func TestValidateCommand_InvalidScenario(t *testing.T) {
	dir := writeScenarioDir(t, `
scenario: {
	name: "bad"
	ticks: [{events: [{actor: 1, action: "teleport"}]}]
}
`)

	out, err := execute(t, "validate", dir, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	resp := decodeResponse(t, out)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_SCENARIO", resp.Error.Code)
}

func TestValidateCommand_MissingDir(t *testing.T) {
	_, err := execute(t, "validate", filepath.Join(t.TempDir(), "nope"), "--format", "json")
	require.Error(t, err)
}

func TestRunReplayTrace_EndToEnd(t *testing.T) {
	dir := writeScenarioDir(t, testScenarioCUE)
	db := filepath.Join(t.TempDir(), "socsim.db")

	// Run the scenario and capture the run token.
	out, err := execute(t, "run", dir, "--db", db, "--format", "json")
	require.NoError(t, err)
	resp := decodeResponse(t, out)
	require.Equal(t, "ok", resp.Status)
	data := resp.Data.(map[string]interface{})
	token := data["run_token"].(string)
	require.NotEmpty(t, token)
	assert.Equal(t, float64(3), data["events"])

	// Replay must be deterministic.
	out, err = execute(t, "replay", dir, "--db", db, "--run", token, "--format", "json")
	require.NoError(t, err)
	resp = decodeResponse(t, out)
	replay := resp.Data.(map[string]interface{})
	assert.Equal(t, true, replay["deterministic"])
	assert.Equal(t, float64(-1), replay["first_divergence"])

	// Trace without --run lists the recorded run.
	out, err = execute(t, "trace", "--db", db, "--format", "json")
	require.NoError(t, err)
	resp = decodeResponse(t, out)
	listing := resp.Data.(map[string]interface{})
	runs := listing["runs"].([]interface{})
	require.Len(t, runs, 1)
	assert.Equal(t, token, runs[0])

	// Trace with --run prints the events in seq order.
	out, err = execute(t, "trace", "--db", db, "--run", token, "--format", "json")
	require.NoError(t, err)
	resp = decodeResponse(t, out)
	events := resp.Data.(map[string]interface{})["events"].([]interface{})
	require.Len(t, events, 3)
	first := events[0].(map[string]interface{})
	assert.Equal(t, float64(1), first["seq"])
	assert.Equal(t, "create_post", first["action"])
}

func TestReplayCommand_DivergesAfterScenarioEdit(t *testing.T) {
	dir := writeScenarioDir(t, testScenarioCUE)
	db := filepath.Join(t.TempDir(), "socsim.db")

	out, err := execute(t, "run", dir, "--db", db, "--format", "json")
	require.NoError(t, err)
	token := decodeResponse(t, out).Data.(map[string]interface{})["run_token"].(string)

	// Change the seed in place: same scenario name, different timestamps.
	edited := writeScenarioDir(t, `
scenario: {
	name: "cli-smoke"
	clock: {
		tickDuration: 86400
		seed:         43
	}
	ticks: [
		{events: [
			{label: "p1", actor: 1, action: "create_post"},
			{actor: 2, action: "create_comment", parent: "p1"},
		]},
		{events: [
			{actor: 1, action: "repost", parent: "p1"},
		]},
	]
}
`)

	out, err = execute(t, "replay", edited, "--db", db, "--run", token, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	replay := decodeResponse(t, out).Data.(map[string]interface{})
	assert.Equal(t, false, replay["deterministic"])
}

func TestTraceCommand_UnknownRun(t *testing.T) {
	db := filepath.Join(t.TempDir(), "socsim.db")

	// Create an empty event log first.
	dir := writeScenarioDir(t, testScenarioCUE)
	_, err := execute(t, "run", dir, "--db", db)
	require.NoError(t, err)

	_, err = execute(t, "trace", "--db", db, "--run", "no-such-run")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
