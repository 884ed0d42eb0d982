package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"
)

// Error codes for scenario loading.
const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeNoFiles      = "NO_FILES"
	ErrCodeLoadFailed   = "LOAD_FAILED"
	ErrCodeBuildFailed  = "BUILD_FAILED"
	ErrCodeDecodeFailed = "DECODE_FAILED"
	ErrCodeInvalid      = "INVALID_SCENARIO"
)

// LoadError represents an error that occurred during scenario loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadDir loads and validates the scenario defined by the CUE files in
// a directory. The files must define a top-level `scenario` struct.
//
// All CUE files in the directory are unified before decoding, so a
// scenario may be split across files (e.g. clock config separate from
// the event script).
func LoadDir(dir string) (*Scenario, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("scenario directory not found: %s", dir)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing scenario directory: %v", err)}
	}
	if !info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	cueFiles, err := findCUEFiles(dir)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(cueFiles) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	ctx := cuecontext.New()
	// Package "_" loads files without a package clause; cue/load before
	// v0.10 excludes them from "." otherwise.
	cfg := &load.Config{Dir: dir, Package: "_"}
	instances := load.Instances([]string{"."}, cfg)
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}

	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}
	}

	scnVal := value.LookupPath(cue.ParsePath("scenario"))
	if !scnVal.Exists() {
		return nil, &LoadError{Code: ErrCodeDecodeFailed, Message: "no top-level 'scenario' field found", Pos: value.Pos()}
	}

	var scn Scenario
	if err := scnVal.Decode(&scn); err != nil {
		return nil, &LoadError{Code: ErrCodeDecodeFailed, Message: fmt.Sprintf("decoding scenario: %v", err), Pos: scnVal.Pos()}
	}

	if err := scn.Validate(); err != nil {
		return nil, err
	}
	return &scn, nil
}

// LoadYAML parses and validates a scenario from YAML bytes.
// Used by the test harness; production scenarios are CUE.
func LoadYAML(data []byte) (*Scenario, error) {
	var scn Scenario
	if err := yaml.Unmarshal(data, &scn); err != nil {
		return nil, &LoadError{Code: ErrCodeDecodeFailed, Message: fmt.Sprintf("decoding YAML scenario: %v", err)}
	}
	if err := scn.Validate(); err != nil {
		return nil, err
	}
	return &scn, nil
}

// LoadYAMLFile parses and validates a scenario from a YAML file.
func LoadYAMLFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading scenario file: %v", err)}
	}
	return LoadYAML(data)
}

// findCUEFiles returns the .cue files directly inside dir.
func findCUEFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".cue") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}
