// Package azcli wraps the Azure CLI behind a narrow command-family interface
// so the pipeline state machines stay testable; the real external-process
// adapter is swapped in only at the process boundary.
package azcli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
)

// Result captures one management-tool invocation: the exit status and the
// tool's output, verbatim.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Combined returns stdout and stderr concatenated, for diagnostics.
func (r Result) Combined() string {
	return r.Stdout + r.Stderr
}

// OK reports a zero exit.
func (r Result) OK() bool {
	return r.ExitCode == 0
}

// Runner issues single synchronous invocations of the management tool. It
// never retries and keeps no state between calls.
type Runner struct {
	Binary string
	Quiet  bool // suppress the progress spinner
}

// NewRunner returns a runner for the az binary.
func NewRunner() *Runner {
	return &Runner{Binary: "az"}
}

// Run invokes the tool once and waits for it. A non-zero exit is reported in
// the Result, never swallowed; the error return covers only a failure to
// spawn the process at all. label, when non-empty, is shown on a spinner
// while the call is in flight.
func (r *Runner) Run(label string, args ...string) (Result, error) {
	cmd := exec.Command(r.Binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	stop := r.startSpinner(label)
	err := cmd.Run()
	stop()

	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		res.ExitCode = -1
		return res, fmt.Errorf("invoke %s: %w", r.Binary, err)
	}
	return res, nil
}

// RunJSON invokes the tool with JSON output and decodes stdout into v. When
// decoding fails the Result still carries the raw text unmodified so the
// caller can surface the real diagnostic.
func (r *Runner) RunJSON(v interface{}, label string, args ...string) (Result, error) {
	res, err := r.Run(label, append(args, "-o", "json")...)
	if err != nil || !res.OK() {
		return res, err
	}
	if err := json.Unmarshal([]byte(res.Stdout), v); err != nil {
		return res, fmt.Errorf("parse %s output: %w", r.Binary, err)
	}
	return res, nil
}

// RunInteractive attaches the terminal so the tool can drive its own prompts
// (device login). Returns the exit code.
func (r *Runner) RunInteractive(args ...string) (int, error) {
	cmd := exec.Command(r.Binary, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("invoke %s: %w", r.Binary, err)
	}
	return 0, nil
}

func (r *Runner) startSpinner(label string) func() {
	if label == "" || r.Quiet || !isatty.IsTerminal(os.Stderr.Fd()) {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + label
	s.Start()
	return s.Stop
}
