package models

import (
	"errors"
	"fmt"
)

// Exit codes per failure class. Success and user cancellation both exit 0.
const (
	ExitOK          = 0
	ExitEnvironment = 2
	ExitValidation  = 3
	ExitExecution   = 4
	ExitPartial     = 5
)

// ErrCancelled marks a user-driven cancellation at a confirmation gate.
// Cancellation is not a failure; callers translate it to exit code 0.
var ErrCancelled = errors.New("cancelled by user")

// EnvironmentError represents a missing or unusable base tool (the Azure CLI
// itself). Fatal; the message carries actionable install guidance.
type EnvironmentError struct {
	Tool   string
	Advice string
	Cause  error
}

func (e *EnvironmentError) Error() string {
	if e.Advice != "" {
		return fmt.Sprintf("%s is not usable: %v\n%s", e.Tool, e.Cause, e.Advice)
	}
	return fmt.Sprintf("%s is not usable: %v", e.Tool, e.Cause)
}

func (e *EnvironmentError) Unwrap() error {
	return e.Cause
}

// ValidationError represents a template that failed to compile or a lint run
// that reported an error-severity diagnostic. Fatal before any cloud mutation;
// Diagnostics carries the tool output verbatim.
type ValidationError struct {
	TemplatePath string
	Diagnostics  string
	Cause        error
}

func (e *ValidationError) Error() string {
	if e.Diagnostics != "" {
		return fmt.Sprintf("template validation failed for '%s': %v\n%s",
			e.TemplatePath, e.Cause, e.Diagnostics)
	}
	return fmt.Sprintf("template validation failed for '%s': %v", e.TemplatePath, e.Cause)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// ExecutionError represents a non-zero exit from a mutating platform call.
// Fatal, never retried; Diagnostics is the raw platform error text.
type ExecutionError struct {
	Operation   string // "group create", "deployment create", ...
	Diagnostics string
	Cause       error
}

func (e *ExecutionError) Error() string {
	if e.Diagnostics != "" {
		return fmt.Sprintf("%s failed: %v\n%s", e.Operation, e.Cause, e.Diagnostics)
	}
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Cause)
}

func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// ExitCode maps a pipeline error to the process exit code.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, ErrCancelled) {
		return ExitOK
	}
	var envErr *EnvironmentError
	if errors.As(err, &envErr) {
		return ExitEnvironment
	}
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return ExitValidation
	}
	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		return ExitExecution
	}
	return 1
}
