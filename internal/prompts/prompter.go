// Package prompts holds the interactive surface of both pipelines. The
// Prompter interface keeps the state machines scriptable in tests; Console is
// the real terminal implementation.
package prompts

import (
	"github.com/AlecAivazis/survey/v2"
)

// Prompter presents choices and questions to the operator. Implementations
// never abort the pipeline: an interrupted or unanswerable prompt yields the
// zero value and the caller falls back to its documented default.
type Prompter interface {
	// Input reads a single line of free text.
	Input(message string) string
	// Confirm asks a yes/no question.
	Confirm(message string, def bool) bool
}

// Console prompts on the real terminal.
type Console struct{}

func (Console) Input(message string) string {
	var v string
	_ = survey.AskOne(&survey.Input{Message: message}, &v)
	return v
}

func (Console) Confirm(message string, def bool) bool {
	v := def
	_ = survey.AskOne(&survey.Confirm{Message: message, Default: def}, &v)
	return v
}
