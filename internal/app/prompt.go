package app

import "errors"

// ErrNonInteractive is returned by a Prompter that cannot ask the operator,
// for example when stdin is not a terminal.
var ErrNonInteractive = errors.New("input required but no interactive terminal is available")

// Option is one choice of a select prompt.
type Option struct {
	Label string
	Value string
	Hint  string
}

// Prompter renders the interactive prompts. Implementations return an error
// wrapping ErrPromptCancelled when the operator interrupts input.
type Prompter interface {
	Input(message, defaultValue string) (string, error)
	Select(message string, options []Option, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
}

// Reporter receives operator-facing progress messages.
type Reporter interface {
	Info(msg string)
	Progress(msg string)
	Success(msg string)
	Warning(msg string)
}

// InteractivePrompter is implemented by prompters that can tell upfront
// whether an operator is available to answer.
type InteractivePrompter interface {
	Interactive() bool
}

type nonInteractivePrompter struct{}

func (nonInteractivePrompter) Interactive() bool { return false }

func (nonInteractivePrompter) Input(string, string) (string, error) {
	return "", ErrNonInteractive
}

func (nonInteractivePrompter) Select(string, []Option, string) (string, error) {
	return "", ErrNonInteractive
}

func (nonInteractivePrompter) Confirm(string, bool) (bool, error) {
	return false, ErrNonInteractive
}

type nopReporter struct{}

func (nopReporter) Info(string)     {}
func (nopReporter) Progress(string) {}
func (nopReporter) Success(string)  {}
func (nopReporter) Warning(string)  {}
