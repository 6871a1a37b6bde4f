package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"golang.org/x/term"

	"github.com/tacogips/ignite/internal/app"
)

// Test seams.
var (
	askOne        = survey.AskOne
	isInteractive = func() bool {
		return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	}
)

// SurveyPrompter renders prompts on the terminal with survey.
type SurveyPrompter struct{}

// Interactive reports whether stdin and stdout are terminals.
func (SurveyPrompter) Interactive() bool {
	return isInteractive()
}

// Input asks for a line of text.
func (SurveyPrompter) Input(message, defaultValue string) (string, error) {
	if !isInteractive() {
		return "", app.ErrNonInteractive
	}

	var result string
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := askOne(prompt, &result); err != nil {
		return "", promptError(err)
	}
	return result, nil
}

// Select asks for one of options and returns its value. Hints are shown as
// option descriptions.
func (SurveyPrompter) Select(message string, options []app.Option, defaultValue string) (string, error) {
	if !isInteractive() {
		return "", app.ErrNonInteractive
	}
	if len(options) == 0 {
		return "", fmt.Errorf("no options to select from")
	}

	labels := make([]string, len(options))
	defaultIndex := 0
	for i, opt := range options {
		labels[i] = opt.Label
		if labels[i] == "" {
			labels[i] = opt.Value
		}
		if opt.Value == defaultValue {
			defaultIndex = i
		}
	}

	prompt := &survey.Select{
		Message: message,
		Options: labels,
		Default: labels[defaultIndex],
		Description: func(_ string, index int) string {
			return options[index].Hint
		},
	}

	var index int
	if err := askOne(prompt, &index); err != nil {
		return "", promptError(err)
	}
	if index < 0 || index >= len(options) {
		return "", fmt.Errorf("selection %d out of range", index)
	}
	return options[index].Value, nil
}

// Confirm asks a yes/no question.
func (SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	if !isInteractive() {
		return false, app.ErrNonInteractive
	}

	var result bool
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := askOne(prompt, &result); err != nil {
		return false, promptError(err)
	}
	return result, nil
}

// promptError maps Ctrl-C and Ctrl-D to app.ErrPromptCancelled.
func promptError(err error) error {
	if errors.Is(err, terminal.InterruptErr) || errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", app.ErrPromptCancelled, err)
	}
	return err
}
