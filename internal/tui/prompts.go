package tui

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
)

// ErrInteractiveDisabled is returned when interactive prompts are disabled via COMMITGEN_TEST_NO_INTERACTIVE
var ErrInteractiveDisabled = fmt.Errorf("interactive prompts are disabled (COMMITGEN_TEST_NO_INTERACTIVE is set)")

// checkInteractiveAllowed returns an error if interactive mode is disabled for testing
func checkInteractiveAllowed() error {
	if os.Getenv("COMMITGEN_TEST_NO_INTERACTIVE") != "" {
		return ErrInteractiveDisabled
	}
	return nil
}

// PromptSelect asks the user to pick one of options and returns the chosen
// index.
func PromptSelect(message string, options []string) (int, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return 0, err
	}
	if len(options) == 0 {
		return 0, fmt.Errorf("no options provided")
	}

	var selected string
	prompt := &survey.Select{
		Message: message,
		Options: options,
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return 0, fmt.Errorf("canceled")
	}

	for i, option := range options {
		if option == selected {
			return i, nil
		}
	}
	return 0, fmt.Errorf("canceled")
}

// PromptInput asks the user for a line of text with an editable default.
func PromptInput(message, defaultValue string) (string, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return "", err
	}

	var value string
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &value); err != nil {
		return "", fmt.Errorf("canceled")
	}
	return value, nil
}

// PromptConfirm asks the user a yes/no question.
func PromptConfirm(message string, defaultValue bool) (bool, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return false, err
	}

	var confirmed bool
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &confirmed); err != nil {
		return false, fmt.Errorf("canceled")
	}
	return confirmed, nil
}
