package commands

import (
	"errors"

	"github.com/manifoldco/promptui"
)

// confirmPrompt asks a yes/no question on the terminal. Answering no
// is not an error.
func confirmPrompt(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
