package ui

import "github.com/charmbracelet/huh"

// Confirm puts up a yes/no prompt with the action verb on the
// affirmative button.
func Confirm(title, description, action string) (bool, error) {
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative(action).
				Negative("Cancel").
				Value(&confirmed),
		),
	)

	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}
