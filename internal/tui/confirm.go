package tui

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"
)

// ErrAborted is returned when the user cancels a form.
var ErrAborted = errors.New("aborted")

func runForm(accessible bool, groups ...*huh.Group) error {
	err := huh.NewForm(groups...).WithAccessible(accessible).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}

// ConfirmLogout asks before a stored gateway token is removed.
func ConfirmLogout(gateway string) (bool, error) {
	confirm := false
	field := huh.NewConfirm().
		Title("Remove the stored token for " + gateway + "?").
		Description("Panels will be fetched without an Authorization header.").
		Affirmative("Yes, remove").
		Negative("Cancel").
		Value(&confirm)

	if err := runForm(os.Getenv("ACCESSIBLE") != "", huh.NewGroup(field)); err != nil {
		if errors.Is(err, ErrAborted) {
			return false, nil
		}
		return false, err
	}
	return confirm, nil
}
