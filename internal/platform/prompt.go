// Package platform holds the collaborators that talk to the person at the
// keyboard: yes/no and text prompts, folder selection and window sizing.
package platform

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	apperrors "github.com/olivier-w/crossroads/internal/errors"
)

// Prompter asks blocking questions.
type Prompter interface {
	Confirm(ctx context.Context, question string) (bool, error)
	Input(ctx context.Context, title string) (string, error)
}

// Answer is a Prompter with fixed replies, for --yes flags and for callers
// that have already asked the question themselves.
type Answer struct {
	Yes  bool
	Text string
}

// Confirm implements Prompter.
func (a Answer) Confirm(context.Context, string) (bool, error) {
	return a.Yes, nil
}

// Input implements Prompter.
func (a Answer) Input(context.Context, string) (string, error) {
	return a.Text, nil
}

// Terminal prompts on the controlling terminal using huh forms.
type Terminal struct {
	Accessible bool
}

// Confirm implements Prompter.
func (t Terminal) Confirm(ctx context.Context, question string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithAccessible(t.Accessible)

	if err := form.RunWithContext(ctx); err != nil {
		return false, promptErr(err)
	}
	return ok, nil
}

// Input implements Prompter.
func (t Terminal) Input(ctx context.Context, title string) (string, error) {
	return t.input(ctx, title, nil)
}

func (t Terminal) input(ctx context.Context, title string, validate func(string) error) (string, error) {
	var value string
	field := huh.NewInput().Title(title).Value(&value)
	if validate != nil {
		field = field.Validate(validate)
	}
	form := huh.NewForm(huh.NewGroup(field)).WithAccessible(t.Accessible)
	if err := form.RunWithContext(ctx); err != nil {
		return "", promptErr(err)
	}
	return value, nil
}

func promptErr(err error) error {
	if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
		return apperrors.ErrCancelled
	}
	return fmt.Errorf("prompt failed: %w", err)
}
