package tether

import (
	"errors"
	"fmt"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// MinPasswordLength is the minimum number of characters a password needs
// before the form can be submitted.
const MinPasswordLength = 4

// Validation messages, in precedence order.
var (
	MessageUsernameNotSet   = "Username is not set."
	MessageEmailNotSet      = "Email is not set."
	MessagePasswordTooShort = fmt.Sprintf("Password requires at least %d characters.", MinPasswordLength)
	MessagePasswordMismatch = "Password is not same."
)

// Errors returned by FormState.Validate. Each carries the matching
// validation message.
var (
	ErrUsernameNotSet   = errors.New(MessageUsernameNotSet)
	ErrEmailNotSet      = errors.New(MessageEmailNotSet)
	ErrPasswordTooShort = errors.New(MessagePasswordTooShort)
	ErrPasswordMismatch = errors.New(MessagePasswordMismatch)
)

// FormState is the combined latest value of the four sign-up fields.
type FormState struct {
	Username             string
	Email                string
	Password             string
	PasswordConfirmation string
}

// Pristine reports whether every field is empty.
func (f FormState) Pristine() bool {
	return f.Username == "" && f.Email == "" && f.Password == "" && f.PasswordConfirmation == ""
}

// Validate returns the first failing rule as an error, or nil when the form
// can be submitted. A pristine form fails with ErrUsernameNotSet.
func (f FormState) Validate() error {
	switch {
	case f.Username == "":
		return ErrUsernameNotSet
	case f.Email == "":
		return ErrEmailNotSet
	case CharacterCount(f.Password) < MinPasswordLength:
		return ErrPasswordTooShort
	case !PasswordsMatch(f.Password, f.PasswordConfirmation):
		return ErrPasswordMismatch
	default:
		return nil
	}
}

// SubmitEnabled reports whether the form can be submitted.
func SubmitEnabled(f FormState) bool {
	return f.Username != "" &&
		f.Email != "" &&
		CharacterCount(f.Password) >= MinPasswordLength &&
		PasswordsMatch(f.Password, f.PasswordConfirmation)
}

// PasswordsMatch reports whether a password and its confirmation are the
// same text. Canonically equivalent spellings match.
func PasswordsMatch(password, confirmation string) bool {
	return norm.NFC.String(password) == norm.NFC.String(confirmation)
}

// ValidationMessage returns the message to display for f. The first matching
// rule wins. An untouched form shows no message, even though the username is
// missing.
func ValidationMessage(f FormState) string {
	if f.Pristine() {
		return ""
	}
	if err := f.Validate(); err != nil {
		return err.Error()
	}
	return ""
}

// CharacterCount returns the number of user-perceived characters in s.
func CharacterCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}
