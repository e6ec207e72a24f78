package tether

import "github.com/zoobzio/capitan"

// Field keys for tether events.
var (
	// KeyState is the current state of the Pipeline.
	KeyState = capitan.NewStringKey("state")

	// KeyOldState is the previous state before a transition.
	KeyOldState = capitan.NewStringKey("old_state")

	// KeyNewState is the new state after a transition.
	KeyNewState = capitan.NewStringKey("new_state")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeySource is the name of the ValueSource involved.
	KeySource = capitan.NewStringKey("source")

	// KeyMembers is the number of subscriptions in a group.
	KeyMembers = capitan.NewIntKey("members")

	// KeyUsername is the username of a combined tuple.
	KeyUsername = capitan.NewStringKey("username")

	// KeyEmail is the email of a combined tuple.
	KeyEmail = capitan.NewStringKey("email")

	// KeyPasswordLength is the character count of the password.
	KeyPasswordLength = capitan.NewIntKey("password_length")

	// KeyConfirmationLength is the character count of the password confirmation.
	KeyConfirmationLength = capitan.NewIntKey("confirmation_length")

	// KeyMessage is the derived validation message.
	KeyMessage = capitan.NewStringKey("message")

	// KeyDuration is how long a Pipeline was alive before it closed.
	KeyDuration = capitan.NewDurationKey("duration")
)
