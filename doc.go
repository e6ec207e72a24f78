// Package tether provides push-based binding primitives for wiring live input
// values to output sinks.
//
// The core abstractions are Stream, a lazy sequence of values delivered to
// subscribers, and Subscription, the disposable handle that keeps a
// subscriber attached.
//
// # Streams
//
// Streams are cold: every call to Subscribe starts a fresh chain of upstream
// subscriptions. A ValueSource therefore replays its seed to every subscriber,
// and CombineLatest keeps separate slot state for every subscriber.
//
//	Source × N → CombineLatest → Map → Bind → Sink
//
// # Disposal
//
// Subscriptions move from active to disposed exactly once. Disposing twice is
// an observable no-op: Dispose reports whether the handle was already disposed.
// A Group disposes a fixed set of subscriptions as one idempotent action.
//
// # Example
//
//	username := tether.NewValueSource("username")
//	email := tether.NewValueSource("email")
//	password := tether.NewValueSource("password")
//	confirmation := tether.NewValueSource("password_confirmation")
//
//	pipeline := tether.NewPipeline(
//	    tether.Inputs{
//	        Username:             username,
//	        Email:                email,
//	        Password:             password,
//	        PasswordConfirmation: confirmation,
//	    },
//	    tether.Outputs{
//	        Message:       func(msg string) { label.SetText(msg) },
//	        SubmitEnabled: func(ok bool) { button.SetEnabled(ok) },
//	    },
//	)
//
//	if err := pipeline.Start(ctx); err != nil {
//	    return err
//	}
//
//	username.SetText("alice") // label and button update before SetText returns
//	pipeline.Unbind(ctx)      // later presses report OutcomeAlreadyUnbound
package tether
