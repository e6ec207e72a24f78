package tether

import "github.com/zoobzio/capitan"

// Pipeline lifecycle signals.
var (
	// PipelineStarted is emitted when a Pipeline binds its outputs.
	PipelineStarted = capitan.NewSignal(
		"tether.pipeline.started",
		"Pipeline bindings created",
	)

	// PipelineClosed is emitted when the owning scope of a Pipeline ends.
	PipelineClosed = capitan.NewSignal(
		"tether.pipeline.closed",
		"Pipeline scope torn down",
	)

	// PipelineStateChanged is emitted when a Pipeline transitions between states.
	PipelineStateChanged = capitan.NewSignal(
		"tether.pipeline.state.changed",
		"Pipeline state transition",
	)
)

// Value flow signals.
var (
	// CombinedEmitted is emitted for every tuple seen by the logging subscription.
	CombinedEmitted = capitan.NewSignal(
		"tether.combined.emitted",
		"Combined form state emitted",
	)

	// FeedDecodeFailed is emitted when a Feeder cannot decode raw watcher data.
	FeedDecodeFailed = capitan.NewSignal(
		"tether.feed.decode.failed",
		"Watcher data could not be decoded",
	)

	// FeedDispatchFailed is emitted when a Feeder cannot hand a decoded value
	// to its EventLoop.
	FeedDispatchFailed = capitan.NewSignal(
		"tether.feed.dispatch.failed",
		"Decoded value could not be dispatched",
	)
)

// Unbind signals.
var (
	// GroupDisposed is emitted when an UnbindTrigger disposes its group.
	GroupDisposed = capitan.NewSignal(
		"tether.group.disposed",
		"Subscription group disposed",
	)

	// UnbindAlready is emitted when an UnbindTrigger fires after its group
	// was already disposed.
	UnbindAlready = capitan.NewSignal(
		"tether.unbind.already",
		"Already unbound",
	)
)
