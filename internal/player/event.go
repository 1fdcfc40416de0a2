package player

import "time"

// Event is a notification emitted by a Resource. Controllers apply events
// through Handle; each event type updates State deterministically.
type Event interface {
	resourceEvent()
}

// TimeUpdate reports the resource's current position. Emitted on a
// resource-driven cadence while playing.
type TimeUpdate struct {
	Position time.Duration
}

// DurationResolved reports that the resource knows its total duration.
type DurationResolved struct {
	Duration time.Duration
}

// PlaybackStarted reports that audio output actually began.
type PlaybackStarted struct{}

// PlaybackPaused reports that audio output stopped without reaching the end.
type PlaybackPaused struct{}

// PlaybackEnded reports that the resource played through to its end.
type PlaybackEnded struct{}

func (TimeUpdate) resourceEvent()       {}
func (DurationResolved) resourceEvent() {}
func (PlaybackStarted) resourceEvent()  {}
func (PlaybackPaused) resourceEvent()   {}
func (PlaybackEnded) resourceEvent()    {}

// StateChange is emitted to subscribers when the controller state changes.
type StateChange struct {
	Previous State
	Current  State
}

// ErrorEvent is emitted when a command fails. Rejected play requests are
// reported here with Retrying set when a gesture hook was armed.
type ErrorEvent struct {
	Operation string // e.g., "play"
	Err       error
	Retrying  bool
}
