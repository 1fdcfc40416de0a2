package player

import (
	"context"
	"errors"
	"time"

	"github.com/llehouerou/folio/internal/gesture"
)

// ErrPlaybackRejected is returned by Resource.Play when the platform refuses
// to start playback without prior user interaction (autoplay policy).
// It is the only failure the controller recovers from on its own.
var ErrPlaybackRejected = errors.New("playback rejected: user interaction required")

// ErrClosed is returned by commands issued after Controller.Close.
var ErrClosed = errors.New("player: controller closed")

// Resource is the audio device a Controller commands. The host creates and
// closes it; the controller only plays, pauses and seeks.
type Resource interface {
	// Play starts output and blocks until it has started or failed.
	// A policy refusal must wrap ErrPlaybackRejected.
	Play(ctx context.Context) error
	// Pause stops output. Safe to call in any state.
	Pause()
	// Seek moves the read position. Callers pass clamped positions.
	Seek(pos time.Duration)
	// Duration returns the total length once it is known.
	Duration() (time.Duration, bool)
	// Subscribe registers fn for resource events. Events may be delivered
	// from any goroutine. The returned func unregisters fn.
	Subscribe(fn func(Event)) (unsubscribe func())
}

// Hooks registers one-shot callbacks on the next user gesture.
type Hooks interface {
	Once(fn func(gesture.Kind), kinds ...gesture.Kind) (cancel func())
}

// Verify the gesture registry satisfies Hooks at compile time.
var _ Hooks = (*gesture.Registry)(nil)
