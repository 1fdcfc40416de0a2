package app

import (
	"context"
	"time"

	"github.com/llehouerou/folio/internal/audio"
	"github.com/llehouerou/folio/internal/player"
)

// Playback is the controller surface the TUI drives.
type Playback interface {
	Play(ctx context.Context) error
	Pause()
	Toggle(ctx context.Context) error
	SeekRelative(delta time.Duration) time.Duration
	State() player.State
	RetryPending() bool
	Subscribe() *player.Subscription
}

// Mixer controls the output level.
type Mixer interface {
	SetVolume(level float64)
	Volume() float64
	SetMuted(muted bool)
	Muted() bool
}

var (
	_ Playback = (*player.Controller)(nil)
	_ Mixer    = (*audio.Resource)(nil)
)
