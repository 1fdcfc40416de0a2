package mpris

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/folio/internal/gesture"
	"github.com/llehouerou/folio/internal/player"
	"github.com/llehouerou/folio/internal/tags"
)

// BusName is the MPRIS player name; the full bus name is
// org.mpris.MediaPlayer2.folio.
const BusName = "folio"

var errNoPlayer = errors.New("mpris: no player")

// Controls is the controller surface driven by media keys.
type Controls interface {
	Play(ctx context.Context) error
	Pause()
	Toggle(ctx context.Context) error
	SeekRelative(delta time.Duration) time.Duration
	SeekTo(pos time.Duration) time.Duration
	State() player.State
}

// Mixer controls the output level.
type Mixer interface {
	SetVolume(level float64)
	Volume() float64
	SetMuted(muted bool)
	Muted() bool
}

var _ Controls = (*player.Controller)(nil)

// Options configures an Adapter.
type Options struct {
	Player   Controls
	Gestures *gesture.Registry
	Mixer    Mixer
	Track    *tags.Tag
	Logger   *logrus.Entry
}
