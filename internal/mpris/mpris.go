//go:build linux

package mpris

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/folio/internal/gesture"
	"github.com/llehouerou/folio/internal/player"
	"github.com/llehouerou/folio/internal/tags"
)

// Adapter exposes the soundtrack controller as org.mpris.MediaPlayer2.folio.
type Adapter struct {
	server *server.Server
	player *playerAdapter
}

// New creates the adapter and starts serving on the session bus.
func New(opts Options) (*Adapter, error) {
	if opts.Player == nil {
		return nil, errNoPlayer
	}
	log := opts.Logger
	if log == nil {
		log = logrus.WithField("component", "mpris")
	}

	a := &Adapter{player: newPlayerAdapter(opts)}
	a.server = server.NewServer(BusName, &rootAdapter{}, a.player)

	go func() {
		if err := a.server.Listen(); err != nil {
			log.WithError(err).Warn("mpris server stopped")
		}
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error { return nil }
func (r *rootAdapter) Quit() error  { return nil }

func (r *rootAdapter) CanQuit() (bool, error)      { return false, nil }
func (r *rootAdapter) CanRaise() (bool, error)     { return false, nil }
func (r *rootAdapter) HasTrackList() (bool, error) { return false, nil }

func (r *rootAdapter) Identity() (string, error) {
	return "Folio", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter. Every control
// method counts as a key press before reaching the controller.
type playerAdapter struct {
	player   Controls
	gestures *gesture.Registry
	mixer    Mixer
	track    *tags.Tag
	log      *logrus.Entry
}

func newPlayerAdapter(opts Options) *playerAdapter {
	gestures := opts.Gestures
	if gestures == nil {
		gestures = gesture.NewRegistry()
	}
	log := opts.Logger
	if log == nil {
		log = logrus.WithField("component", "mpris")
	}
	return &playerAdapter{
		player:   opts.Player,
		gestures: gestures,
		mixer:    opts.Mixer,
		track:    opts.Track,
		log:      log,
	}
}

// press fires a key press and reports whether it ran a pending retry.
func (p *playerAdapter) press() bool {
	return p.gestures.Fire(gesture.KeyPress) > 0
}

func (p *playerAdapter) Next() error     { return nil }
func (p *playerAdapter) Previous() error { return nil }

func (p *playerAdapter) Pause() error {
	p.press()
	p.player.Pause()
	return nil
}

func (p *playerAdapter) PlayPause() error {
	if p.press() && p.player.State().Status == player.Playing {
		return nil
	}
	return p.ignoreRejected(p.player.Toggle(context.Background()))
}

func (p *playerAdapter) Stop() error {
	p.press()
	p.player.Pause()
	return nil
}

func (p *playerAdapter) Play() error {
	if p.press() && p.player.State().Status == player.Playing {
		return nil
	}
	return p.ignoreRejected(p.player.Play(context.Background()))
}

// ignoreRejected drops ErrPlaybackRejected: the controller already armed a
// retry for the next gesture.
func (p *playerAdapter) ignoreRejected(err error) error {
	if err == nil || errors.Is(err, player.ErrPlaybackRejected) {
		return nil
	}
	p.log.WithError(err).Warn("mpris play failed")
	return err
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	p.press()
	p.player.SeekRelative(time.Duration(offset) * time.Microsecond)
	return nil
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	p.press()
	p.player.SeekTo(time.Duration(position) * time.Microsecond)
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch st := p.player.State().Status; {
	case !st.Started():
		return types.PlaybackStatusStopped, nil
	case st == player.Playing:
		return types.PlaybackStatusPlaying, nil
	default:
		return types.PlaybackStatusPaused, nil
	}
}

func (p *playerAdapter) Rate() (float64, error)  { return 1.0, nil }
func (p *playerAdapter) SetRate(_ float64) error { return nil }

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	if p.track == nil {
		return types.Metadata{}, nil
	}
	meta := types.Metadata{
		TrackId:     dbus.ObjectPath(formatTrackID(p.track.Path)),
		Title:       p.track.Title,
		Album:       p.track.Album,
		TrackNumber: p.track.TrackNumber,
	}
	if p.track.Artist != "" {
		meta.Artist = []string{p.track.Artist}
	}
	if st := p.player.State(); st.DurationKnown {
		meta.Length = types.Microseconds(st.Duration.Microseconds())
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	if p.mixer == nil {
		return 1.0, nil
	}
	if p.mixer.Muted() {
		return 0, nil
	}
	return p.mixer.Volume(), nil
}

func (p *playerAdapter) SetVolume(level float64) error {
	if p.mixer == nil {
		return nil
	}
	p.mixer.SetVolume(min(max(level, 0), 1))
	if p.mixer.Muted() && level > 0 {
		p.mixer.SetMuted(false)
	}
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.player.State().Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) { return 1.0, nil }
func (p *playerAdapter) MaximumRate() (float64, error) { return 1.0, nil }

func (p *playerAdapter) CanGoNext() (bool, error)     { return false, nil }
func (p *playerAdapter) CanGoPrevious() (bool, error) { return false, nil }
func (p *playerAdapter) CanPlay() (bool, error)       { return true, nil }
func (p *playerAdapter) CanPause() (bool, error)      { return true, nil }
func (p *playerAdapter) CanControl() (bool, error)    { return true, nil }

func (p *playerAdapter) CanSeek() (bool, error) {
	return p.player.State().DurationKnown, nil
}

func formatTrackID(path string) string {
	h := fnv.New64a()
	h.Write([]byte(path))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
