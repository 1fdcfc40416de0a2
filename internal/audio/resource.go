// Package audio plays one local audio file through beep and reports its
// progress as player events.
package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/folio/internal/player"
)

// DefaultTimeUpdateInterval is how often a playing Resource reports its
// position.
const DefaultTimeUpdateInterval = 250 * time.Millisecond

// Info describes the opened stream.
type Info struct {
	Path       string
	Format     string
	SampleRate int
	BitDepth   int
	Channels   int
	Size       int64
	Duration   time.Duration
}

// Resource is a player.Resource backed by a decoded file on an Output.
//
// Lock order is r.mu then the output lock. The mixer goroutine only ever
// holds the output lock, so it never waits on r.mu.
type Resource struct {
	mu sync.Mutex

	out        Output
	log        *logrus.Entry
	policy     Policy
	activation Activation
	interval   time.Duration
	loop       bool

	file   io.Closer
	source beep.StreamSeekCloser
	format beep.Format
	track  *trackStreamer
	ctrl   *beep.Ctrl
	volume *effects.Volume
	info   Info

	queued   bool
	playing  bool
	stopTick chan struct{}

	// pendingEnd is set by the mixer when the track ends and consumed by
	// the dispatcher. Guarded by the output lock.
	pendingEnd bool

	volumeLevel float64
	muted       bool

	events *dispatcher
	closed bool
}

// Option configures a Resource.
type Option func(*Resource)

// WithOutput plays into out instead of the system speaker.
func WithOutput(out Output) Option {
	return func(r *Resource) { r.out = out }
}

// WithPolicy sets the autoplay policy. Under PolicyGesture, Play is rejected
// until a reports activation.
func WithPolicy(p Policy, a Activation) Option {
	return func(r *Resource) {
		r.policy = p
		r.activation = a
	}
}

// WithTimeUpdateInterval sets the position reporting cadence.
func WithTimeUpdateInterval(d time.Duration) Option {
	return func(r *Resource) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithLoop restarts the track when it ends instead of reporting the end.
func WithLoop(loop bool) Option {
	return func(r *Resource) { r.loop = loop }
}

// WithLogger sets the logger.
func WithLogger(l *logrus.Entry) Option {
	return func(r *Resource) {
		if l != nil {
			r.log = l
		}
	}
}

// Open decodes path and prepares it for playback, paused at the start.
func Open(path string, opts ...Option) (*Resource, error) {
	f, src, format, name, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	info := Info{
		Path:       path,
		Format:     name,
		SampleRate: int(format.SampleRate),
		BitDepth:   format.Precision * 8,
		Channels:   format.NumChannels,
	}
	if st, err := f.Stat(); err == nil {
		info.Size = st.Size()
	}

	r, err := newResource(src, format, info, opts...)
	if err != nil {
		src.Close()
		f.Close()
		return nil, err
	}
	r.file = f
	return r, nil
}

func newResource(src beep.StreamSeekCloser, format beep.Format, info Info, opts ...Option) (*Resource, error) {
	r := &Resource{
		out:         Speaker,
		log:         logrus.WithField("component", "audio"),
		policy:      PolicyGesture,
		interval:    DefaultTimeUpdateInterval,
		source:      src,
		format:      format,
		volumeLevel: 1,
	}
	for _, opt := range opts {
		opt(r)
	}

	rate, err := r.out.Init(format.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("init output: %w", err)
	}

	var s beep.Streamer = src
	if format.SampleRate != rate {
		s = beep.Resample(4, format.SampleRate, rate, src)
	}
	r.track = &trackStreamer{src: s, seek: src, loop: r.loop, onEnd: r.reportEnd}
	r.ctrl = &beep.Ctrl{Streamer: r.track, Paused: true}
	r.volume = &effects.Volume{Streamer: r.ctrl, Base: 2}

	if n := src.Len(); n > 0 {
		info.Duration = format.SampleRate.D(n)
	}
	r.info = info
	r.log = r.log.WithField("file", info.Path)
	r.events = newDispatcher(r.beforeDeliver)
	return r, nil
}

// Info returns stream details captured at open.
func (r *Resource) Info() Info {
	return r.info
}

// Play starts or resumes playback. Under PolicyGesture it fails with
// player.ErrPlaybackRejected until the user has interacted.
func (r *Resource) Play(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return player.ErrClosed
	}
	if r.policy == PolicyGesture && (r.activation == nil || !r.activation.Activated()) {
		return fmt.Errorf("audio: no user activation yet: %w", player.ErrPlaybackRejected)
	}
	if r.playing {
		return nil
	}

	r.out.Lock()
	if r.track.ended {
		if err := r.source.Seek(0); err != nil {
			r.out.Unlock()
			return fmt.Errorf("rewind: %w", err)
		}
		r.track.rewind()
		r.pendingEnd = false
	}
	r.ctrl.Paused = false
	r.out.Unlock()

	if !r.queued {
		r.out.Play(r.volume)
		r.queued = true
	}
	r.playing = true
	r.startTicker()
	r.log.Debug("playback started")
	r.events.emit(player.PlaybackStarted{})
	return nil
}

// Pause halts playback in place.
func (r *Resource) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || !r.playing {
		return
	}
	r.out.Lock()
	r.ctrl.Paused = true
	r.out.Unlock()
	r.playing = false
	r.stopTicker()
	r.events.emit(player.PlaybackPaused{})
}

// Playing reports whether audio is currently being produced.
func (r *Resource) Playing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.playing
}

// Seek moves to pos, clamped to the stream bounds, and reports the new
// position as a TimeUpdate.
func (r *Resource) Seek(pos time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	n := max(0, r.format.SampleRate.N(pos))
	if length := r.source.Len(); length > 0 {
		n = min(n, length)
	}

	r.out.Lock()
	err := r.source.Seek(n)
	if err == nil {
		r.track.rewind()
	}
	r.out.Unlock()

	if err != nil {
		r.log.WithError(err).WithField("position", pos.String()).Warn("seek failed")
		return
	}
	r.events.emit(player.TimeUpdate{Position: r.format.SampleRate.D(n)})
}

// Position returns the current playback position.
func (r *Resource) Position() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return 0
	}
	r.out.Lock()
	n := r.source.Position()
	r.out.Unlock()
	return r.format.SampleRate.D(n)
}

// Duration returns the stream length when the decoder knows it.
func (r *Resource) Duration() (time.Duration, bool) {
	return r.info.Duration, r.info.Duration > 0
}

// Subscribe registers fn for events. A known duration is replayed to fn as
// DurationResolved. Events are delivered in order from one goroutine.
func (r *Resource) Subscribe(fn func(player.Event)) func() {
	id := r.events.subscribe(fn)
	if d, ok := r.Duration(); ok {
		r.events.emitTo(id, player.DurationResolved{Duration: d})
	}
	var once sync.Once
	return func() {
		once.Do(func() { r.events.unsubscribe(id) })
	}
}

// Close stops playback and releases the decoder and file. It must not be
// called from an event handler.
func (r *Resource) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.playing = false
	r.stopTicker()

	r.out.Lock()
	r.ctrl.Streamer = nil
	r.out.Unlock()

	err := r.source.Close()
	if r.file != nil {
		if ferr := r.file.Close(); ferr != nil && !errors.Is(ferr, os.ErrClosed) && err == nil {
			err = ferr
		}
	}
	r.mu.Unlock()

	r.events.close(true)
	return err
}

// reportEnd runs on the mixer goroutine under the output lock.
func (r *Resource) reportEnd() {
	r.pendingEnd = true
	r.events.emit(player.PlaybackEnded{})
}

// beforeDeliver settles resource state on the dispatch goroutine before
// subscribers see the event. A seek landing between the end and its
// delivery still pauses, since subscribers will treat the track as ended.
func (r *Resource) beforeDeliver(ev player.Event) {
	if _, ok := ev.(player.PlaybackEnded); !ok {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.out.Lock()
	ended := r.pendingEnd
	if ended {
		r.pendingEnd = false
		r.ctrl.Paused = true
	}
	r.out.Unlock()
	if ended {
		r.playing = false
		r.stopTicker()
		r.log.Debug("playback ended")
	}
}

func (r *Resource) startTicker() {
	r.stopTicker()
	stop := make(chan struct{})
	r.stopTick = stop
	go r.tick(stop, r.interval)
}

func (r *Resource) stopTicker() {
	if r.stopTick != nil {
		close(r.stopTick)
		r.stopTick = nil
	}
}

func (r *Resource) tick(stop <-chan struct{}, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			r.events.emit(player.TimeUpdate{Position: r.Position()})
		}
	}
}

var _ player.Resource = (*Resource)(nil)
