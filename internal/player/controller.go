package player

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/folio/internal/gesture"
)

// Controller mediates play, pause and seek commands against one Resource and
// keeps State consistent with the resource's events.
//
// Commands and events may arrive from any goroutine; they are serialized by
// a single mutex that is never held while calling into the resource.
type Controller struct {
	mu sync.Mutex

	res   Resource
	hooks Hooks
	log   *logrus.Entry

	state State

	// pauseSeq invalidates play attempts that were in flight when Pause ran.
	pauseSeq uint64
	inflight int

	cancelRetry func()
	unsubscribe func()

	ctx    context.Context
	cancel context.CancelFunc

	subs   []*Subscription
	closed bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for command and event tracing.
func WithLogger(l *logrus.Entry) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// New binds a controller to res. Rejected play requests are retried on the
// next gesture registered through hooks. The controller subscribes to res
// immediately; call Close when the host unmounts.
func New(res Resource, hooks Hooks, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		res:    res,
		hooks:  hooks,
		log:    logrus.WithField("component", "player"),
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithField("controller", uuid.NewString())

	if d, ok := res.Duration(); ok && d >= 0 {
		c.state.Duration = d
		c.state.DurationKnown = true
	}
	c.unsubscribe = res.Subscribe(c.Handle)
	return c
}

// State returns a snapshot of the playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// RetryPending reports whether a rejected play is waiting for a gesture.
func (c *Controller) RetryPending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancelRetry != nil
}

// Subscribe creates a new event subscription.
func (c *Controller) Subscribe() *Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	sub := newSubscription()
	if c.closed {
		sub.close()
		return sub
	}
	c.subs = append(c.subs, sub)
	return sub
}

// Play requests playback and waits for the resource to resolve it.
//
// When the resource refuses with ErrPlaybackRejected the status is left
// unchanged, the error is returned and reported to subscribers, and a
// one-shot hook retries once on the next click, touch or key press.
// Only one such hook is pending at a time. If the hooks report that a
// gesture was already seen, one attempt is also made right away and its
// result returned; the hook stays armed should that attempt fail.
func (c *Controller) Play(ctx context.Context) error {
	return c.play(ctx, true)
}

func (c *Controller) play(ctx context.Context, armRetry bool) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.state.Status == Playing {
		c.mu.Unlock()
		return nil
	}
	seq := c.pauseSeq
	c.inflight++
	c.mu.Unlock()

	err := c.res.Play(ctx)

	c.mu.Lock()
	c.inflight--
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if seq != c.pauseSeq {
		// A pause arrived while the request was pending; it wins.
		c.mu.Unlock()
		if err == nil {
			c.res.Pause()
		}
		c.log.Debug("play superseded by pause")
		return err
	}

	if err != nil {
		armed, activated := false, false
		if armRetry && c.hooks != nil && errors.Is(err, ErrPlaybackRejected) && c.cancelRetry == nil {
			c.cancelRetry = c.hooks.Once(c.retry, gesture.AllKinds...)
			armed = true
			// An input that landed while the request was pending has
			// already been spent and will not fire the hook.
			if h, ok := c.hooks.(activation); ok {
				activated = h.Activated()
			}
		}
		subs := c.subscribers()
		c.mu.Unlock()

		c.log.WithError(err).WithField("retry_armed", armed).Info("play request failed")
		ev := ErrorEvent{Operation: "play", Err: err, Retrying: armed}
		for _, s := range subs {
			s.sendError(ev)
		}
		if activated {
			c.log.Debug("already activated, retrying rejected play now")
			return c.play(ctx, false)
		}
		return err
	}

	prev := c.state
	c.state.Status = Playing
	cancelRetry := c.takeRetry()
	change, subs := c.changeLocked(prev)
	c.mu.Unlock()

	if cancelRetry != nil {
		cancelRetry()
	}
	publish(subs, change)
	return nil
}

// activation is implemented by hooks that remember whether a gesture has
// already been seen.
type activation interface {
	Activated() bool
}

// retry runs from the gesture hook. It makes exactly one attempt and does
// not re-arm, even if the attempt is rejected again.
func (c *Controller) retry(kind gesture.Kind) {
	c.mu.Lock()
	c.cancelRetry = nil
	closed := c.closed
	ctx := c.ctx
	c.mu.Unlock()
	if closed {
		return
	}

	c.log.WithField("gesture", kind.String()).Debug("retrying rejected play")
	_ = c.play(ctx, false)
}

// Pause stops playback. It is a no-op when nothing is playing and no play
// request is pending, so it is always safe to call.
func (c *Controller) Pause() {
	c.mu.Lock()
	if c.closed || (!c.state.Status.CanPause() && c.inflight == 0) {
		c.mu.Unlock()
		return
	}
	c.pauseSeq++
	prev := c.state
	if c.state.Status == Playing {
		c.state.Status = Paused
	}
	change, subs := c.changeLocked(prev)
	c.mu.Unlock()

	c.res.Pause()
	publish(subs, change)
}

// Toggle pauses when playing and plays otherwise.
func (c *Controller) Toggle(ctx context.Context) error {
	c.mu.Lock()
	playing := c.state.Status == Playing
	c.mu.Unlock()

	if playing {
		c.Pause()
		return nil
	}
	return c.Play(ctx)
}

// SeekRelative moves the position by delta and returns the new position.
// The target is clamped to [0, duration] when the duration is known and to
// zero from below otherwise; seeking never fails.
func (c *Controller) SeekRelative(delta time.Duration) time.Duration {
	c.mu.Lock()
	target := c.state.clamp(addSaturating(c.state.Position, delta))
	return c.seekLocked(target)
}

// SeekTo moves to an absolute position with the same clamping as
// SeekRelative.
func (c *Controller) SeekTo(pos time.Duration) time.Duration {
	c.mu.Lock()
	return c.seekLocked(c.state.clamp(pos))
}

// seekLocked expects c.mu held and releases it.
func (c *Controller) seekLocked(target time.Duration) time.Duration {
	if c.closed {
		pos := c.state.Position
		c.mu.Unlock()
		return pos
	}
	prev := c.state
	c.state.Position = target
	change, subs := c.changeLocked(prev)
	c.mu.Unlock()

	c.res.Seek(target)
	publish(subs, change)
	return target
}

// Handle applies a resource event. It is registered with the resource on
// construction; hosts only call it directly in tests or when bridging a
// resource that cannot call back.
func (c *Controller) Handle(ev Event) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	prev := c.state
	var rewind, resolved bool
	var cancelRetry func()

	switch e := ev.(type) {
	case TimeUpdate:
		c.state.Position = c.state.clamp(e.Position)
	case DurationResolved:
		if e.Duration < 0 {
			break
		}
		c.state.Duration = e.Duration
		c.state.DurationKnown = true
		c.state.Position = c.state.clamp(c.state.Position)
		resolved = true
	case PlaybackStarted:
		c.state.Status = Playing
		cancelRetry = c.takeRetry()
	case PlaybackPaused:
		if c.state.Status == Playing {
			c.state.Status = Paused
		}
	case PlaybackEnded:
		c.state.Status = Paused
		c.state.Position = 0
		rewind = true
	}
	change, subs := c.changeLocked(prev)
	c.mu.Unlock()

	if cancelRetry != nil {
		cancelRetry()
	}
	if rewind {
		c.res.Seek(0)
	}
	if resolved {
		c.log.WithField("duration", c.State().Duration.String()).Debug("duration resolved")
	}
	publish(subs, change)
}

// Close releases the resource subscription, any pending retry hook and all
// subscriptions. The resource itself stays open. Close is idempotent.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	cancelRetry := c.takeRetry()
	unsubscribe := c.unsubscribe
	c.unsubscribe = nil
	subs := c.subs
	c.subs = nil
	c.cancel()
	c.mu.Unlock()

	if cancelRetry != nil {
		cancelRetry()
	}
	if unsubscribe != nil {
		unsubscribe()
	}
	for _, s := range subs {
		s.close()
	}
	return nil
}

// takeRetry detaches the pending retry hook. Expects c.mu held.
func (c *Controller) takeRetry() func() {
	cancel := c.cancelRetry
	c.cancelRetry = nil
	return cancel
}

// changeLocked returns the change since prev (nil if none) and the current
// subscribers. Expects c.mu held.
func (c *Controller) changeLocked(prev State) (*StateChange, []*Subscription) {
	if prev == c.state {
		return nil, nil
	}
	return &StateChange{Previous: prev, Current: c.state}, c.subscribers()
}

func (c *Controller) subscribers() []*Subscription {
	if len(c.subs) == 0 {
		return nil
	}
	subs := make([]*Subscription, len(c.subs))
	copy(subs, c.subs)
	return subs
}

func publish(subs []*Subscription, change *StateChange) {
	if change == nil {
		return
	}
	for _, s := range subs {
		s.sendState(*change)
	}
}

func addSaturating(a, b time.Duration) time.Duration {
	switch {
	case b > 0 && a > math.MaxInt64-b:
		return math.MaxInt64
	case b < 0 && a < math.MinInt64-b:
		return math.MinInt64
	}
	return a + b
}
