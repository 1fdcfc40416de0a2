package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/folio/internal/gesture"
)

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func newTestController(t *testing.T) (*Controller, *Mock, *gesture.Registry) {
	t.Helper()
	res := NewMock()
	reg := gesture.NewRegistry()
	c := New(res, reg, WithLogger(quietLogger()))
	t.Cleanup(func() { _ = c.Close() })
	return c, res, reg
}

func TestNew_StartsIdle(t *testing.T) {
	c, res, _ := newTestController(t)

	s := c.State()
	assert.Equal(t, Idle, s.Status)
	assert.Equal(t, time.Duration(0), s.Position)
	assert.False(t, s.DurationKnown)
	assert.Equal(t, 1, res.Subscribers())
}

func TestNew_SeedsKnownDuration(t *testing.T) {
	res := NewMock()
	res.SetDuration(2 * time.Minute)

	c := New(res, gesture.NewRegistry(), WithLogger(quietLogger()))
	defer c.Close()

	s := c.State()
	assert.True(t, s.DurationKnown)
	assert.Equal(t, 2*time.Minute, s.Duration)
}

func TestPlay_Success(t *testing.T) {
	c, res, reg := newTestController(t)

	require.NoError(t, c.Play(context.Background()))

	assert.Equal(t, Playing, c.State().Status)
	assert.Equal(t, 1, res.PlayCalls())
	assert.Equal(t, 0, reg.Pending())
}

func TestPlay_WithoutStartedEvent(t *testing.T) {
	c, res, _ := newTestController(t)
	res.SetEmitStarted(false)

	require.NoError(t, c.Play(context.Background()))

	assert.Equal(t, Playing, c.State().Status)
}

func TestPlay_AlreadyPlayingIsNoop(t *testing.T) {
	c, res, _ := newTestController(t)
	require.NoError(t, c.Play(context.Background()))

	require.NoError(t, c.Play(context.Background()))

	assert.Equal(t, 1, res.PlayCalls())
}

func TestPlay_Rejected_LeavesStatusAndArmsOneHook(t *testing.T) {
	c, res, reg := newTestController(t)
	res.SetPlayError(ErrPlaybackRejected)

	err := c.Play(context.Background())

	require.ErrorIs(t, err, ErrPlaybackRejected)
	assert.Equal(t, Idle, c.State().Status)
	assert.Equal(t, 1, reg.Pending())
	assert.True(t, c.RetryPending())

	// A second rejection does not stack another hook.
	require.ErrorIs(t, c.Play(context.Background()), ErrPlaybackRejected)
	assert.Equal(t, 1, reg.Pending())
	assert.Equal(t, 2, res.PlayCalls())
}

func TestPlay_Rejected_FromPausedStaysPaused(t *testing.T) {
	c, res, _ := newTestController(t)
	require.NoError(t, c.Play(context.Background()))
	c.Pause()
	res.SetPlayError(ErrPlaybackRejected)

	require.ErrorIs(t, c.Play(context.Background()), ErrPlaybackRejected)

	assert.Equal(t, Paused, c.State().Status)
}

func TestPlay_Rejected_WrappedErrorArmsHook(t *testing.T) {
	c, res, reg := newTestController(t)
	res.SetPlayError(fmt.Errorf("speaker: %w", ErrPlaybackRejected))

	_ = c.Play(context.Background())

	assert.Equal(t, 1, reg.Pending())
}

func TestPlay_OtherErrorDoesNotArmHook(t *testing.T) {
	c, res, reg := newTestController(t)
	res.SetPlayError(errors.New("device busy"))

	err := c.Play(context.Background())

	require.Error(t, err)
	assert.Equal(t, Idle, c.State().Status)
	assert.Equal(t, 0, reg.Pending())
}

func TestPlay_CanceledContext(t *testing.T) {
	c, _, reg := newTestController(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Play(ctx)

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, reg.Pending())
}

func TestPlay_RejectedAfterGestureRetriesAtOnce(t *testing.T) {
	c, res, reg := newTestController(t)
	reg.Fire(gesture.KeyPress)
	res.QueuePlayErrors(ErrPlaybackRejected)
	sub := c.Subscribe()

	require.NoError(t, c.Play(context.Background()))

	assert.Equal(t, Playing, c.State().Status)
	assert.Equal(t, 2, res.PlayCalls())
	assert.Equal(t, 0, reg.Pending())
	assert.False(t, c.RetryPending())
	select {
	case e := <-sub.Errors:
		assert.True(t, e.Retrying)
	default:
		t.Fatal("the first rejection should still be reported")
	}
}

func TestPlay_RejectedAfterGestureKeepsHookWhenRetryFails(t *testing.T) {
	c, res, reg := newTestController(t)
	reg.Fire(gesture.Click)
	res.SetPlayError(ErrPlaybackRejected)

	require.ErrorIs(t, c.Play(context.Background()), ErrPlaybackRejected)

	assert.Equal(t, 2, res.PlayCalls(), "one immediate attempt, no more")
	assert.Equal(t, 1, reg.Pending())
	assert.True(t, c.RetryPending())

	res.SetPlayError(nil)
	reg.Fire(gesture.Click)
	assert.Equal(t, Playing, c.State().Status)
	assert.Equal(t, 3, res.PlayCalls())
}

func TestPlay_HooksWithoutActivationWaitForGesture(t *testing.T) {
	res := NewMock()
	hooks := &countingHooks{}
	c := New(res, hooks, WithLogger(quietLogger()))
	defer c.Close()
	res.SetPlayError(ErrPlaybackRejected)

	require.ErrorIs(t, c.Play(context.Background()), ErrPlaybackRejected)

	assert.Equal(t, 1, res.PlayCalls())
	assert.Equal(t, 1, hooks.armed)
}

func TestRetry_ClickTriggersExactlyOneAttempt_HookRemovedOnFailure(t *testing.T) {
	c, res, reg := newTestController(t)
	res.SetPlayError(ErrPlaybackRejected)
	_ = c.Play(context.Background())
	require.Equal(t, 1, res.PlayCalls())

	ran := reg.Fire(gesture.Click)

	assert.Equal(t, 1, ran)
	assert.Equal(t, 2, res.PlayCalls(), "click should trigger exactly one more play attempt")
	assert.Equal(t, 0, reg.Pending(), "hook must be removed even though the retry failed")
	assert.False(t, c.RetryPending())
	assert.Equal(t, Idle, c.State().Status)

	reg.Fire(gesture.Click)
	reg.Fire(gesture.KeyPress)
	assert.Equal(t, 2, res.PlayCalls())
}

func TestRetry_KeyPressStartsPlayback(t *testing.T) {
	c, res, reg := newTestController(t)
	res.QueuePlayErrors(ErrPlaybackRejected)
	_ = c.Play(context.Background())

	reg.Fire(gesture.KeyPress)

	assert.Equal(t, Playing, c.State().Status)
	assert.Equal(t, 2, res.PlayCalls())
	assert.Equal(t, 0, reg.Pending())
}

func TestRetry_TouchCountsAsGesture(t *testing.T) {
	c, res, reg := newTestController(t)
	res.QueuePlayErrors(ErrPlaybackRejected)
	_ = c.Play(context.Background())

	reg.Fire(gesture.Touch)

	assert.Equal(t, Playing, c.State().Status)
}

func TestRetry_ExplicitSuccessRemovesHook(t *testing.T) {
	c, res, reg := newTestController(t)
	res.QueuePlayErrors(ErrPlaybackRejected)
	_ = c.Play(context.Background())
	require.Equal(t, 1, reg.Pending())

	require.NoError(t, c.Play(context.Background()))

	assert.Equal(t, 0, reg.Pending())
	reg.Fire(gesture.Click)
	assert.Equal(t, 2, res.PlayCalls())
}

func TestRetry_StartedEventRemovesHook(t *testing.T) {
	c, res, reg := newTestController(t)
	res.SetPlayError(ErrPlaybackRejected)
	_ = c.Play(context.Background())

	res.Emit(PlaybackStarted{})

	assert.Equal(t, Playing, c.State().Status)
	assert.Equal(t, 0, reg.Pending())
}

func TestPause_IdleIsNoop(t *testing.T) {
	c, res, _ := newTestController(t)

	assert.NotPanics(t, c.Pause)

	assert.Equal(t, Idle, c.State().Status)
	assert.Equal(t, 0, res.PauseCalls())
}

func TestPause_Idempotent(t *testing.T) {
	c, res, _ := newTestController(t)
	require.NoError(t, c.Play(context.Background()))

	c.Pause()
	c.Pause()

	assert.Equal(t, Paused, c.State().Status)
	assert.Equal(t, 1, res.PauseCalls())
}

func TestToggle_TwiceFromPausedReturnsToPaused(t *testing.T) {
	c, res, _ := newTestController(t)
	require.NoError(t, c.Play(context.Background()))
	c.Pause()
	require.Equal(t, Paused, c.State().Status)

	require.NoError(t, c.Toggle(context.Background()))
	assert.Equal(t, Playing, c.State().Status)
	require.NoError(t, c.Toggle(context.Background()))

	assert.Equal(t, Paused, c.State().Status)
	assert.Equal(t, 2, res.PlayCalls())
	assert.Equal(t, 2, res.PauseCalls())
}

func TestToggle_FromIdlePlays(t *testing.T) {
	c, _, _ := newTestController(t)

	require.NoError(t, c.Toggle(context.Background()))

	assert.Equal(t, Playing, c.State().Status)
}

func TestSeekRelative_StaysWithinKnownDuration(t *testing.T) {
	deltas := []time.Duration{
		0,
		time.Second,
		-time.Second,
		30 * time.Second,
		-30 * time.Second,
		125 * time.Second,
		-125 * time.Second,
		10 * time.Minute,
		-10 * time.Minute,
		math.MaxInt64,
		math.MinInt64,
	}
	starts := []time.Duration{0, 10 * time.Second, 124 * time.Second, 125 * time.Second}

	for _, start := range starts {
		for _, delta := range deltas {
			t.Run(fmt.Sprintf("%v%+v", start, delta), func(t *testing.T) {
				c, res, _ := newTestController(t)
				res.Emit(DurationResolved{Duration: 125 * time.Second})
				res.Emit(TimeUpdate{Position: start})

				got := c.SeekRelative(delta)

				assert.GreaterOrEqual(t, got, time.Duration(0))
				assert.LessOrEqual(t, got, 125*time.Second)
				assert.Equal(t, got, c.State().Position)
			})
		}
	}
}

func TestSeekRelative_MovesResource(t *testing.T) {
	c, res, _ := newTestController(t)
	res.Emit(DurationResolved{Duration: time.Minute})
	res.Emit(TimeUpdate{Position: 20 * time.Second})

	got := c.SeekRelative(5 * time.Second)

	assert.Equal(t, 25*time.Second, got)
	assert.Equal(t, []time.Duration{25 * time.Second}, res.SeekCalls())
}

func TestSeekRelative_UnknownDuration(t *testing.T) {
	c, _, _ := newTestController(t)

	assert.Equal(t, time.Duration(0), c.SeekRelative(-10*time.Second))
	assert.Equal(t, 10*time.Second, c.SeekRelative(10*time.Second))
	assert.Equal(t, time.Duration(0), c.SeekRelative(-time.Hour))
}

func TestSeekTo_Clamps(t *testing.T) {
	c, res, _ := newTestController(t)
	res.Emit(DurationResolved{Duration: time.Minute})

	assert.Equal(t, time.Minute, c.SeekTo(2*time.Minute))
	assert.Equal(t, time.Duration(0), c.SeekTo(-time.Second))
	assert.Equal(t, 30*time.Second, c.SeekTo(30*time.Second))
}

func TestHandle_TimeUpdateLastWriteWins(t *testing.T) {
	c, res, _ := newTestController(t)
	res.Emit(DurationResolved{Duration: time.Minute})

	res.Emit(TimeUpdate{Position: 10 * time.Second})
	res.Emit(TimeUpdate{Position: 12 * time.Second})
	res.Emit(TimeUpdate{Position: 11 * time.Second})

	assert.Equal(t, 11*time.Second, c.State().Position)

	res.Emit(TimeUpdate{Position: 2 * time.Minute})
	assert.Equal(t, time.Minute, c.State().Position)
}

func TestHandle_DurationResolvedClampsPosition(t *testing.T) {
	c, res, _ := newTestController(t)
	res.Emit(TimeUpdate{Position: 200 * time.Second})

	res.Emit(DurationResolved{Duration: 125 * time.Second})

	s := c.State()
	assert.True(t, s.DurationKnown)
	assert.Equal(t, 125*time.Second, s.Position)
}

func TestHandle_NegativeDurationIgnored(t *testing.T) {
	c, res, _ := newTestController(t)

	res.Emit(DurationResolved{Duration: -time.Second})

	assert.False(t, c.State().DurationKnown)
}

func TestHandle_PausedEvent(t *testing.T) {
	c, res, _ := newTestController(t)

	res.Emit(PlaybackPaused{})
	assert.Equal(t, Idle, c.State().Status, "Idle must not become Paused from a resource event")

	res.Emit(PlaybackStarted{})
	res.Emit(PlaybackPaused{})
	assert.Equal(t, Paused, c.State().Status)
}

func TestHandle_EndedResetsRegardlessOfPriorState(t *testing.T) {
	prepare := map[string]func(c *Controller, res *Mock){
		"idle": func(_ *Controller, _ *Mock) {},
		"playing": func(c *Controller, _ *Mock) {
			_ = c.Play(context.Background())
		},
		"paused": func(c *Controller, _ *Mock) {
			_ = c.Play(context.Background())
			c.Pause()
		},
	}

	for name, setup := range prepare {
		t.Run(name, func(t *testing.T) {
			c, res, _ := newTestController(t)
			res.Emit(DurationResolved{Duration: time.Minute})
			setup(c, res)
			res.Emit(TimeUpdate{Position: 45 * time.Second})

			res.Emit(PlaybackEnded{})

			s := c.State()
			assert.Equal(t, Paused, s.Status)
			assert.Equal(t, time.Duration(0), s.Position)
			seeks := res.SeekCalls()
			require.NotEmpty(t, seeks)
			assert.Equal(t, time.Duration(0), seeks[len(seeks)-1], "resource should be rewound")
		})
	}
}

func TestHandle_EndedThenPlayRestarts(t *testing.T) {
	c, res, _ := newTestController(t)
	require.NoError(t, c.Play(context.Background()))
	res.Emit(PlaybackEnded{})

	require.NoError(t, c.Play(context.Background()))

	assert.Equal(t, Playing, c.State().Status)
	assert.Equal(t, time.Duration(0), c.State().Position)
}

// blockingResource holds Play until released.
type blockingResource struct {
	*Mock
	entered chan struct{}
	release chan struct{}
}

func (b *blockingResource) Play(ctx context.Context) error {
	b.entered <- struct{}{}
	<-b.release
	return b.Mock.Play(ctx)
}

func TestPause_SupersedesInflightPlay(t *testing.T) {
	res := &blockingResource{
		Mock:    NewMock(),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	res.SetEmitStarted(false)
	c := New(res, gesture.NewRegistry(), WithLogger(quietLogger()))
	defer c.Close()

	var wg sync.WaitGroup
	var playErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		playErr = c.Play(context.Background())
	}()

	<-res.entered
	c.Pause()
	close(res.release)
	wg.Wait()

	require.NoError(t, playErr)
	assert.NotEqual(t, Playing, c.State().Status)
	assert.Equal(t, 2, res.PauseCalls(), "late success must be paused again")
}

func TestSubscribe_ReceivesStateChanges(t *testing.T) {
	c, _, _ := newTestController(t)
	sub := c.Subscribe()

	require.NoError(t, c.Play(context.Background()))

	select {
	case e := <-sub.StateChanged:
		assert.Equal(t, Idle, e.Previous.Status)
		assert.Equal(t, Playing, e.Current.Status)
	default:
		t.Fatal("expected a state change")
	}
}

func TestSubscribe_ReceivesRejection(t *testing.T) {
	c, res, _ := newTestController(t)
	res.SetPlayError(ErrPlaybackRejected)
	sub := c.Subscribe()

	_ = c.Play(context.Background())

	select {
	case e := <-sub.Errors:
		assert.Equal(t, "play", e.Operation)
		assert.True(t, e.Retrying)
		assert.ErrorIs(t, e.Err, ErrPlaybackRejected)
	default:
		t.Fatal("expected an error event")
	}
}

func TestSubscribe_NoEventWithoutChange(t *testing.T) {
	c, _, _ := newTestController(t)
	sub := c.Subscribe()

	c.Pause()

	select {
	case e := <-sub.StateChanged:
		t.Fatalf("unexpected state change %+v", e)
	default:
	}
}

func TestClose_ReleasesEverything(t *testing.T) {
	res := NewMock()
	reg := gesture.NewRegistry()
	c := New(res, reg, WithLogger(quietLogger()))
	sub := c.Subscribe()
	res.SetPlayError(ErrPlaybackRejected)
	_ = c.Play(context.Background())
	require.Equal(t, 1, reg.Pending())

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	assert.Equal(t, 0, reg.Pending())
	assert.Equal(t, 0, res.Subscribers())
	select {
	case <-sub.Done:
	default:
		t.Fatal("subscription should be done after Close")
	}
	assert.ErrorIs(t, c.Play(context.Background()), ErrClosed)
	assert.NotPanics(t, c.Pause)
}

func TestClose_EventsIgnored(t *testing.T) {
	res := NewMock()
	c := New(res, gesture.NewRegistry(), WithLogger(quietLogger()))
	require.NoError(t, c.Close())

	c.Handle(PlaybackStarted{})

	assert.Equal(t, Idle, c.State().Status)
}

func TestSubscribe_AfterCloseIsDone(t *testing.T) {
	c, _, _ := newTestController(t)
	require.NoError(t, c.Close())

	sub := c.Subscribe()

	<-sub.Done
}

func TestNew_NilHooksNeverArms(t *testing.T) {
	res := NewMock()
	res.SetPlayError(ErrPlaybackRejected)
	c := New(res, nil, WithLogger(quietLogger()))
	defer c.Close()

	require.ErrorIs(t, c.Play(context.Background()), ErrPlaybackRejected)
	assert.False(t, c.RetryPending())
}

// countingHooks records registrations and never fires.
type countingHooks struct {
	armed int
}

func (h *countingHooks) Once(func(gesture.Kind), ...gesture.Kind) func() {
	h.armed++
	return func() {}
}
