// internal/player/mock.go
package player

import (
	"context"
	"sync"
	"time"
)

// Mock is a test double for Resource.
type Mock struct {
	mu sync.Mutex

	duration    time.Duration
	hasDuration bool

	playErr     error
	queuedErrs  []error
	emitStarted bool

	playCalls  int
	pauseCalls int
	seekCalls  []time.Duration

	handlers map[int]func(Event)
	nextID   int
}

// NewMock creates a mock resource whose Play succeeds and emits
// PlaybackStarted.
func NewMock() *Mock {
	return &Mock{
		emitStarted: true,
		handlers:    make(map[int]func(Event)),
	}
}

func (m *Mock) Play(ctx context.Context) error {
	m.mu.Lock()
	m.playCalls++
	if err := ctx.Err(); err != nil {
		m.mu.Unlock()
		return err
	}
	err := m.playErr
	if len(m.queuedErrs) > 0 {
		err = m.queuedErrs[0]
		m.queuedErrs = m.queuedErrs[1:]
	}
	emit := err == nil && m.emitStarted
	m.mu.Unlock()

	if emit {
		m.Emit(PlaybackStarted{})
	}
	return err
}

func (m *Mock) Pause() {
	m.mu.Lock()
	m.pauseCalls++
	m.mu.Unlock()
}

func (m *Mock) Seek(pos time.Duration) {
	m.mu.Lock()
	m.seekCalls = append(m.seekCalls, pos)
	m.mu.Unlock()
}

func (m *Mock) Duration() (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration, m.hasDuration
}

func (m *Mock) Subscribe(fn func(Event)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := m.nextID
	m.handlers[id] = fn
	return func() {
		m.mu.Lock()
		delete(m.handlers, id)
		m.mu.Unlock()
	}
}

// Test helpers

// Emit delivers ev to every subscriber synchronously.
func (m *Mock) Emit(ev Event) {
	m.mu.Lock()
	fns := make([]func(Event), 0, len(m.handlers))
	for _, fn := range m.handlers {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// SetPlayError sets the error returned by every Play call.
func (m *Mock) SetPlayError(err error) {
	m.mu.Lock()
	m.playErr = err
	m.mu.Unlock()
}

// QueuePlayErrors sets results for the next Play calls, in order, before
// falling back to the SetPlayError value.
func (m *Mock) QueuePlayErrors(errs ...error) {
	m.mu.Lock()
	m.queuedErrs = append(m.queuedErrs, errs...)
	m.mu.Unlock()
}

// SetEmitStarted controls whether a successful Play emits PlaybackStarted.
func (m *Mock) SetEmitStarted(emit bool) {
	m.mu.Lock()
	m.emitStarted = emit
	m.mu.Unlock()
}

// SetDuration makes Duration report d as known.
func (m *Mock) SetDuration(d time.Duration) {
	m.mu.Lock()
	m.duration = d
	m.hasDuration = true
	m.mu.Unlock()
}

func (m *Mock) PlayCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playCalls
}

func (m *Mock) PauseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pauseCalls
}

func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekCalls...)
}

// Subscribers returns the number of registered event handlers.
func (m *Mock) Subscribers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.handlers)
}

// Verify Mock implements Resource at compile time.
var _ Resource = (*Mock)(nil)
