package audio

import (
	"sync"
	"testing"

	"github.com/gopxl/beep/v2"

	"github.com/llehouerou/folio/internal/player"
)

// fakeOutput is a mixer driven by the test through pull.
type fakeOutput struct {
	mu        sync.Mutex
	rate      beep.SampleRate
	streamers []beep.Streamer
	plays     int
}

func (o *fakeOutput) Init(rate beep.SampleRate) (beep.SampleRate, error) {
	if o.rate == 0 {
		o.rate = rate
	}
	return o.rate, nil
}

func (o *fakeOutput) Play(s beep.Streamer) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.streamers = append(o.streamers, s)
	o.plays++
}

func (o *fakeOutput) Lock()   { o.mu.Lock() }
func (o *fakeOutput) Unlock() { o.mu.Unlock() }

// pull mixes n frames the way the speaker does and returns the last buffer.
func (o *fakeOutput) pull(n int) [][2]float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	buf := make([][2]float64, n)
	kept := o.streamers[:0]
	for _, s := range o.streamers {
		if _, ok := s.Stream(buf); ok {
			kept = append(kept, s)
		}
	}
	o.streamers = kept
	return buf
}

func (o *fakeOutput) playCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.plays
}

// constStream yields n frames of a constant value.
type constStream struct {
	n, pos int
	value  float64
	closed bool
}

func (s *constStream) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= s.n {
		return 0, false
	}
	k := min(len(samples), s.n-s.pos)
	for i := range k {
		samples[i] = [2]float64{s.value, s.value}
	}
	s.pos += k
	return k, true
}

func (s *constStream) Err() error    { return nil }
func (s *constStream) Len() int      { return s.n }
func (s *constStream) Position() int { return s.pos }
func (s *constStream) Close() error  { s.closed = true; return nil }

func (s *constStream) Seek(p int) error {
	s.pos = p
	return nil
}

// recorder collects delivered events.
type recorder struct {
	mu     sync.Mutex
	events []player.Event
}

func (r *recorder) handle(ev player.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) all() []player.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]player.Event(nil), r.events...)
}

func (r *recorder) count(match func(player.Event) bool) int {
	n := 0
	for _, ev := range r.all() {
		if match(ev) {
			n++
		}
	}
	return n
}

func isEnded(ev player.Event) bool {
	_, ok := ev.(player.PlaybackEnded)
	return ok
}

func isTimeUpdate(ev player.Event) bool {
	_, ok := ev.(player.TimeUpdate)
	return ok
}

type activation bool

func (a *activation) Activated() bool { return bool(*a) }

const testRate = beep.SampleRate(1000)

func testFormat() beep.Format {
	return beep.Format{SampleRate: testRate, NumChannels: 2, Precision: 2}
}

func newTestResource(t *testing.T, frames int, opts ...Option) (*Resource, *fakeOutput, *constStream) {
	t.Helper()
	out := &fakeOutput{}
	src := &constStream{n: frames, value: 0.5}
	all := append([]Option{WithOutput(out), WithPolicy(PolicyAllow, nil)}, opts...)
	r, err := newResource(src, testFormat(), Info{Path: "test.wav", Format: "WAV"}, all...)
	if err != nil {
		t.Fatalf("newResource: %v", err)
	}
	return r, out, src
}
