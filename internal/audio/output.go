package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// Output is the mixer a Resource plays into. Lock must be held while the
// mixer's streamers are touched from outside the mixer goroutine.
type Output interface {
	// Init prepares the output for a stream at rate and returns the rate the
	// output actually runs at.
	Init(rate beep.SampleRate) (beep.SampleRate, error)
	Play(s beep.Streamer)
	Lock()
	Unlock()
}

// Speaker is the process-wide audio device. It is initialized once, at the
// rate of the first stream opened on it.
var Speaker Output = &speakerOutput{}

type speakerOutput struct {
	mu   sync.Mutex
	rate beep.SampleRate
}

func (s *speakerOutput) Init(rate beep.SampleRate) (beep.SampleRate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rate != 0 {
		return s.rate, nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return 0, err
	}
	s.rate = rate
	return rate, nil
}

func (s *speakerOutput) Play(st beep.Streamer) { speaker.Play(st) }
func (s *speakerOutput) Lock()                 { speaker.Lock() }
func (s *speakerOutput) Unlock()               { speaker.Unlock() }
