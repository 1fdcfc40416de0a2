package audio

import (
	"github.com/gopxl/beep/v2"
)

var _ beep.Streamer = (*trackStreamer)(nil)

// trackStreamer keeps a finished track in the mixer. When the source runs
// out it either rewinds (loop) or reports the end once and streams silence
// until rewound.
//
// All methods run under the output lock.
type trackStreamer struct {
	src   beep.Streamer
	seek  beep.StreamSeeker
	loop  bool
	ended bool
	onEnd func()
}

func (t *trackStreamer) Stream(samples [][2]float64) (int, bool) {
	n := 0
	// progress counts frames since the last rewind so an empty source
	// can't spin forever in loop mode.
	progress := -1
	for n < len(samples) && !t.ended {
		m, ok := t.src.Stream(samples[n:])
		n += m
		if progress >= 0 {
			progress += m
		}
		if ok {
			if m == 0 {
				break
			}
			continue
		}

		if t.loop && progress != 0 && t.seek.Seek(0) == nil {
			progress = 0
			continue
		}
		t.ended = true
		if t.onEnd != nil {
			t.onEnd()
		}
	}
	clear(samples[n:])
	return len(samples), true
}

func (t *trackStreamer) Err() error {
	return t.src.Err()
}

// rewind clears the end marker after the source was sought.
func (t *trackStreamer) rewind() {
	t.ended = false
}
