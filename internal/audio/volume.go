package audio

import "math"

// SetVolume sets the level (0.0 to 1.0). The level is kept while muted.
func (r *Resource) SetVolume(level float64) {
	level = max(0, min(level, 1))

	r.mu.Lock()
	defer r.mu.Unlock()
	r.volumeLevel = level
	r.out.Lock()
	r.volume.Volume = levelToVolume(level)
	r.out.Unlock()
}

// Volume returns the level (0.0 to 1.0).
func (r *Resource) Volume() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.volumeLevel
}

// SetMuted silences output without touching the level.
func (r *Resource) SetMuted(muted bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.muted = muted
	r.out.Lock()
	r.volume.Silent = muted
	r.out.Unlock()
}

func (r *Resource) Muted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.muted
}

// levelToVolume maps a linear level to beep's base-2 exponent:
// 1.0 -> 0, 0.5 -> -1, 0.25 -> -2, 0 -> -10 (inaudible).
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}
