// internal/player/state.go
package player

import "time"

// Status represents the playback state machine.
//
// The state machine has three states with the following valid transitions:
//
//	┌──────────┐  play succeeds  ┌──────────┐
//	│   Idle   │ ───────────────▶│  Playing │
//	└──────────┘                 └──────────┘
//	                               │     ▲
//	                 pause / ended │     │ play succeeds
//	                               ▼     │
//	                             ┌──────────┐
//	                             │  Paused  │
//	                             └──────────┘
//
// Valid transitions:
//   - Idle    → Playing (first successful Play or PlaybackStarted)
//   - Playing → Paused  (Pause, PlaybackPaused, PlaybackEnded)
//   - Paused  → Playing (Play)
//   - any     → Paused  (PlaybackEnded, with the position rewound to 0)
//
// Invalid/No-op transitions (handled gracefully):
//   - Idle    → Paused  via Pause (ignored)
//   - Paused  → Paused  (ignored)
//   - Playing → Playing (ignored)
//
// A rejected Play leaves the status where it was. No state is terminal.
type Status int

const (
	Idle Status = iota
	Playing
	Paused
)

// String returns the status name for debugging.
func (s Status) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// Started returns true once playback has succeeded at least once.
func (s Status) Started() bool {
	return s == Playing || s == Paused
}

// CanPause returns true if the status allows pausing.
func (s Status) CanPause() bool {
	return s == Playing
}

// State is the read-only projection of the controller handed to hosts.
type State struct {
	Status        Status
	Position      time.Duration
	Duration      time.Duration
	DurationKnown bool
}

// Progress returns the played fraction in [0, 1], or 0 while the duration
// is unknown.
func (s State) Progress() float64 {
	if !s.DurationKnown || s.Duration <= 0 {
		return 0
	}
	return min(max(float64(s.Position)/float64(s.Duration), 0), 1)
}

// Elapsed formats the position as m:ss.
func (s State) Elapsed() string {
	return FormatClock(s.Position, true)
}

// Total formats the duration as m:ss, or 0:00 while it is unknown.
func (s State) Total() string {
	return FormatClock(s.Duration, s.DurationKnown)
}

// clamp bounds a position to [0, Duration] when the duration is known and
// to [0, ∞) otherwise.
func (s State) clamp(pos time.Duration) time.Duration {
	if pos < 0 {
		return 0
	}
	if s.DurationKnown && pos > s.Duration {
		return s.Duration
	}
	return pos
}
