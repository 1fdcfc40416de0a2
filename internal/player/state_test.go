package player

import (
	"testing"
	"time"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{Idle, "Idle"},
		{Playing, "Playing"},
		{Paused, "Paused"},
		{Status(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.status.String(); got != tt.want {
				t.Errorf("Status.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatus_Started(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{Idle, false},
		{Playing, true},
		{Paused, true},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			if got := tt.status.Started(); got != tt.want {
				t.Errorf("Status.Started() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatus_CanPause(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{Idle, false},
		{Playing, true},
		{Paused, false},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			if got := tt.status.CanPause(); got != tt.want {
				t.Errorf("Status.CanPause() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestState_Progress(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  float64
	}{
		{"unknown duration", State{Position: 10 * time.Second}, 0},
		{"zero duration", State{DurationKnown: true}, 0},
		{"half", State{Position: 50 * time.Second, Duration: 100 * time.Second, DurationKnown: true}, 0.5},
		{"end", State{Position: 100 * time.Second, Duration: 100 * time.Second, DurationKnown: true}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.Progress(); got != tt.want {
				t.Errorf("Progress() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestState_ElapsedAndTotal(t *testing.T) {
	s := State{
		Position:      time.Duration(75.4 * float64(time.Second)),
		Duration:      125 * time.Second,
		DurationKnown: true,
	}
	if got := s.Elapsed(); got != "1:15" {
		t.Errorf("Elapsed() = %q, want 1:15", got)
	}
	if got := s.Total(); got != "2:05" {
		t.Errorf("Total() = %q, want 2:05", got)
	}

	s.DurationKnown = false
	if got := s.Total(); got != "0:00" {
		t.Errorf("Total() with unknown duration = %q, want 0:00", got)
	}
}
