package preloader

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	introDuration = 2500 * time.Millisecond
	introReveal   = 2800 * time.Millisecond
)

func TestCount(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 0},
		{-time.Second, 0},
		{625 * time.Millisecond, 12},
		{1250 * time.Millisecond, 50},
		{1875 * time.Millisecond, 87},
		{introDuration, 100},
		{time.Hour, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Count(tt.elapsed, introDuration), "elapsed %v", tt.elapsed)
	}
	assert.Equal(t, 100, Count(time.Second, 0))
}

func TestCount_Monotonic(t *testing.T) {
	prev := 0
	for ms := 0; ms <= 2500; ms += 10 {
		c := Count(time.Duration(ms)*time.Millisecond, introDuration)
		assert.GreaterOrEqual(t, c, prev)
		prev = c
	}
}

func TestEaseInOutQuad(t *testing.T) {
	assert.InDelta(t, 0.0, EaseInOutQuad(0), 1e-12)
	assert.InDelta(t, 0.5, EaseInOutQuad(0.5), 1e-12)
	assert.InDelta(t, 1.0, EaseInOutQuad(1), 1e-12)
	assert.InDelta(t, 1-EaseInOutQuad(0.2), EaseInOutQuad(0.8), 1e-12, "symmetric")
}

func TestUpdate_HoldsAtHundredUntilReveal(t *testing.T) {
	start := time.Unix(0, 0)
	m := New(introDuration, introReveal, start)

	m, cmd := m.Update(TickMsg(start.Add(introDuration)))
	assert.Equal(t, 100, m.Count())
	assert.False(t, m.Done())
	require.NotNil(t, cmd)

	m, cmd = m.Update(TickMsg(start.Add(introReveal)))
	assert.True(t, m.Done())
	require.NotNil(t, cmd)
	assert.Equal(t, DoneMsg{}, cmd())

	_, cmd = m.Update(TickMsg(start.Add(introReveal + time.Second)))
	assert.Nil(t, cmd, "done only fires once")
}

func TestUpdate_KeySkips(t *testing.T) {
	start := time.Unix(0, 0)
	m := New(introDuration, introReveal, start)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	assert.True(t, m.Done())
	require.NotNil(t, cmd)
	assert.Equal(t, DoneMsg{}, cmd())
}

func TestNew_RevealNeverBeforeDuration(t *testing.T) {
	start := time.Unix(0, 0)
	m := New(introDuration, time.Second, start)

	m, _ = m.Update(TickMsg(start.Add(2 * time.Second)))
	assert.False(t, m.Done())
}

func TestView(t *testing.T) {
	start := time.Unix(0, 0)
	m := New(introDuration, introReveal, start)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 60, Height: 10})
	m, _ = m.Update(TickMsg(start.Add(1250 * time.Millisecond)))

	view := m.View()
	assert.Contains(t, view, "skip")
}
