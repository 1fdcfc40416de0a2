// Package preloader renders the intro counter shown before the portfolio.
package preloader

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/folio/internal/ui/styles"
)

const frameInterval = time.Second / 30

// TickMsg advances the counter.
type TickMsg time.Time

// DoneMsg is sent once when the intro finishes or is skipped.
type DoneMsg struct{}

// Model counts from 0 to 100 over Duration with an ease-in-out curve, holds
// at 100 until Reveal, then reports DoneMsg. Any key skips it.
type Model struct {
	duration time.Duration
	reveal   time.Duration
	start    time.Time
	now      time.Time
	done     bool
	width    int
	height   int
	bar      progress.Model
}

// New starts the intro at the given time.
func New(duration, reveal time.Duration, start time.Time) Model {
	reveal = max(reveal, duration)
	t := styles.T()
	return Model{
		duration: duration,
		reveal:   reveal,
		start:    start,
		now:      start,
		bar: progress.New(
			progress.WithGradient(string(t.Primary), string(t.Secondary)),
			progress.WithoutPercentage(),
		),
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.done {
		return m, nil
	}
	switch msg := msg.(type) {
	case TickMsg:
		m.now = time.Time(msg)
		if m.Elapsed() >= m.reveal {
			return m.finish()
		}
		return m, tick()
	case tea.KeyMsg:
		return m.finish()
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

func (m Model) finish() (Model, tea.Cmd) {
	m.done = true
	return m, func() tea.Msg { return DoneMsg{} }
}

// Done reports whether the intro has finished or was skipped.
func (m Model) Done() bool {
	return m.done
}

// Elapsed is the time since start, as of the last tick.
func (m Model) Elapsed() time.Duration {
	return max(m.now.Sub(m.start), 0)
}

// Count is the counter value for the last tick.
func (m Model) Count() int {
	return Count(m.Elapsed(), m.duration)
}

// Count returns floor(100 * easeInOutQuad(elapsed / duration)).
func Count(elapsed, duration time.Duration) int {
	if duration <= 0 {
		return 100
	}
	t := min(max(float64(elapsed)/float64(duration), 0), 1)
	return int(math.Floor(100 * EaseInOutQuad(t)))
}

// EaseInOutQuad accelerates through the first half and decelerates
// through the second.
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}

func (m Model) View() string {
	t := styles.T()
	count := m.Count()

	barWidth := max(min(m.width-8, 40), 10)
	m.bar.Width = barWidth

	block := lipgloss.JoinVertical(lipgloss.Center,
		t.Heading(fmt.Sprintf("%3d", count)),
		"",
		m.bar.ViewAs(float64(count)/100),
		"",
		t.S().Subtle.Render("press any key to skip"),
	)
	if m.width == 0 || m.height == 0 {
		return block
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, block)
}
