// Package playerbar renders the soundtrack controls at the bottom of the TUI.
package playerbar

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/folio/internal/audio"
	"github.com/llehouerou/folio/internal/player"
	"github.com/llehouerou/folio/internal/tags"
	"github.com/llehouerou/folio/internal/ui/render"
	"github.com/llehouerou/folio/internal/ui/styles"
)

// DisplayMode controls the player bar appearance.
type DisplayMode int

const (
	ModeCompact  DisplayMode = iota // Single-line view
	ModeExpanded                    // Track metadata and a block progress bar
)

const (
	playSymbol  = "▶"
	pauseSymbol = "⏸"
)

// State holds everything needed to render the player bar.
type State struct {
	Status        player.Status
	Position      time.Duration
	Duration      time.Duration
	DurationKnown bool
	RetryPending  bool

	Title  string
	Artist string
	Album  string
	Year   int
	Genre  string

	Format     string
	SampleRate int
	BitDepth   int
	Size       int64

	Volume float64
	Muted  bool

	DisplayMode DisplayMode
}

// Height returns the total height of the player bar for the given mode.
func Height(mode DisplayMode) int {
	if mode == ModeExpanded {
		return expandedRows + 2
	}
	return 3
}

// NewState combines controller state, track tags and stream info.
// Volume and retry fields are left for the caller.
func NewState(ps player.State, tag *tags.Tag, info audio.Info, mode DisplayMode) State {
	s := State{
		Status:        ps.Status,
		Position:      ps.Position,
		Duration:      ps.Duration,
		DurationKnown: ps.DurationKnown,
		Format:        info.Format,
		SampleRate:    info.SampleRate,
		BitDepth:      info.BitDepth,
		Size:          info.Size,
		Volume:        1,
		DisplayMode:   mode,
	}
	if tag != nil {
		s.Title = tag.Title
		s.Artist = tag.Artist
		s.Album = tag.Album
		s.Year = tag.Year()
		s.Genre = tag.Genre
	}
	return s
}

func (s State) progress() player.State {
	return player.State{
		Status:        s.Status,
		Position:      s.Position,
		Duration:      s.Duration,
		DurationKnown: s.DurationKnown,
	}
}

func (s State) symbol() string {
	if s.Status == player.Playing {
		return playSymbol
	}
	return pauseSymbol
}

func (s State) clock() string {
	p := s.progress()
	return p.Elapsed() + " / " + p.Total()
}

func (s State) title() string {
	tag := tags.Tag{Title: render.Sanitize(s.Title), Artist: render.Sanitize(s.Artist)}
	if tag.Title == "" {
		tag.Title = "Untitled"
	}
	return tag.Line()
}

// Render returns the player bar for the given width.
func Render(s State, width int) string {
	if s.DisplayMode == ModeExpanded && width-2 >= minExpandedWidth {
		return renderExpanded(s, width)
	}
	return renderCompact(s, width)
}

func renderCompact(s State, width int) string {
	t := styles.T()
	innerWidth := max(width-6, 0)
	separator := "   "
	sepWidth := lipgloss.Width(separator)

	timeStr := s.clock()
	vol := VolumeLabel(s.Volume, s.Muted)
	status := s.symbol() + "  "
	fixed := lipgloss.Width(status) + lipgloss.Width(timeStr) + lipgloss.Width(vol) + sepWidth*3

	const minBarWidth = 10
	title := s.title()
	if s.RetryPending {
		title = "press any key to start the soundtrack"
	}
	titleWidth := min(lipgloss.Width(title), max(innerWidth-fixed-minBarWidth, 10))
	barWidth := max(innerWidth-fixed-titleWidth, 5)

	titleStyle := t.S().Title
	if s.RetryPending {
		titleStyle = t.S().Warning
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render(render.Truncate(title, titleWidth)))
	content.WriteString(separator)
	content.WriteString(status)
	content.WriteString(Bar(s.progress().Progress(), barWidth))
	content.WriteString(separator)
	content.WriteString(t.S().Muted.Render(timeStr))
	content.WriteString(separator)
	content.WriteString(t.S().Subtle.Render(vol))

	line := render.Truncate(content.String(), innerWidth)
	return t.S().Panel.Padding(0, 2).Width(max(width-2, 0)).Render(line)
}

// Bar renders a ━/─ progress line of the given width.
func Bar(ratio float64, width int) string {
	t := styles.T()
	width = max(width, 0)
	filled := min(max(int(float64(width)*ratio), 0), width)
	return lipgloss.NewStyle().Foreground(t.Primary).Render(strings.Repeat("━", filled)) +
		lipgloss.NewStyle().Foreground(t.FgSubtle).Render(strings.Repeat("─", width-filled))
}
