package playerbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/folio/internal/ui/render"
	"github.com/llehouerou/folio/internal/ui/styles"
)

const (
	expandedRows     = 5
	minExpandedWidth = 40
)

const (
	filledBlock = "▓"
	emptyBlock  = "░"
)

func renderExpanded(s State, width int) string {
	t := styles.T()
	innerWidth := max(width-2, 0)
	metaWidth := innerWidth - 2

	album := render.Sanitize(s.Album)
	if album == "" {
		album = "Unknown Album"
	}
	if s.Year > 0 {
		album = fmt.Sprintf("%s (%d)", album, s.Year)
	}

	var detail []string
	if s.Genre != "" {
		detail = append(detail, render.Sanitize(s.Genre))
	}
	if s.Format != "" {
		detail = append(detail, FormatAudioInfo(s.Format, s.SampleRate, s.BitDepth, s.Size))
	}

	head := s.title()
	if s.RetryPending {
		head = t.S().Warning.Render("press any key to start the soundtrack")
	} else {
		head = t.S().Title.Render(render.Truncate(head, metaWidth))
	}

	lines := []string{
		head,
		t.S().Muted.Render(render.Truncate(album, metaWidth)),
		t.S().Subtle.Render(render.Truncate(strings.Join(detail, " · "), metaWidth)),
		"",
		BlockBar(s, metaWidth),
	}
	content := render.Fit(strings.Join(lines, "\n"), expandedRows)
	return t.S().Panel.Width(innerWidth).Render(content)
}

// BlockBar renders the expanded progress line:
// ▶  1:23  ▓▓▓▓▓░░░░░  4:56  vol 80%
func BlockBar(s State, width int) string {
	p := s.progress()
	pos, dur := p.Elapsed(), p.Total()
	vol := VolumeLabel(s.Volume, s.Muted)
	head := s.symbol() + "  " + pos + "  "
	tail := "  " + dur + "  " + vol

	barWidth := width - lipgloss.Width(head) - lipgloss.Width(tail)
	if barWidth < 3 {
		return s.symbol() + "  " + pos + " / " + dur
	}
	filled := min(int(float64(barWidth)*p.Progress()), barWidth)
	bar := lipgloss.NewStyle().Foreground(styles.T().Primary).Render(strings.Repeat(filledBlock, filled)) +
		strings.Repeat(emptyBlock, barWidth-filled)
	return head + bar + tail
}

// FormatAudioInfo describes the stream, for example "FLAC · 44.1 kHz · 24-bit · 31 MB".
func FormatAudioInfo(format string, sampleRate, bitDepth int, size int64) string {
	parts := []string{format}

	if sampleRate > 0 {
		khz := float64(sampleRate) / 1000.0
		if khz == float64(int(khz)) {
			parts = append(parts, fmt.Sprintf("%d kHz", int(khz)))
		} else {
			parts = append(parts, fmt.Sprintf("%.1f kHz", khz))
		}
	}

	if bitDepth > 0 && format != "MP3" && format != "VORBIS" {
		parts = append(parts, fmt.Sprintf("%d-bit", bitDepth))
	}

	if size > 0 {
		parts = append(parts, humanize.Bytes(uint64(size)))
	}

	return strings.Join(parts, " · ")
}

// VolumeLabel renders "vol 80%", or "muted".
func VolumeLabel(volume float64, muted bool) string {
	if muted {
		return "muted"
	}
	return fmt.Sprintf("vol %d%%", int(volume*100+0.5))
}
