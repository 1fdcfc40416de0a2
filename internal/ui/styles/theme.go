// Package styles holds the color themes and shared lipgloss styles.
package styles

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme names.
const (
	Dark  = "dark"
	Light = "light"
)

// Theme defines the color palette and pre-built styles for the application.
type Theme struct {
	Name string

	// Brand/accent colors
	Primary   lipgloss.Color // headings, active section, progress fill
	Secondary lipgloss.Color // gradient end, tags

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	BgBase   lipgloss.Color
	BgCursor lipgloss.Color

	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color

	stylesOnce sync.Once
	styles     *Styles
}

// Styles contains pre-built lipgloss styles for common UI patterns.
type Styles struct {
	Base    lipgloss.Style
	Muted   lipgloss.Style
	Subtle  lipgloss.Style
	Title   lipgloss.Style
	Active  lipgloss.Style // current section, playing indicator
	Tag     lipgloss.Style
	Link    lipgloss.Style
	Cursor  lipgloss.Style
	Panel   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
}

var darkTheme = Theme{
	Name:      Dark,
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	BgBase:   lipgloss.Color("#1a1a1a"),
	BgCursor: lipgloss.Color("#303030"),

	Border:      lipgloss.Color("#585858"),
	BorderFocus: lipgloss.Color("#a78bfa"),

	Success: lipgloss.Color("#42b883"),
	Error:   lipgloss.Color("#ff5555"),
	Warning: lipgloss.Color("#f1a208"),
}

var lightTheme = Theme{
	Name:      Light,
	Primary:   lipgloss.Color("#6d28d9"),
	Secondary: lipgloss.Color("#b45309"),

	FgBase:   lipgloss.Color("#1f1f1f"),
	FgMuted:  lipgloss.Color("#5c5c5c"),
	FgSubtle: lipgloss.Color("#8a8a8a"),

	BgBase:   lipgloss.Color("#fafafa"),
	BgCursor: lipgloss.Color("#e4e4e7"),

	Border:      lipgloss.Color("#a1a1aa"),
	BorderFocus: lipgloss.Color("#6d28d9"),

	Success: lipgloss.Color("#15803d"),
	Error:   lipgloss.Color("#b91c1c"),
	Warning: lipgloss.Color("#b45309"),
}

var (
	mu      sync.RWMutex
	current = &darkTheme
)

// T returns the active theme.
func T() *Theme {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Get returns the named theme, falling back to dark for unknown names.
func Get(name string) *Theme {
	if strings.EqualFold(strings.TrimSpace(name), Light) {
		return &lightTheme
	}
	return &darkTheme
}

// SetTheme makes the named theme active and returns it.
func SetTheme(name string) *Theme {
	t := Get(name)
	mu.Lock()
	current = t
	mu.Unlock()
	return t
}

// Toggle switches between dark and light and returns the new active theme.
func Toggle() *Theme {
	if T().Name == Dark {
		return SetTheme(Light)
	}
	return SetTheme(Dark)
}

// Other returns the name of the theme Toggle would switch to.
func (t *Theme) Other() string {
	if t.Name == Dark {
		return Light
	}
	return Dark
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		t.styles = t.buildStyles()
	})
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:   base,
		Muted:  lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:  base.Bold(true),
		Active: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),
		Tag: lipgloss.NewStyle().
			Foreground(t.Secondary),
		Link: lipgloss.NewStyle().
			Foreground(t.Primary).
			Underline(true),
		Cursor: lipgloss.NewStyle().
			Background(t.BgCursor).
			Foreground(t.FgBase),
		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		Success: lipgloss.NewStyle().Foreground(t.Success),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
	}
}

// PanelStyle returns the panel style, highlighted when focused.
func (t *Theme) PanelStyle(focused bool) lipgloss.Style {
	if focused {
		return t.S().Panel.BorderForeground(t.BorderFocus)
	}
	return t.S().Panel
}
