package keymap

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// Contexts group bindings in the help view.
const (
	ContextGlobal     = "global"
	ContextPlayback   = "playback"
	ContextNavigation = "navigation"
	ContextProjects   = "projects"
)

// Binding maps keys to an action, with a description for the help view.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string
}

// Bindings is the full key map.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", ContextGlobal},
	{ActionHelp, []string{"?"}, "Toggle help", ContextGlobal},
	{ActionToggleTheme, []string{"t"}, "Dark/light theme", ContextGlobal},

	// Playback
	{ActionPlayPause, []string{" "}, "Play/pause", ContextPlayback},
	{ActionSeekBack, []string{"shift+left"}, "Seek -5s", ContextPlayback},
	{ActionSeekForward, []string{"shift+right"}, "Seek +5s", ContextPlayback},
	{ActionSeekBackLong, []string{"["}, "Seek -15s", ContextPlayback},
	{ActionSeekForwardLong, []string{"]"}, "Seek +15s", ContextPlayback},
	{ActionTogglePlayerDisplay, []string{"v"}, "Player display", ContextPlayback},
	{ActionToggleMute, []string{"m"}, "Mute", ContextPlayback},
	{ActionVolumeUp, []string{"+", "="}, "Volume up", ContextPlayback},
	{ActionVolumeDown, []string{"-"}, "Volume down", ContextPlayback},

	// Navigation
	{ActionNextSection, []string{"tab"}, "Next section", ContextNavigation},
	{ActionPrevSection, []string{"shift+tab"}, "Previous section", ContextNavigation},
	{ActionScrollDown, []string{"j", "down"}, "Scroll down", ContextNavigation},
	{ActionScrollUp, []string{"k", "up"}, "Scroll up", ContextNavigation},
	{ActionPageDown, []string{"pgdown", "ctrl+d"}, "Page down", ContextNavigation},
	{ActionPageUp, []string{"pgup", "ctrl+u"}, "Page up", ContextNavigation},
	{ActionJumpStart, []string{"g", "home"}, "Top", ContextNavigation},
	{ActionJumpEnd, []string{"G", "end"}, "Bottom", ContextNavigation},

	// Projects
	{ActionCycleFilter, []string{"f"}, "Next technology filter", ContextProjects},
	{ActionClearFilter, []string{"esc"}, "Show all projects", ContextProjects},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// displayKey renders a key for the help view.
func displayKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

// Help adapts bindings to the bubbles help component.
type Help struct {
	short []key.Binding
	full  [][]key.Binding
}

var _ help.KeyMap = Help{}

// NewHelp builds the help key map: the short view shows one binding per
// context, the full view one column per context.
func NewHelp(bindings []Binding) Help {
	var h Help
	columns := map[string]int{}
	for _, b := range bindings {
		keys := make([]string, len(b.Keys))
		for i, k := range b.Keys {
			keys[i] = displayKey(k)
		}
		kb := key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(keys[0], b.Description))

		col, ok := columns[b.Context]
		if !ok {
			col = len(h.full)
			columns[b.Context] = col
			h.full = append(h.full, nil)
			h.short = append(h.short, kb)
		}
		h.full[col] = append(h.full[col], kb)
	}
	return h
}

func (h Help) ShortHelp() []key.Binding  { return h.short }
func (h Help) FullHelp() [][]key.Binding { return h.full }
