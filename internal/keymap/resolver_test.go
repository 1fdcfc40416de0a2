package keymap

import (
	"slices"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver([]Binding{
		{ActionQuit, []string{"q", "ctrl+c"}, "Quit", ContextGlobal},
		{ActionPlayPause, []string{" "}, "Play/pause", ContextPlayback},
		{ActionScrollUp, []string{"k", "up"}, "Scroll up", ContextNavigation},
	})

	tests := []struct {
		key      string
		expected Action
	}{
		{"q", ActionQuit},
		{"ctrl+c", ActionQuit},
		{" ", ActionPlayPause},
		{"k", ActionScrollUp},
		{"up", ActionScrollUp},
		{"unknown", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if result := r.Resolve(tt.key); result != tt.expected {
				t.Errorf("Resolve(%q) = %q, want %q", tt.key, result, tt.expected)
			}
		})
	}
}

func TestResolver_ResolveMsg(t *testing.T) {
	r := Default()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected Action
	}{
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, ActionPlayPause},
		{"shift+left", tea.KeyMsg{Type: tea.KeyShiftLeft}, ActionSeekBack},
		{"shift+right", tea.KeyMsg{Type: tea.KeyShiftRight}, ActionSeekForward},
		{"bracket", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{']'}}, ActionSeekForwardLong},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, ActionNextSection},
		{"theme", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}}, ActionToggleTheme},
		{"unbound", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.ResolveMsg(tt.msg); got != tt.expected {
				t.Errorf("ResolveMsg(%q) = %q, want %q", tt.msg.String(), got, tt.expected)
			}
		})
	}
}

func TestResolver_KeysFor(t *testing.T) {
	r := Default()

	if keys := r.KeysFor(ActionVolumeUp); !slices.Equal(keys, []string{"+", "="}) {
		t.Errorf("KeysFor(volume_up) = %v", keys)
	}
	if keys := r.KeysFor(Action("unknown")); keys != nil {
		t.Errorf("KeysFor(unknown) = %v, want nil", keys)
	}
}

func TestResolver_DeduplicatesKeys(t *testing.T) {
	r := NewResolver([]Binding{
		{ActionPlayPause, []string{" ", "p"}, "Play/pause", ContextPlayback},
		{ActionPlayPause, []string{"p"}, "Play/pause", ContextGlobal},
	})

	if keys := r.KeysFor(ActionPlayPause); !slices.Equal(keys, []string{" ", "p"}) {
		t.Errorf("KeysFor = %v, want [\" \" p]", keys)
	}
}

func TestResolver_EmptyBindings(t *testing.T) {
	r := NewResolver(nil)

	if action := r.Resolve("q"); action != "" {
		t.Errorf("Resolve on empty resolver should return empty, got %q", action)
	}
	if keys := r.KeysFor(ActionQuit); keys != nil {
		t.Errorf("KeysFor on empty resolver should return nil, got %v", keys)
	}
}

func TestDedupe(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"no duplicates", []string{"a", "b", "c"}, []string{"a", "b", "c"}},
		{"with duplicates", []string{"a", "b", "a", "c", "b"}, []string{"a", "b", "c"}},
		{"empty slice", []string{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := dedupe(tt.input); !slices.Equal(result, tt.expected) {
				t.Errorf("dedupe(%v) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}
