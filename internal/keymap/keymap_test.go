package keymap

import (
	"testing"
)

func TestByContext(t *testing.T) {
	tests := []struct {
		context   string
		minLength int
	}{
		{ContextGlobal, 3},
		{ContextPlayback, 8},
		{ContextNavigation, 6},
		{ContextProjects, 2},
		{"unknown", 0},
	}

	for _, tt := range tests {
		t.Run(tt.context, func(t *testing.T) {
			result := ByContext(tt.context)
			if len(result) < tt.minLength {
				t.Errorf("ByContext(%q) returned %d items, expected at least %d", tt.context, len(result), tt.minLength)
			}
			if tt.minLength == 0 && len(result) != 0 {
				t.Errorf("ByContext(%q) returned %d items, expected none", tt.context, len(result))
			}
			for _, b := range result {
				if b.Context != tt.context {
					t.Errorf("binding context = %q, want %q", b.Context, tt.context)
				}
			}
		})
	}
}

func TestBindingsHaveRequiredFields(t *testing.T) {
	for i, b := range Bindings {
		if b.Action == "" {
			t.Errorf("binding[%d] has empty Action", i)
		}
		if len(b.Keys) == 0 {
			t.Errorf("binding[%d] (%s) has no Keys", i, b.Action)
		}
		if b.Description == "" {
			t.Errorf("binding[%d] (%s) has empty Description", i, b.Action)
		}
	}
}

func TestBindingsHaveNoConflicts(t *testing.T) {
	seen := map[string]Action{}
	for _, b := range Bindings {
		for _, k := range b.Keys {
			if prev, ok := seen[k]; ok && prev != b.Action {
				t.Errorf("key %q bound to both %q and %q", k, prev, b.Action)
			}
			seen[k] = b.Action
		}
	}
}

func TestNewHelp(t *testing.T) {
	h := NewHelp(Bindings)

	if got, want := len(h.FullHelp()), 4; got != want {
		t.Fatalf("FullHelp columns = %d, want %d", got, want)
	}
	if got := len(h.ShortHelp()); got != 4 {
		t.Errorf("ShortHelp = %d bindings, want one per context", got)
	}

	play := h.FullHelp()[1][0]
	if play.Help().Key != "space" {
		t.Errorf("play key help = %q, want space", play.Help().Key)
	}
	if len(h.FullHelp()[1]) != len(ByContext(ContextPlayback)) {
		t.Errorf("playback column has %d bindings", len(h.FullHelp()[1]))
	}
}
