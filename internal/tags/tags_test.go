package tags

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTag_Year(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"", 0},
		{"2024", 2024},
		{"2019-05-01", 2019},
		{"19", 0},
		{"abcd", 0},
	}
	for _, tt := range tests {
		tag := Tag{Date: tt.date}
		assert.Equal(t, tt.want, tag.Year(), tt.date)
	}
}

func TestTag_Line(t *testing.T) {
	assert.Equal(t, "Theme", (&Tag{Title: "Theme"}).Line())
	assert.Equal(t, "Theme · Me", (&Tag{Title: "Theme", Artist: "Me"}).Line())
}

func TestReadOrFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ambient loop.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0o600); err != nil {
		t.Fatal(err)
	}

	got := ReadOrFallback(path)
	assert.Equal(t, "ambient loop", got.Title)
	assert.Equal(t, path, got.Path)

	missing := ReadOrFallback(filepath.Join(dir, "missing.mp3"))
	assert.Equal(t, "missing", missing.Title)
}
