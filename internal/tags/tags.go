// Package tags reads the now-playing metadata of the background track.
package tags

import (
	"path/filepath"
	"strconv"
	"strings"
)

const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtOGG  = ".ogg"
	ExtWAV  = ".wav"
)

// Tag is the metadata shown next to the player.
type Tag struct {
	Path        string
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	Genre       string
	Date        string // YYYY or YYYY-MM-DD

	TrackNumber int
	TotalTracks int
}

// Year returns the year part of Date, or 0.
func (t *Tag) Year() int {
	if len(t.Date) < 4 {
		return 0
	}
	y, err := strconv.Atoi(t.Date[:4])
	if err != nil {
		return 0
	}
	return y
}

// Line returns "Title · Artist", or just the title when there is no artist.
func (t *Tag) Line() string {
	if t.Artist == "" {
		return t.Title
	}
	return t.Title + " · " + t.Artist
}

// Fallback builds a Tag from the file name alone.
func Fallback(path string) *Tag {
	return &Tag{Path: path, Title: titleFromPath(path)}
}

func titleFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
