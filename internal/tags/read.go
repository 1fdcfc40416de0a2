package tags

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dhowden/tag"
)

// Read reads tag metadata from an audio file.
func Read(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		// dhowden/tag chokes on some UTF-16 ID3 frames.
		if strings.ToLower(filepath.Ext(path)) == ExtMP3 {
			return readMP3WithID3v2(path)
		}
		return nil, err
	}

	title := m.Title()
	if title == "" {
		title = titleFromPath(path)
	}
	albumArtist := m.AlbumArtist()
	if albumArtist == "" {
		albumArtist = m.Artist()
	}
	track, total := m.Track()

	return &Tag{
		Path:        path,
		Title:       title,
		Artist:      m.Artist(),
		AlbumArtist: albumArtist,
		Album:       m.Album(),
		Genre:       m.Genre(),
		Date:        yearToDate(m.Year()),
		TrackNumber: track,
		TotalTracks: total,
	}, nil
}

// ReadOrFallback never fails; unreadable tags yield a file-name title.
func ReadOrFallback(path string) *Tag {
	t, err := Read(path)
	if err != nil {
		return Fallback(path)
	}
	return t
}

func yearToDate(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}
