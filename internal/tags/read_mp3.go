package tags

import (
	"strconv"
	"strings"

	"github.com/bogem/id3v2/v2"
)

// readMP3WithID3v2 reads MP3 metadata with the id3v2 library alone.
func readMP3WithID3v2(path string) (*Tag, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	defer id3tag.Close()

	title := id3tag.Title()
	if title == "" {
		title = titleFromPath(path)
	}
	artist := id3tag.Artist()
	albumArtist := getID3TextFrame(id3tag, "TPE2")
	if albumArtist == "" {
		albumArtist = artist
	}

	date := getID3TextFrame(id3tag, "TDRC")
	if date == "" {
		if y := id3tag.Year(); len(y) >= 4 {
			date = y[:4]
		}
	}
	track, total := parseTrackNumber(getID3TextFrame(id3tag, "TRCK"))

	return &Tag{
		Path:        path,
		Title:       title,
		Artist:      artist,
		AlbumArtist: albumArtist,
		Album:       id3tag.Album(),
		Genre:       id3tag.Genre(),
		Date:        date,
		TrackNumber: track,
		TotalTracks: total,
	}, nil
}

// parseTrackNumber parses "5" or "5/10".
func parseTrackNumber(s string) (num, total int) {
	if s == "" {
		return 0, 0
	}
	parts := strings.SplitN(s, "/", 2)
	num, _ = strconv.Atoi(parts[0])
	if len(parts) == 2 {
		total, _ = strconv.Atoi(parts[1])
	}
	return num, total
}

func getID3TextFrame(id3tag *id3v2.Tag, frameID string) string {
	frames := id3tag.GetFrames(frameID)
	if len(frames) == 0 {
		return ""
	}
	if tf, ok := frames[0].(id3v2.TextFrame); ok {
		return tf.Text
	}
	return ""
}
