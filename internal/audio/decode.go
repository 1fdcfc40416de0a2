package audio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extOGG  = ".ogg"
	extWAV  = ".wav"
)

// Supported reports whether path has an extension Open can decode.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case extMP3, extFLAC, extOGG, extWAV:
		return true
	}
	return false
}

// decodeFile opens path and picks a decoder by extension. The returned file
// must be closed by the caller after the streamer.
func decodeFile(path string) (*os.File, beep.StreamSeekCloser, beep.Format, string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !Supported(path) {
		return nil, nil, beep.Format{}, "", fmt.Errorf("unsupported format: %s", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, beep.Format{}, "", err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		name     string
	)
	switch ext {
	case extMP3:
		streamer, format, err = decodeMP3(f)
		name = "MP3"
	case extFLAC:
		// Some taggers prepend an ID3v2 block the FLAC decoder can't skip.
		if err = skipID3v2(f); err == nil {
			streamer, format, err = flac.Decode(f)
		}
		name = "FLAC"
	case extOGG:
		streamer, format, err = vorbis.Decode(f)
		name = "VORBIS"
	case extWAV:
		streamer, format, err = wav.Decode(f)
		name = "WAV"
	}
	if err != nil {
		f.Close()
		return nil, nil, beep.Format{}, "", fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return f, streamer, format, name, nil
}

// skipID3v2 positions r after a leading ID3v2 tag, or at the start if there
// is none.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := io.ReadFull(r, header)
	if err != nil && n == 0 {
		return err
	}
	if n < 10 || string(header[:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// Syncsafe size: 7 bits per byte.
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(10+size, io.SeekStart)
	return err
}
