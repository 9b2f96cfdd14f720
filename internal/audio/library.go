// Package audio plays the alarm and background-music tracks.
package audio

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
)

// Track names bundled with the app.
const (
	TrackAlarm  = "alarm"
	TrackMusic1 = "music1"
	TrackMusic2 = "music2"
	TrackMusic3 = "music3"
)

// MusicTracks lists the background tracks offered by the timer screen.
var MusicTracks = []string{TrackMusic1, TrackMusic2, TrackMusic3}

// ErrTrackNotFound indicates no asset exists for a track name.
var ErrTrackNotFound = errors.New("track not found")

var extensions = []string{".wav", ".mp3"}

// Library resolves track names to decoded sample buffers.
type Library struct {
	fsys  fs.FS
	mu    sync.Mutex
	cache map[string]*beep.Buffer
}

// NewLibrary creates a library reading assets from fsys.
func NewLibrary(fsys fs.FS) *Library {
	return &Library{
		fsys:  fsys,
		cache: make(map[string]*beep.Buffer),
	}
}

// Load returns the decoded buffer for track, decoding it on first use.
func (library *Library) Load(track string) (*beep.Buffer, error) {
	library.mu.Lock()
	defer library.mu.Unlock()

	if buffer, ok := library.cache[track]; ok {
		return buffer, nil
	}
	if library.fsys == nil || track == "" || strings.ContainsAny(track, `/\`) {
		return nil, fmt.Errorf("%w: %q", ErrTrackNotFound, track)
	}

	for _, ext := range extensions {
		name := track + ext
		if !fs.ValidPath(name) {
			continue
		}
		file, err := library.fsys.Open(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}

		buffer, err := decode(file, path.Ext(name))
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		library.cache[track] = buffer
		return buffer, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrTrackNotFound, track)
}

func decode(file fs.File, ext string) (*beep.Buffer, error) {
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		err      error
	)
	switch ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(file)
	default:
		streamer, format, err = wav.Decode(file)
	}
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, err
	}
	return buffer, nil
}
