// Package audio binds the visualizer's capability interfaces to beep:
// decoded looping tracks, the shared speaker output and acquisition.
package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/audio-planes/internal/config"
	"github.com/iburimskiy/audio-planes/internal/spectrum"
)

// ErrUnsupportedFormat is returned for files no decoder handles.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Track is one decoded file, looping forever, paused until Play.
// Chain: decoder -> loop -> tap -> ctrl.
type Track struct {
	Path string

	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	tap      *spectrum.Tap
	ctrl     *beep.Ctrl
	lock     sync.Locker
}

// OpenTrack decodes path. lock guards the pause flag against the output's
// audio callback.
func OpenTrack(path string, lock sync.Locker) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	streamer, format, err := decode(f, filepath.Ext(path))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	tap := spectrum.NewTap(beep.Loop(-1, streamer), config.TapRingSize)
	return &Track{
		Path:     path,
		file:     f,
		streamer: streamer,
		format:   format,
		tap:      tap,
		ctrl:     &beep.Ctrl{Streamer: tap, Paused: true},
		lock:     lock,
	}, nil
}

func decode(f *os.File, ext string) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(ext) {
	case ".wav":
		return wav.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	case ".ogg", ".oga":
		return vorbis.Decode(f)
	}
	return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

func (t *Track) Play() error {
	t.lock.Lock()
	t.ctrl.Paused = false
	t.lock.Unlock()
	return nil
}

func (t *Track) Pause() {
	t.lock.Lock()
	t.ctrl.Paused = true
	t.lock.Unlock()
}

func (t *Track) Paused() bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.ctrl.Paused
}

func (t *Track) Format() beep.Format { return t.format }

// Tap exposes the recorded samples for spectrum analysis.
func (t *Track) Tap() *spectrum.Tap { return t.tap }

func (t *Track) Close() error {
	err := t.streamer.Close()
	if cerr := t.file.Close(); err == nil && !errors.Is(cerr, os.ErrClosed) {
		err = cerr
	}
	return err
}
