package audio

import (
	"errors"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/audio-planes/internal/scene"
	"github.com/iburimskiy/audio-planes/internal/visualizer"
)

type fakeSink struct {
	sync.Mutex
	initRate beep.SampleRate
	inits    int
	played   []beep.Streamer
	clears   int
}

func (s *fakeSink) Init(sr beep.SampleRate, bufferSize int) error {
	s.inits++
	s.initRate = sr
	return nil
}

func (s *fakeSink) Play(st ...beep.Streamer) { s.played = append(s.played, st...) }

func (s *fakeSink) Clear() {
	s.clears++
	s.played = nil
}

// pull drains n samples from everything the sink is playing.
func (s *fakeSink) pull(n int) {
	buf := make([][2]float64, n)
	for _, st := range s.played {
		st.Stream(buf)
	}
}

func writeSine(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	format := beep.Format{SampleRate: 8000, NumChannels: 2, Precision: 2}
	i := 0
	tone := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if i >= 8000 {
			return 0, false
		}
		n := 0
		for ; n < len(samples) && i < 8000; n++ {
			v := 0.8 * math.Sin(2*math.Pi*440*float64(i)/8000)
			samples[n] = [2]float64{v, v}
			i++
		}
		return n, true
	})
	if err := wav.Encode(f, tone, format); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestAcquirer(t *testing.T) (*Acquirer, *fakeSink, string) {
	dir := t.TempDir()
	writeSine(t, dir, "tone.wav")
	sink := &fakeSink{}
	a := NewAcquirer(dir, NewOutput(sink))
	a.Logger = log.New(io.Discard, "", 0)
	return a, sink, dir
}

func TestOpenTrackUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "IORI-Neophoca.m4a")
	if err := os.WriteFile(path, []byte("not audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := OpenTrack(path, &sync.Mutex{})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestOpenTrackMissing(t *testing.T) {
	_, err := OpenTrack(filepath.Join(t.TempDir(), "nope.mp3"), &sync.Mutex{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}

func TestTrackStartsPaused(t *testing.T) {
	path := writeSine(t, t.TempDir(), "a.wav")
	tr, err := OpenTrack(path, &sync.Mutex{})
	if err != nil {
		t.Fatal(err)
	}
	defer tr.Close()

	if !tr.Paused() {
		t.Fatal("new track is playing")
	}
	if err := tr.Play(); err != nil || tr.Paused() {
		t.Fatalf("Play: err=%v paused=%v", err, tr.Paused())
	}
	tr.Pause()
	if !tr.Paused() {
		t.Fatal("Pause had no effect")
	}
}

func TestResolve(t *testing.T) {
	a := &Acquirer{Root: "public"}
	if got, want := a.Resolve("/ganga_blues.mp3"), filepath.Join("public", "ganga_blues.mp3"); got != want {
		t.Fatalf("Resolve = %q, want %q", got, want)
	}
	if got := a.Resolve("file:///home/me/song.flac"); got != "/home/me/song.flac" {
		t.Fatalf("Resolve(file://) = %q", got)
	}
}

func TestAcquirePlaysIntoAnalyzer(t *testing.T) {
	a, sink, _ := newTestAcquirer(t)
	target := scene.NewTarget("left", "/tone.wav", scene.ThemeGreen)

	h, err := a.Acquire(target)
	if err != nil {
		t.Fatal(err)
	}
	if sink.inits != 1 || sink.initRate != 8000 {
		t.Fatalf("sink init = %d @ %d Hz, want once @ 8000", sink.inits, sink.initRate)
	}
	if h.Graph.State() != visualizer.GraphSuspended {
		t.Fatalf("graph = %s before resume, want suspended", h.Graph.State())
	}

	if got := h.Analyzer.Read().Mean(); got != 0 {
		t.Fatalf("mean = %v before playback, want 0", got)
	}

	if err := h.Source.Play(); err != nil {
		t.Fatal(err)
	}
	if err := h.Graph.Resume(); err != nil {
		t.Fatal(err)
	}
	sink.pull(1024)

	if got := h.Analyzer.Read().Mean(); got == 0 {
		t.Fatal("analyzer silent while the track plays")
	}
	if h.Graph.State() != visualizer.GraphRunning {
		t.Fatalf("graph = %s, want running", h.Graph.State())
	}
}

func TestAcquireRejectsSecondTrack(t *testing.T) {
	a, _, dir := newTestAcquirer(t)
	writeSine(t, dir, "other.wav")

	if _, err := a.Acquire(scene.NewTarget("left", "/tone.wav", scene.ThemeGreen)); err != nil {
		t.Fatal(err)
	}
	_, err := a.Acquire(scene.NewTarget("right", "/other.wav", scene.ThemePurple))
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("err = %v, want ErrBusy", err)
	}
}

func TestAcquireMissingFile(t *testing.T) {
	a, sink, _ := newTestAcquirer(t)
	if _, err := a.Acquire(scene.NewTarget("left", "/missing.mp3", scene.ThemeGreen)); err == nil {
		t.Fatal("expected error for missing file")
	}
	if sink.inits != 0 {
		t.Fatal("speaker initialised for a failed acquisition")
	}
}

func TestOutputDetectsStallAndReplays(t *testing.T) {
	a, sink, _ := newTestAcquirer(t)
	clock := time.Unix(100, 0)
	a.Output.now = func() time.Time { return clock }

	h, err := a.Acquire(scene.NewTarget("left", "/tone.wav", scene.ThemeGreen))
	if err != nil {
		t.Fatal(err)
	}
	h.Source.Play()
	h.Graph.Resume()
	if sink.clears != 0 {
		t.Fatal("resume from suspended replayed the graph")
	}

	clock = clock.Add(2 * time.Second)
	if st := h.Graph.State(); st != visualizer.GraphInterrupted {
		t.Fatalf("graph = %s after 2s without pulls, want interrupted", st)
	}
	if err := h.Graph.Resume(); err != nil {
		t.Fatal(err)
	}
	if sink.clears != 1 || len(sink.played) != 1 {
		t.Fatalf("clears = %d played = %d, want graph handed back once", sink.clears, len(sink.played))
	}
	if st := h.Graph.State(); st != visualizer.GraphRunning {
		t.Fatalf("graph = %s after resume, want running", st)
	}

	// repeated resumes are harmless
	h.Graph.Resume()
	h.Graph.Resume()
	if sink.clears != 1 {
		t.Fatalf("clears = %d, want 1", sink.clears)
	}
}

func TestOutputPausedTrackIsNotStalled(t *testing.T) {
	a, _, _ := newTestAcquirer(t)
	clock := time.Unix(100, 0)
	a.Output.now = func() time.Time { return clock }

	h, err := a.Acquire(scene.NewTarget("left", "/tone.wav", scene.ThemeGreen))
	if err != nil {
		t.Fatal(err)
	}
	h.Graph.Resume()
	clock = clock.Add(time.Minute)
	if st := h.Graph.State(); st != visualizer.GraphRunning {
		t.Fatalf("graph = %s with a paused track, want running", st)
	}
	h.Graph.Suspend()
	if st := h.Graph.State(); st != visualizer.GraphSuspended {
		t.Fatalf("graph = %s, want suspended", st)
	}
}

func TestOutputResumeWithoutTrack(t *testing.T) {
	o := NewOutput(&fakeSink{})
	if o.State() != visualizer.GraphSuspended {
		t.Fatal("empty output not suspended")
	}
	if err := o.Resume(); err == nil {
		t.Fatal("expected error resuming an empty output")
	}
	if err := o.Suspend(); err != nil {
		t.Fatalf("Suspend on empty output: %v", err)
	}
}
