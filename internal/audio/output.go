package audio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"github.com/iburimskiy/audio-planes/internal/visualizer"
)

// stallTimeout is how long a playing output may go without pulling samples
// before it counts as interrupted.
const stallTimeout = 500 * time.Millisecond

// ErrBusy is returned when a second track is attached to the output.
var ErrBusy = errors.New("audio output already has a track")

// Sink is the device the output plays into.
type Sink interface {
	sync.Locker
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Clear()
}

// Speaker is the system speaker.
type Speaker struct{}

func (Speaker) Init(sr beep.SampleRate, bufferSize int) error { return speaker.Init(sr, bufferSize) }
func (Speaker) Play(s ...beep.Streamer)                       { speaker.Play(s...) }
func (Speaker) Clear()                                        { speaker.Clear() }
func (Speaker) Lock()                                         { speaker.Lock() }
func (Speaker) Unlock()                                       { speaker.Unlock() }

// Output is the process-wide processing graph: one track, gated, feeding the
// sink. The sink is initialised on first Attach and never torn down.
type Output struct {
	sink Sink
	now  func() time.Time

	mu       sync.Mutex
	initDone bool
	track    *Track
	gate     *beep.Ctrl
	since    time.Time
}

func NewOutput(sink Sink) *Output {
	return &Output{sink: sink, now: time.Now}
}

// Locker guards state shared with the sink's audio callback.
func (o *Output) Locker() sync.Locker { return o.sink }

// Attach connects t to the sink, suspended until Resume.
func (o *Output) Attach(t *Track) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.track != nil {
		return ErrBusy
	}
	if !o.initDone {
		sr := t.format.SampleRate
		if err := o.sink.Init(sr, sr.N(time.Second/20)); err != nil {
			return fmt.Errorf("init speaker: %w", err)
		}
		o.initDone = true
	}
	o.track = t
	o.gate = &beep.Ctrl{Streamer: t.ctrl, Paused: true}
	o.since = o.now()
	o.sink.Play(o.gate)
	return nil
}

func (o *Output) State() visualizer.GraphState {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.track == nil || o.gatePaused() {
		return visualizer.GraphSuspended
	}
	if o.stalled() {
		return visualizer.GraphInterrupted
	}
	return visualizer.GraphRunning
}

func (o *Output) Suspend() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.track == nil {
		return nil
	}
	o.sink.Lock()
	o.gate.Paused = true
	o.sink.Unlock()
	return nil
}

// Resume reopens the gate and, if the sink stopped pulling on its own,
// hands the graph to it again.
func (o *Output) Resume() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.track == nil {
		return errors.New("no track attached")
	}

	replay := !o.gatePaused() && o.stalled()
	o.sink.Lock()
	o.gate.Paused = false
	o.sink.Unlock()
	if replay {
		o.sink.Clear()
		o.sink.Play(o.gate)
	}
	o.since = o.now()
	return nil
}

func (o *Output) gatePaused() bool {
	o.sink.Lock()
	defer o.sink.Unlock()
	return o.gate.Paused
}

// stalled reports a playing track whose samples stopped being pulled.
func (o *Output) stalled() bool {
	if o.track.Paused() {
		return false
	}
	last := o.track.tap.LastPull()
	if o.since.After(last) {
		last = o.since
	}
	return o.now().Sub(last) > stallTimeout
}
