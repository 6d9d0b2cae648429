// Package visualizer drives the selection state machine: which plane is
// active, whether its track is playing, and when the audio-reactive
// animation runs.
package visualizer

import (
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/iburimskiy/audio-planes/internal/animate"
	"github.com/iburimskiy/audio-planes/internal/config"
	"github.com/iburimskiy/audio-planes/internal/scene"
)

// Phase is the state of the machine. There is no way back to Idle except
// through a failed acquisition.
type Phase int

const (
	Idle Phase = iota
	Selected
	Playing
	Paused
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Selected:
		return "selected"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	}
	return "unknown"
}

// Options configures a Machine.
type Options struct {
	Scene    *scene.Scene
	Acquirer Acquirer
	Clock    *Clock

	// Picker defaults to scene.Picker.
	Picker PickSurface
	// Go runs an acquisition off the update goroutine. Defaults to a goroutine.
	Go     func(func())
	Logger *log.Logger
}

// Machine owns the playback state. All methods except Post must be called
// from the update goroutine.
type Machine struct {
	scene    *scene.Scene
	picker   PickSurface
	acquirer Acquirer
	clock    *Clock
	spawn    func(func())
	logger   *log.Logger

	mu     sync.Mutex
	queue  []Event
	phase  Phase
	active *scene.Target
	handle *Handle

	acquiring bool
	title     string
	now       time.Time
	last      animate.Result
	frames    int

	loop        FrameLoop
	liveness    *Ticker
	clockTicker *Ticker
}

// New creates a machine in the Idle phase.
func New(opts Options) *Machine {
	m := &Machine{
		scene:       opts.Scene,
		picker:      opts.Picker,
		acquirer:    opts.Acquirer,
		clock:       opts.Clock,
		spawn:       opts.Go,
		logger:      opts.Logger,
		liveness:    NewTicker(config.LivenessInterval * time.Second),
		clockTicker: NewTicker(config.ClockInterval * time.Second),
	}
	if m.picker == nil {
		m.picker = scene.Picker{}
	}
	if m.spawn == nil {
		m.spawn = func(f func()) { go f() }
	}
	if m.logger == nil {
		m.logger = log.New(os.Stderr, "visualizer: ", log.LstdFlags)
	}
	return m
}

// Post queues an event for the next Tick. Safe from any goroutine.
func (m *Machine) Post(ev Event) {
	m.mu.Lock()
	m.queue = append(m.queue, ev)
	m.mu.Unlock()
}

func (m *Machine) drain() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	evs := m.queue
	m.queue = nil
	return evs
}

// Tick handles queued events, runs due periodic checks and, while the frame
// loop is scheduled, computes one animation frame.
func (m *Machine) Tick(now time.Time) {
	m.now = now
	for _, ev := range m.drain() {
		m.dispatch(ev)
	}
	if m.phase == Playing && m.liveness.Due(now) {
		m.checkLiveness()
	}
	if m.clock != nil && m.clockTicker.Due(now) {
		m.clock.Update(now)
	}
	if m.loop.Scheduled() && m.handle != nil && m.active != nil {
		m.last = animate.Step(m.handle.Analyzer.Read(), m.active, now)
		m.frames++
	}
}

func (m *Machine) dispatch(ev Event) {
	switch ev := ev.(type) {
	case PickEvent:
		m.pick(ev)
	case ToggleEvent:
		if m.active != nil {
			m.toggle()
		}
	case ResizeEvent:
		m.scene.Layout(ev.Width, ev.Height, m.active != nil)
	case acquiredEvent:
		m.acquired(ev)
	}
}

func (m *Machine) pick(ev PickEvent) {
	hits := m.picker.Intersect(m.scene.Ray(ev.X, ev.Y), m.scene.Targets)
	if m.active == nil {
		if len(hits) == 0 {
			return
		}
		m.selectTarget(hits[0].Target)
		return
	}
	if len(hits) > 0 && hits[0].Target != m.active {
		return
	}
	m.toggle()
}

func (m *Machine) selectTarget(t *scene.Target) {
	if m.acquiring || m.handle != nil {
		return
	}
	m.active = t
	m.phase = Selected
	for _, other := range m.scene.Targets {
		if other != t {
			other.Visible = false
		}
	}
	t.Transform = scene.CanonicalPose

	m.acquiring = true
	m.spawn(func() {
		h, err := m.acquirer.Acquire(t)
		m.Post(acquiredEvent{target: t, handle: h, err: err})
	})
}

func (m *Machine) acquired(ev acquiredEvent) {
	m.acquiring = false
	if ev.err != nil {
		m.logger.Printf("audio acquisition for %s failed: %v", ev.target.ID, ev.err)
		m.rollback()
		return
	}
	if ev.target != m.active || m.handle != nil {
		release(ev.handle)
		return
	}
	m.handle = ev.handle
	m.title = DisplayName(ev.target.AudioFile)
	m.liveness.Start(m.now, false)
	if err := m.handle.Source.Play(); err != nil {
		m.logger.Printf("starting %s failed: %v", ev.target.AudioFile, err)
		m.rollback()
		return
	}
	m.resumeGraph()
	m.startPlaying()
}

// rollback returns a failed selection to Idle with every target visible again.
func (m *Machine) rollback() {
	release(m.handle)
	m.handle = nil
	m.active = nil
	m.title = ""
	m.phase = Idle
	m.liveness.Stop()
	for _, t := range m.scene.Targets {
		t.Visible = true
	}
	m.scene.Layout(m.scene.Width, m.scene.Height, false)
}

func release(h *Handle) {
	if h == nil {
		return
	}
	if c, ok := h.Source.(io.Closer); ok {
		_ = c.Close()
	}
}

func (m *Machine) toggle() {
	if m.handle == nil {
		return
	}
	if m.handle.Source.Paused() {
		if err := m.handle.Source.Play(); err != nil {
			m.logger.Printf("resume failed: %v", err)
			return
		}
		m.resumeGraph()
		m.startPlaying()
		return
	}
	m.handle.Source.Pause()
	if err := m.handle.Graph.Suspend(); err != nil {
		m.logger.Printf("suspending audio graph: %v", err)
	}
	m.phase = Paused
	m.loop.Stop()
	m.clockTicker.Stop()
	if m.clock != nil {
		m.clock.Clear()
	}
}

func (m *Machine) startPlaying() {
	m.phase = Playing
	m.loop.Start()
	if !m.clockTicker.Running() {
		m.clockTicker.Start(m.now, true)
	}
}

func (m *Machine) resumeGraph() {
	if err := m.handle.Graph.Resume(); err != nil {
		m.logger.Printf("resuming audio graph: %v", err)
	}
}

func (m *Machine) checkLiveness() {
	if st := m.handle.Graph.State(); st != GraphRunning {
		m.logger.Printf("audio graph %s, resuming", st)
		m.resumeGraph()
	}
}

func (m *Machine) Phase() Phase { return m.phase }

// Active is the selected target, or nil.
func (m *Machine) Active() *scene.Target { return m.active }

func (m *Machine) Scene() *scene.Scene { return m.scene }

// Title is the display name of the active track once its audio is acquired.
func (m *Machine) Title() string { return m.title }

// Status is "playing" or "paused" once a track has started, else empty.
func (m *Machine) Status() string {
	switch m.phase {
	case Playing, Paused:
		return m.phase.String()
	}
	return ""
}

// ClockText is the clock line, empty unless playing.
func (m *Machine) ClockText() string {
	if m.clock == nil {
		return ""
	}
	return m.clock.Text()
}

// LastFrame is the result of the most recent animation step.
func (m *Machine) LastFrame() animate.Result { return m.last }

// Frames counts animation steps computed so far.
func (m *Machine) Frames() int { return m.frames }

// Animating reports whether the frame loop is scheduled.
func (m *Machine) Animating() bool { return m.loop.Scheduled() }
