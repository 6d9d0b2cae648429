package visualizer

import (
	"github.com/iburimskiy/audio-planes/internal/scene"
	"github.com/iburimskiy/audio-planes/internal/spectrum"
)

// AudioSource is a playable, pausable track.
type AudioSource interface {
	Play() error
	Pause()
	Paused() bool
}

// SpectrumAnalyzer snapshots the current spectrum without blocking.
type SpectrumAnalyzer interface {
	Read() spectrum.Frame
}

// GraphState is the run state of the audio processing graph.
type GraphState int

const (
	GraphRunning GraphState = iota
	GraphSuspended
	// GraphInterrupted means the output stopped pulling audio on its own.
	GraphInterrupted
)

func (s GraphState) String() string {
	switch s {
	case GraphRunning:
		return "running"
	case GraphSuspended:
		return "suspended"
	case GraphInterrupted:
		return "interrupted"
	}
	return "unknown"
}

// Graph is the shared audio processing graph between a source and the output.
// Resume must be safe to call repeatedly.
type Graph interface {
	State() GraphState
	Suspend() error
	Resume() error
}

// PickSurface answers ray hit queries, nearest hit first.
type PickSurface interface {
	Intersect(ray scene.Ray, candidates []*scene.Target) []scene.Hit
}

// Handle bundles everything acquired for the active target.
type Handle struct {
	Source   AudioSource
	Analyzer SpectrumAnalyzer
	Graph    Graph
}

// Acquirer opens the audio for a target. It may block; the machine calls it
// off the update goroutine.
type Acquirer interface {
	Acquire(target *scene.Target) (*Handle, error)
}

// AcquirerFunc adapts a function to Acquirer.
type AcquirerFunc func(target *scene.Target) (*Handle, error)

func (f AcquirerFunc) Acquire(target *scene.Target) (*Handle, error) { return f(target) }
