package visualizer

import "github.com/iburimskiy/audio-planes/internal/scene"

// Event is an input consumed by Machine.Tick.
type Event interface{ isEvent() }

// PickEvent is a pointer press at viewport pixel (X, Y).
type PickEvent struct{ X, Y float64 }

// ToggleEvent flips play/pause once a target is active.
type ToggleEvent struct{}

// ResizeEvent reports a new viewport size.
type ResizeEvent struct{ Width, Height int }

type acquiredEvent struct {
	target *scene.Target
	handle *Handle
	err    error
}

func (PickEvent) isEvent()     {}
func (ToggleEvent) isEvent()   {}
func (ResizeEvent) isEvent()   {}
func (acquiredEvent) isEvent() {}
