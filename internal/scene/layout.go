package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/iburimskiy/audio-planes/internal/config"
)

// Profile is one responsive arrangement of unselected targets.
type Profile struct {
	Name    string
	Slots   []mgl64.Vec3
	Scale   float64
	CameraZ float64
}

var (
	// Compact stacks the targets vertically for narrow viewports.
	Compact = Profile{
		Name:    "compact",
		Slots:   []mgl64.Vec3{{0, 1.2, 0}, {0, -1.2, 0}},
		Scale:   0.35,
		CameraZ: 7,
	}
	// Wide places the targets side by side.
	Wide = Profile{
		Name:    "wide",
		Slots:   []mgl64.Vec3{{-2, 0, 0}, {2, 0, 0}},
		Scale:   0.5,
		CameraZ: 5,
	}
)

// ProfileFor picks the profile for a viewport width.
func ProfileFor(width int) Profile {
	if width < config.CompactBreakpoint {
		return Compact
	}
	return Wide
}

// Slot returns the position of target i out of n.
func (p Profile) Slot(i, n int) mgl64.Vec3 {
	if n == 1 || i < 0 || i >= len(p.Slots) {
		return mgl64.Vec3{}
	}
	return p.Slots[i]
}

// Scene is the set of targets and the camera viewing them.
type Scene struct {
	Targets []*Target
	Camera  *Camera

	Width, Height int
}

// New creates a scene for a width x height viewport and lays it out.
func New(width, height int, targets ...*Target) *Scene {
	s := &Scene{
		Targets: targets,
		Camera:  NewCamera(1, Wide.CameraZ),
	}
	s.Layout(width, height, false)
	return s
}

// Layout adapts the camera to the viewport and, unless a target is selected,
// moves every target into its profile slot.
func (s *Scene) Layout(width, height int, selected bool) Profile {
	s.Width, s.Height = width, height
	p := ProfileFor(width)
	if height > 0 {
		s.Camera.Aspect = float64(width) / float64(height)
	}
	s.Camera.Z = p.CameraZ
	if selected {
		return p
	}
	for i, t := range s.Targets {
		t.Transform = Transform{Position: p.Slot(i, len(s.Targets)), Scale: p.Scale}
	}
	return p
}

// Ray casts a ray through a viewport pixel.
func (s *Scene) Ray(px, py float64) Ray {
	return s.Camera.RayFromScreen(px, py, s.Width, s.Height)
}
