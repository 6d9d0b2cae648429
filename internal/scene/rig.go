package scene

import "github.com/charmbracelet/harmonica"

// CameraRig eases the drawn camera distance toward the layout's value so
// breakpoint changes glide instead of jumping.
type CameraRig struct {
	spring harmonica.Spring
	z      float64
	vel    float64
	placed bool
}

func NewCameraRig(fps int) *CameraRig {
	return &CameraRig{spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0)}
}

// Follow advances one frame toward target and returns the eased distance.
// The first call snaps.
func (r *CameraRig) Follow(target float64) float64 {
	if !r.placed {
		r.z, r.vel, r.placed = target, 0, true
		return r.z
	}
	r.z, r.vel = r.spring.Update(r.z, r.vel, target)
	return r.z
}
