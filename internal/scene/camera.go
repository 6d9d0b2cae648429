package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/iburimskiy/audio-planes/internal/config"
)

// Camera is a perspective camera on the +Z axis looking at the origin.
type Camera struct {
	FOV    float64 // vertical, degrees
	Aspect float64
	Near   float64
	Far    float64
	Z      float64
}

// NewCamera returns a camera with the default field of view and clip planes.
func NewCamera(aspect, z float64) *Camera {
	return &Camera{
		FOV:    config.CameraFOV,
		Aspect: aspect,
		Near:   config.CameraNear,
		Far:    config.CameraFar,
		Z:      z,
	}
}

// Position is the camera's location in world space.
func (c *Camera) Position() mgl64.Vec3 { return mgl64.Vec3{0, 0, c.Z} }

// View is the world-to-camera matrix.
func (c *Camera) View() mgl64.Mat4 {
	eye := c.Position()
	return mgl64.LookAtV(eye, eye.Sub(mgl64.Vec3{0, 0, 1}), mgl64.Vec3{0, 1, 0})
}

// Projection is the camera-to-clip matrix.
func (c *Camera) Projection() mgl64.Mat4 {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// ViewProjection is Projection * View.
func (c *Camera) ViewProjection() mgl64.Mat4 {
	return c.Projection().Mul4(c.View())
}

// Ray is a half-line in world space. Direction is unit length.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// At returns the point s units along the ray.
func (r Ray) At(s float64) mgl64.Vec3 { return r.Origin.Add(r.Direction.Mul(s)) }

// RayFromNDC casts a ray through normalized device coordinates (-1..1, +Y up).
func (c *Camera) RayFromNDC(x, y float64) Ray {
	inv := c.ViewProjection().Inv()
	near := unproject(inv, mgl64.Vec4{x, y, -1, 1})
	far := unproject(inv, mgl64.Vec4{x, y, 1, 1})
	return Ray{Origin: c.Position(), Direction: far.Sub(near).Normalize()}
}

// RayFromScreen casts a ray through pixel (px, py) of a width x height viewport.
func (c *Camera) RayFromScreen(px, py float64, width, height int) Ray {
	if width <= 0 || height <= 0 {
		return c.RayFromNDC(0, 0)
	}
	x := px/float64(width)*2 - 1
	y := -(py/float64(height))*2 + 1
	return c.RayFromNDC(x, y)
}

func unproject(inv mgl64.Mat4, clip mgl64.Vec4) mgl64.Vec3 {
	v := inv.Mul4x1(clip)
	if v.W() == 0 {
		return v.Vec3()
	}
	return v.Vec3().Mul(1 / v.W())
}

// ToScreen projects a local-space point through mvp onto a width x height
// viewport. ok is false for points behind the camera.
func ToScreen(mvp mgl64.Mat4, p mgl64.Vec3, width, height int) (x, y float64, ok bool) {
	clip := mvp.Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	x = (ndc.X() + 1) / 2 * float64(width)
	y = (1 - ndc.Y()) / 2 * float64(height)
	return x, y, true
}
