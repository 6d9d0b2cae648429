package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// Mesh is a flat grid of vertices in the local XY plane. X and Y never change
// after construction; Z carries the audio-driven displacement.
type Mesh struct {
	Width, Height float64
	Segments      int
	Vertices      []mgl64.Vec3

	Color     colorful.Color
	RotationX float64
	RotationZ float64

	// Dirty is set whenever Vertices change and cleared by the renderer.
	Dirty bool
}

// NewPlane builds a width x height plane split into segments x segments quads.
// Rows run from +Y to -Y and columns from -X to +X.
func NewPlane(width, height float64, segments int) *Mesh {
	if segments < 1 {
		segments = 1
	}
	n := segments + 1
	m := &Mesh{
		Width:    width,
		Height:   height,
		Segments: segments,
		Vertices: make([]mgl64.Vec3, 0, n*n),
	}
	segW := width / float64(segments)
	segH := height / float64(segments)
	for iy := range n {
		y := height/2 - float64(iy)*segH
		for ix := range n {
			x := float64(ix)*segW - width/2
			m.Vertices = append(m.Vertices, mgl64.Vec3{x, y, 0})
		}
	}
	return m
}

// Stride is the number of vertices per grid row.
func (m *Mesh) Stride() int { return m.Segments + 1 }

// Index returns the vertex index of grid column ix, row iy.
func (m *Mesh) Index(ix, iy int) int { return iy*m.Stride() + ix }

// Edges calls fn for every horizontal and vertical grid edge.
func (m *Mesh) Edges(fn func(a, b int)) {
	n := m.Stride()
	for iy := range n {
		for ix := range n {
			i := m.Index(ix, iy)
			if ix+1 < n {
				fn(i, i+1)
			}
			if iy+1 < n {
				fn(i, i+n)
			}
		}
	}
}
