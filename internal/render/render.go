// Package render draws the scene and the text overlay onto an Ebiten screen.
package render

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/audio-planes/internal/config"
	"github.com/iburimskiy/audio-planes/internal/scene"
	"github.com/iburimskiy/audio-planes/internal/visualizer"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

type point struct {
	x, y float32
	ok   bool
}

// Renderer draws wireframe targets and the HUD.
type Renderer struct {
	rig *scene.CameraRig

	points  []point
	path    vector.Path
	verts   []ebiten.Vertex
	indices []uint16
}

func New(fps int) *Renderer {
	return &Renderer{rig: scene.NewCameraRig(fps)}
}

func (r *Renderer) Draw(screen *ebiten.Image, m *visualizer.Machine) {
	screen.Fill(color.Black)

	s := m.Scene()
	cam := *s.Camera
	cam.Z = r.rig.Follow(s.Camera.Z)
	vp := cam.ViewProjection()
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()

	for _, t := range s.Targets {
		if t.Visible {
			r.drawTarget(screen, t, vp.Mul4(t.Model()), w, h)
		}
	}
	drawHUD(screen, m, h)
}

func (r *Renderer) drawTarget(screen *ebiten.Image, t *scene.Target, mvp mgl64.Mat4, w, h int) {
	mesh := t.Mesh
	r.points = r.points[:0]
	for _, v := range mesh.Vertices {
		x, y, ok := scene.ToScreen(mvp, v, w, h)
		r.points = append(r.points, point{float32(x), float32(y), ok})
	}
	mesh.Dirty = false

	r.path = vector.Path{}
	mesh.Edges(func(a, b int) {
		pa, pb := r.points[a], r.points[b]
		if !pa.ok || !pb.ok {
			return
		}
		r.path.MoveTo(pa.x, pa.y)
		r.path.LineTo(pb.x, pb.y)
	})

	r.verts, r.indices = r.path.AppendVerticesAndIndicesForStroke(r.verts[:0], r.indices[:0], &vector.StrokeOptions{Width: 1})
	cr, cg, cb, ca := wireColor(mesh.Color)
	for i := range r.verts {
		r.verts[i].SrcX, r.verts[i].SrcY = 1, 1
		r.verts[i].ColorR, r.verts[i].ColorG, r.verts[i].ColorB, r.verts[i].ColorA = cr, cg, cb, ca
	}
	screen.DrawTriangles(r.verts, r.indices, whiteSubImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// wireColor returns straight-alpha components of c at wireframe opacity.
func wireColor(c colorful.Color) (r, g, b, a float32) {
	c = c.Clamped()
	return float32(c.R), float32(c.G), float32(c.B), config.PlaneOpacity
}

func drawHUD(screen *ebiten.Image, m *visualizer.Machine, h int) {
	if title := m.Title(); title != "" {
		ebitenutil.DebugPrintAt(screen, title, 12, 12)
	}
	switch m.Status() {
	case "playing":
		ebitenutil.DebugPrintAt(screen, "Audio playing... Click to pause", 12, 28)
	case "paused":
		ebitenutil.DebugPrintAt(screen, "Audio paused... Click to resume", 12, 28)
	default:
		if m.Active() == nil {
			ebitenutil.DebugPrintAt(screen, "Click a plane to play its track", 12, 28)
		}
	}
	if clock := m.ClockText(); clock != "" {
		ebitenutil.DebugPrintAt(screen, clock, 12, h-24)
	}
}
