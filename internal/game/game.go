// Package game hosts the visualizer inside Ebiten's run loop: it turns
// pointer, keyboard and window events into machine events and draws frames.
package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/audio-planes/internal/render"
	"github.com/iburimskiy/audio-planes/internal/visualizer"
)

type Game struct {
	machine  *visualizer.Machine
	renderer *render.Renderer

	// input edge detection
	prevKey map[ebiten.Key]bool
	touches []ebiten.TouchID

	width, height int
}

func New(m *visualizer.Machine, r *render.Renderer) *Game {
	s := m.Scene()
	return &Game{
		machine:  m,
		renderer: r,
		prevKey:  map[ebiten.Key]bool{},
		width:    s.Width,
		height:   s.Height,
	}
}

func (g *Game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if justPressed(ebiten.KeySpace) {
		g.machine.Post(visualizer.ToggleEvent{})
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.machine.Post(visualizer.PickEvent{X: float64(x), Y: float64(y)})
	}
	g.touches = inpututil.AppendJustPressedTouchIDs(g.touches[:0])
	for _, id := range g.touches {
		x, y := ebiten.TouchPosition(id)
		g.machine.Post(visualizer.PickEvent{X: float64(x), Y: float64(y)})
	}

	g.machine.Tick(time.Now())
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.machine)
}

// Layout follows the window size one to one and reports changes to the
// machine.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.machine.Post(visualizer.ResizeEvent{Width: outsideWidth, Height: outsideHeight})
	}
	return outsideWidth, outsideHeight
}
