// Package animate maps a spectrum frame onto the active target's mesh:
// vertex displacement, surface color and rotation, once per rendered frame.
package animate

import (
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/audio-planes/internal/scene"
	"github.com/iburimskiy/audio-planes/internal/spectrum"
)

const (
	// BinScale sets how fast the spectrum is walked as |x|+|y| grows.
	BinScale  = 10
	TimeScale = 0.001
	ZScale    = 2

	Saturation    = 0.8
	BaseLightness = 0.4
	LightnessGain = 0.3

	GreenHue  = 0.33
	PurpleHue = 0.75

	SpectrumHueGain       = 0.3
	SpectrumBaseLightness = 0.5

	RotationZBase = 0.002
	RotationZGain = 0.01
	RotationXBase = 0.001
	RotationXGain = 0.005
)

// Result summarises one update for the HUD and tests.
type Result struct {
	Average   float64
	Hue       float64
	Lightness float64
	Color     colorful.Color
}

// Step applies one frame of audio to target's mesh at wall-clock time now.
func Step(frame spectrum.Frame, target *scene.Target, now time.Time) Result {
	m := target.Mesh
	Deform(frame, m, float64(now.UnixMilli()))

	avg := Average(frame)
	hue, light := ThemeHSL(target.Theme, avg)
	c := colorful.Hsl(hue*360, Saturation, light)
	m.Color = c

	m.RotationZ = wrap(m.RotationZ + RotationZBase + avg*RotationZGain)
	m.RotationX = wrap(m.RotationX + RotationXBase + avg*RotationXGain)
	m.Dirty = true

	return Result{Average: avg, Hue: hue, Lightness: light, Color: c}
}

// Deform rewrites the Z of every vertex from the bin its X/Y position maps to.
func Deform(frame spectrum.Frame, m *scene.Mesh, tMillis float64) {
	if len(frame) == 0 {
		for i := range m.Vertices {
			m.Vertices[i][2] = 0
		}
		return
	}
	phase := tMillis * TimeScale
	for i, v := range m.Vertices {
		x, y := v[0], v[1]
		amp := float64(frame[Bin(x, y, len(frame))]) / 255
		m.Vertices[i][2] = math.Sin(phase+x+y) * amp * ZScale
	}
}

// Bin is the frame index a vertex at (x, y) reads from.
func Bin(x, y float64, frameLen int) int {
	return int(math.Floor((math.Abs(x)+math.Abs(y))*BinScale)) % frameLen
}

// Average is the mean frame magnitude normalised to [0, 1].
func Average(frame spectrum.Frame) float64 {
	return frame.Mean() / 255
}

// ThemeHSL returns hue (0-1 turn) and lightness for a theme at loudness avg.
func ThemeHSL(theme scene.Theme, avg float64) (hue, lightness float64) {
	switch theme {
	case scene.ThemePurple:
		return PurpleHue, BaseLightness + avg*LightnessGain
	case scene.ThemeSpectrum:
		return avg * SpectrumHueGain, SpectrumBaseLightness + avg*LightnessGain
	default:
		return GreenHue, BaseLightness + avg*LightnessGain
	}
}

func wrap(a float64) float64 {
	return math.Mod(a, 2*math.Pi)
}
