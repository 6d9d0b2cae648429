// Package scene holds the visual data model: selectable wireframe planes,
// the camera that looks at them, ray picking and the responsive layout.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/audio-planes/internal/config"
)

// Theme is the fixed color family of a target.
type Theme int

const (
	ThemeGreen Theme = iota
	ThemePurple
	// ThemeSpectrum maps loudness onto the hue circle instead of holding one hue.
	ThemeSpectrum
)

func (t Theme) String() string {
	switch t {
	case ThemeGreen:
		return "green"
	case ThemePurple:
		return "purple"
	case ThemeSpectrum:
		return "spectrum"
	}
	return fmt.Sprintf("Theme(%d)", int(t))
}

// ParseTheme resolves a theme by its name.
func ParseTheme(s string) (Theme, error) {
	for _, t := range []Theme{ThemeGreen, ThemePurple, ThemeSpectrum} {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown theme %q", s)
}

// BaseColor is the color a target shows before any audio has reached it.
func (t Theme) BaseColor() colorful.Color {
	switch t {
	case ThemePurple:
		return colorful.Color{R: float64(0x88) / 255, G: 0, B: 1}
	default:
		return colorful.Color{R: 0, G: 1, B: 0}
	}
}

// Transform is the placement of a target in world space.
type Transform struct {
	Position mgl64.Vec3
	Scale    float64
}

// CanonicalPose is the centered, full-scale transform of a selected target.
var CanonicalPose = Transform{Scale: 1}

// Target is a selectable plane bound to one audio file and one color theme.
type Target struct {
	ID        string
	AudioFile string
	Theme     Theme
	Mesh      *Mesh

	Visible   bool
	Transform Transform
}

// NewTarget creates a visible target with a fresh plane mesh.
func NewTarget(id, audioFile string, theme Theme) *Target {
	m := NewPlane(config.PlaneSize, config.PlaneSize, config.PlaneSegments)
	m.Color = theme.BaseColor()
	return &Target{
		ID:        id,
		AudioFile: audioFile,
		Theme:     theme,
		Mesh:      m,
		Visible:   true,
		Transform: CanonicalPose,
	}
}

// Model returns the local-to-world matrix: translate, rotate (X then Z), scale.
func (t *Target) Model() mgl64.Mat4 {
	p := t.Transform.Position
	s := t.Transform.Scale
	return mgl64.Translate3D(p.X(), p.Y(), p.Z()).
		Mul4(mgl64.HomogRotate3DX(t.Mesh.RotationX)).
		Mul4(mgl64.HomogRotate3DZ(t.Mesh.RotationZ)).
		Mul4(mgl64.Scale3D(s, s, s))
}
