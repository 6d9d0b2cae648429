package scene

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Hit is one ray/target intersection.
type Hit struct {
	Target   *Target
	Distance float64
	Point    mgl64.Vec3
}

// Picker intersects rays with the flat rectangle of each target's plane.
// Displacement along Z is ignored.
type Picker struct{}

// Intersect returns the hits of ray on the visible candidates, nearest first.
func (Picker) Intersect(ray Ray, candidates []*Target) []Hit {
	var hits []Hit
	for _, t := range candidates {
		if t == nil || !t.Visible || t.Transform.Scale == 0 {
			continue
		}
		if h, ok := intersectPlane(ray, t); ok {
			hits = append(hits, h)
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

func intersectPlane(ray Ray, t *Target) (Hit, bool) {
	model := t.Model()
	inv := model.Inv()
	o := inv.Mul4x1(ray.Origin.Vec4(1)).Vec3()
	d := inv.Mul4x1(ray.Direction.Vec4(0)).Vec3()
	if math.Abs(d.Z()) < 1e-12 {
		return Hit{}, false
	}
	s := -o.Z() / d.Z()
	if s < 0 {
		return Hit{}, false
	}
	local := o.Add(d.Mul(s))
	if math.Abs(local.X()) > t.Mesh.Width/2 || math.Abs(local.Y()) > t.Mesh.Height/2 {
		return Hit{}, false
	}
	world := model.Mul4x1(local.Vec4(1)).Vec3()
	return Hit{Target: t, Distance: world.Sub(ray.Origin).Len(), Point: world}, true
}
