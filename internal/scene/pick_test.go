package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func screenOf(s *Scene, p mgl64.Vec3) (float64, float64) {
	x, y, _ := ToScreen(s.Camera.ViewProjection(), p, s.Width, s.Height)
	return x, y
}

func TestPickHitsTargetUnderPointer(t *testing.T) {
	left, right := newPair()
	s := New(800, 600, left, right)

	for _, target := range []*Target{left, right} {
		x, y := screenOf(s, target.Transform.Position)
		hits := Picker{}.Intersect(s.Ray(x, y), s.Targets)
		if len(hits) != 1 || hits[0].Target != target {
			t.Fatalf("pick at %v,%v: got %d hits, want only %s", x, y, len(hits), target.ID)
		}
		if !hits[0].Point.ApproxEqualThreshold(target.Transform.Position, 1e-6) {
			t.Fatalf("hit point = %v, want %v", hits[0].Point, target.Transform.Position)
		}
	}
}

func TestPickMissBetweenTargets(t *testing.T) {
	left, right := newPair()
	s := New(800, 600, left, right)

	// Wide layout leaves a gap at the origin between the two planes.
	hits := Picker{}.Intersect(s.Ray(400, 300), s.Targets)
	if len(hits) != 0 {
		t.Fatalf("got %d hits in the gap, want none", len(hits))
	}
	hits = Picker{}.Intersect(s.Ray(400, 5), s.Targets)
	if len(hits) != 0 {
		t.Fatalf("got %d hits near the top edge, want none", len(hits))
	}
}

func TestPickSkipsInvisible(t *testing.T) {
	left, right := newPair()
	s := New(800, 600, left, right)
	x, y := screenOf(s, right.Transform.Position)
	right.Visible = false

	if hits := (Picker{}).Intersect(s.Ray(x, y), s.Targets); len(hits) != 0 {
		t.Fatalf("got %d hits on an invisible target", len(hits))
	}
}

func TestPickNearestFirst(t *testing.T) {
	near := NewTarget("near", "", ThemeGreen)
	far := NewTarget("far", "", ThemePurple)
	near.Transform = Transform{Position: mgl64.Vec3{0, 0, 1}, Scale: 1}
	far.Transform = Transform{Position: mgl64.Vec3{0, 0, -1}, Scale: 1}
	cam := NewCamera(1, 5)

	hits := Picker{}.Intersect(cam.RayFromNDC(0, 0), []*Target{far, near})
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	if hits[0].Target != near || hits[1].Target != far {
		t.Fatalf("order = %s,%s, want near,far", hits[0].Target.ID, hits[1].Target.ID)
	}
	if math.Abs(hits[0].Distance-4) > 1e-9 || math.Abs(hits[1].Distance-6) > 1e-9 {
		t.Fatalf("distances = %v,%v, want 4,6", hits[0].Distance, hits[1].Distance)
	}
}

func TestRayFromScreenCenterLooksDownZ(t *testing.T) {
	cam := NewCamera(4.0/3.0, 5)
	r := cam.RayFromScreen(400, 300, 800, 600)
	if !r.Direction.ApproxEqualThreshold(mgl64.Vec3{0, 0, -1}, 1e-9) {
		t.Fatalf("direction = %v, want (0,0,-1)", r.Direction)
	}
	if !r.At(5).ApproxEqualThreshold(mgl64.Vec3{}, 1e-9) {
		t.Fatalf("ray misses the origin: %v", r.At(5))
	}
}

func TestToScreenBehindCamera(t *testing.T) {
	cam := NewCamera(1, 5)
	if _, _, ok := ToScreen(cam.ViewProjection(), mgl64.Vec3{0, 0, 10}, 100, 100); ok {
		t.Fatal("point behind the camera reported as visible")
	}
}
