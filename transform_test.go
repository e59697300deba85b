package grove

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec(t *testing.T, name string, got, want Vec2) {
	t.Helper()
	if math.Abs(got.X-want.X) > epsilon || math.Abs(got.Y-want.Y) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// --- Per-level steps ---

func TestToParentStepComposition(t *testing.T) {
	n := NewContainer("n")
	n.X, n.Y = 10, 20
	n.ScaleX, n.ScaleY = 2, 3
	n.Rotation = math.Pi / 2

	// (1, 0): scale to (2, 0), rotate 90ccw to (0, 2), translate to (10, 22).
	got := toParentStep(n, Vec2{1, 0})
	assertVec(t, "step(1,0)", got, Vec2{10, 22})
}

// Cross-check the rotation convention against an independent implementation.
func TestToParentStepMatchesMathgl(t *testing.T) {
	angles := []float64{0.3, 1.1, -2.4, math.Pi / 3}
	points := []Vec2{{1, 0}, {0, 1}, {-3, 2.5}, {7, -4}}
	for _, angle := range angles {
		n := NewContainer("n")
		n.Rotation = angle
		rot := mgl64.Rotate2D(angle)
		for _, p := range points {
			want := rot.Mul2x1(mgl64.Vec2{p.X, p.Y})
			got := toParentStep(n, p)
			assertVec(t, "rotation", got, Vec2{want.X(), want.Y()})
		}
	}
}

func TestFromParentStepInverts(t *testing.T) {
	n := NewContainer("n")
	n.X, n.Y = -4, 9
	n.ScaleX, n.ScaleY = 0.5, 2
	n.Rotation = 1.2

	p := Vec2{3.7, -1.1}
	back := fromParentStep(n, toParentStep(n, p))
	assertVec(t, "inverse step", back, p)
}

func TestFromParentStepZeroScale(t *testing.T) {
	n := NewContainer("n")
	n.X, n.Y = 5, 5
	n.ScaleX = 0 // degenerate axis inverts as identity, no NaN/Inf
	n.ScaleY = 2

	got := fromParentStep(n, Vec2{8, 9})
	if math.IsNaN(got.X) || math.IsInf(got.X, 0) {
		t.Fatalf("zero-scale inversion produced %v", got)
	}
	assertVec(t, "zero-scale", got, Vec2{3, 2})
}

// --- Conversions ---

func TestConvertIdentityExact(t *testing.T) {
	scene := NewScene("s")
	n := NewContainer("n")
	scene.AddChild(n)
	n.Rotation = 0.7 // must not matter: no trig on the identity path

	p := Vec2{1.0 / 3.0, math.Pi}
	if got := n.ConvertFrom(p, n); got != p {
		t.Errorf("ConvertFrom(self) = %v, want %v exactly", got, p)
	}
	if got := n.ConvertTo(p, n); got != p {
		t.Errorf("ConvertTo(self) = %v, want %v exactly", got, p)
	}
}

func TestConvertKnownValues(t *testing.T) {
	scene := NewScene("s")
	child := NewContainer("child")
	scene.AddChild(child)
	child.X, child.Y = 10, 0
	child.ScaleX, child.ScaleY = 2, 2
	child.Rotation = math.Pi / 2

	// Child-local (1, 0) lands at (10, 2) in scene space.
	assertVec(t, "LocalToScene", child.LocalToScene(Vec2{1, 0}), Vec2{10, 2})
	assertVec(t, "SceneToLocal", child.SceneToLocal(Vec2{10, 2}), Vec2{1, 0})

	// And the same through the two-node surface, pivoting at the scene.
	assertVec(t, "ConvertFrom", scene.ConvertFrom(Vec2{1, 0}, child), Vec2{10, 2})
	assertVec(t, "ConvertTo", child.ConvertTo(Vec2{1, 0}, scene), Vec2{10, 2})
}

func TestConvertRoundTrip(t *testing.T) {
	scene := NewScene("s")
	a := NewContainer("a")
	b := NewContainer("b")
	deep := NewContainer("deep")
	scene.AddChild(a)
	scene.AddChild(b)
	b.AddChild(deep)

	a.X, a.Y, a.Rotation = 3, -2, 0.4
	a.ScaleX, a.ScaleY = 1.5, 0.75
	b.X, b.Y, b.Rotation = -8, 12, -1.1
	deep.X, deep.Rotation, deep.ScaleX = 2, 2.2, 3

	points := []Vec2{{0, 0}, {5, 5}, {-1.25, 9}}
	for _, p := range points {
		q := deep.ConvertFrom(p, a)
		back := a.ConvertFrom(q, deep)
		assertVec(t, "round trip", back, p)
	}
}

func TestConvertSceneRootTransformExcluded(t *testing.T) {
	scene := NewScene("s")
	child := NewContainer("child")
	scene.AddChild(child)
	child.X = 4

	// The scene root's own transform is outside the conversion space: moving
	// the scene node must not affect conversions within its tree.
	scene.X, scene.Y, scene.Rotation = 100, 100, 1.0

	assertVec(t, "LocalToScene", child.LocalToScene(Vec2{1, 0}), Vec2{5, 0})
	assertVec(t, "SceneToLocal", child.SceneToLocal(Vec2{5, 0}), Vec2{1, 0})
}

func TestConvertDetachedSubtree(t *testing.T) {
	// No scene root anywhere: the walk terminates at the tree root, which
	// then serves as the pivot space.
	root := NewContainer("root")
	a := NewContainer("a")
	b := NewContainer("b")
	root.AddChild(a)
	root.AddChild(b)
	a.X = 10
	b.X = -10

	assertVec(t, "orphan convert", b.ConvertFrom(Vec2{0, 0}, a), Vec2{20, 0})
}

func TestConvertSiblingSymmetry(t *testing.T) {
	scene := NewScene("s")
	a := NewContainer("a")
	b := NewContainer("b")
	scene.AddChild(a)
	scene.AddChild(b)
	a.X, a.Rotation = 6, 0.9
	b.Y, b.ScaleX = -3, 2

	p := Vec2{1, 2}
	assertVec(t, "from/to agree", a.ConvertTo(p, b), b.ConvertFrom(p, a))
}
