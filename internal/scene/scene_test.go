package scene

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/lostluck/postcard/internal/vec"
)

func near(a, b vec.Float) bool {
	return math32.Abs(a-b) < 1e-5
}

func TestBoxTest(t *testing.T) {
	ll, ur := vec.Vec{X: -1, Y: -2, Z: -3}, vec.Vec{X: 1, Y: 2, Z: 3}
	faces := []vec.Vec{
		{X: -1, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0},
		{X: 0, Y: -2, Z: 0}, {X: 0, Y: 2, Z: 0},
		{X: 0, Y: 0, Z: -3}, {X: 0, Y: 0, Z: 3},
		{X: 1, Y: 2, Z: 3}, // corner
	}
	for _, p := range faces {
		if got := BoxTest(p, ll, ur); got != 0 {
			t.Errorf("BoxTest(%v) = %v, want 0 on a face", p, got)
		}
	}
	inside := []vec.Vec{{}, {X: 0.5, Y: -1, Z: 2.9}}
	for _, p := range inside {
		if got := BoxTest(p, ll, ur); got >= 0 {
			t.Errorf("BoxTest(%v) = %v, want < 0 inside", p, got)
		}
	}
	if got, want := BoxTest(vec.Vec{}, ll, ur), vec.Float(-1); got != want {
		t.Errorf("BoxTest(origin) = %v, want %v", got, want)
	}
	if got := BoxTest(vec.Vec{X: 5}, ll, ur); got <= 0 {
		t.Errorf("BoxTest(outside) = %v, want > 0", got)
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		position vec.Vec
		want     Sample
	}{
		{"floor", vec.Vec{X: 0, Y: 5, Z: 10}, Sample{5.5, Wall}},
		{"I stroke center", vec.Vec{X: -6, Y: 4, Z: 0}, Sample{-0.5, Letter}},
		{"above I stroke", vec.Vec{X: -6, Y: 4, Z: 1}, Sample{0.5, Letter}},
		{"R bowl", vec.Vec{X: 13, Y: 6, Z: 0}, Sample{-0.5, Letter}},
		{"P bowl", vec.Vec{X: -9, Y: 6, Z: 0}, Sample{-0.5, Letter}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Evaluate(test.position)
			if got.Kind != test.want.Kind || !near(got.Distance, test.want.Distance) {
				t.Errorf("Evaluate(%v) = %v, want %v", test.position, got, test.want)
			}
		})
	}
}

func TestEvaluateNearSun(t *testing.T) {
	p := vec.Vec{X: 0, Y: 19.95, Z: 10}
	got := Evaluate(p)
	if got.Kind != Sun || got.Distance >= 0 {
		t.Errorf("Evaluate(%v) = %v, want a Sun sample inside the plane", p, got)
	}
}

func TestEvaluateIsPure(t *testing.T) {
	points := []vec.Vec{
		{X: -22, Y: 5, Z: 25},
		{X: 3.3, Y: 18.7, Z: -4},
		{X: -17.25, Y: 0.01, Z: 0.2},
		{X: 11, Y: 8, Z: 0.4},
	}
	for _, p := range points {
		a, b := Evaluate(p), Evaluate(p)
		if math32.Float32bits(a.Distance) != math32.Float32bits(b.Distance) || a.Kind != b.Kind {
			t.Errorf("Evaluate(%v) not deterministic: %v then %v", p, a, b)
		}
	}
}

func TestRoomPlanks(t *testing.T) {
	// Planks mirror around x=0, and repeat every 8 units.
	for _, x := range []vec.Float{4, -4, 12, -12, 20} {
		p := vec.Vec{X: x, Y: 18.4, Z: 0}
		if got, want := (Room{}).Query(p), (Room{}).Query(vec.Vec{X: 4, Y: 18.4, Z: 0}); !near(got.Distance, want.Distance) {
			t.Errorf("Room.Query(%v) = %v, want %v", p, got, want)
		}
	}
	// Under a plank the ceiling is lower than between planks.
	under := (Room{}).Query(vec.Vec{X: 4, Y: 18.2, Z: 0})
	between := (Room{}).Query(vec.Vec{X: 0, Y: 18.2, Z: 0})
	if under.Distance >= between.Distance {
		t.Errorf("Room.Query under plank = %v, want less than between planks %v", under, between)
	}
}

func TestCurve(t *testing.T) {
	c := Curve{Center: vec.Flat(11, 6)}
	tests := []struct {
		position vec.Vec
		want     vec.Float
	}{
		{vec.Vec{X: 13, Y: 6}, -0.5},                // on the arc
		{vec.Vec{X: 11, Y: 6}, 1.5},                 // at the center
		{vec.Vec{X: 9, Y: 9}, math32.Sqrt(5) - 0.5}, // past the upper end
		{vec.Vec{X: 10, Y: 4}, 1 - 0.5},             // past the lower end
		{vec.Vec{X: 13, Y: 6, Z: 1}, 1 - 0.5},       // extruded
	}
	for _, test := range tests {
		got := c.Query(test.position)
		if got.Kind != Letter || !near(got.Distance, test.want) {
			t.Errorf("Curve.Query(%v) = %v, want {%v letter}", test.position, got, test.want)
		}
	}
}

func TestSegmentDecoding(t *testing.T) {
	if got, want := len(segments), 15; got != want {
		t.Fatalf("len(segments) = %v, want %v", got, want)
	}
	// "5O5_" is the P stem, from (-13, 0) to (-13, 8).
	s := segments[0]
	if got, want := s.Begin, vec.Flat(-13, 0); got != want {
		t.Errorf("segments[0].Begin = %v, want %v", got, want)
	}
	if got, want := s.Delta, vec.Flat(0, 8); got != want {
		t.Errorf("segments[0].Delta = %v, want %v", got, want)
	}
	// Past the end, distance is measured to the end point.
	if got, want := s.Query(vec.Vec{X: -13, Y: 10}).Distance, vec.Float(1.5); !near(got, want) {
		t.Errorf("segments[0].Query past end = %v, want %v", got, want)
	}
}

type fixed Sample

func (f fixed) Query(vec.Vec) Sample { return Sample(f) }

func TestNearest(t *testing.T) {
	if got, want := Nearest(vec.Vec{}, nil), (Sample{noHit, None}); got != want {
		t.Errorf("Nearest(empty) = %v, want %v", got, want)
	}
	ps := []Primitive{fixed{3, Wall}, fixed{1, Letter}, fixed{1, Sun}, fixed{2, Wall}}
	if got, want := Nearest(vec.Vec{}, ps), (Sample{1, Letter}); got != want {
		t.Errorf("Nearest() = %v, want %v", got, want)
	}
	if got, want := len(Primitives()), 1+15+2+1; got != want {
		t.Errorf("len(Primitives()) = %v, want %v", got, want)
	}
}

func TestKindString(t *testing.T) {
	for k, want := range map[Kind]string{None: "none", Letter: "letter", Wall: "wall", Sun: "sun", Kind(9): "Kind(9)"} {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}
