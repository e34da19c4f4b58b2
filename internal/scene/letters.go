package scene

import (
	"github.com/chewxy/math32"

	"github.com/lostluck/postcard/internal/vec"
)

// strokes are the 15 straight lines spelling PIXAR. Each is four
// characters: begin x, begin y, end x, end y. A coordinate is the
// character code minus 79, halved.
var strokes = [...]string{
	"5O5_", "5W9W", "5_9_", // P (without curve)
	"AOEO", "COC_", "A_E_", // I
	"IOQ_", "I_QO", // X
	"UOY_", "Y_]O", "WW[W", // A
	"aOa_", "aWeW", "a_e_", "cWiO", // R (without curve)
}

// curveCenters are the centers of the bowls of the R and P.
var curveCenters = [...]vec.Vec{
	vec.Flat(11, 6),
	vec.Flat(-11, 6),
}

var (
	segments = decodeStrokes(strokes[:])
	curves   = makeCurves(curveCenters[:])
)

func decodeCoord(c byte) vec.Float {
	return vec.Float(int(c)-79) / 2
}

func decodeStrokes(strokes []string) []Segment {
	var segs []Segment
	for _, s := range strokes {
		segs = append(segs, NewSegment(
			vec.Flat(decodeCoord(s[0]), decodeCoord(s[1])),
			vec.Flat(decodeCoord(s[2]), decodeCoord(s[3])),
		))
	}
	return segs
}

func makeCurves(centers []vec.Vec) []Curve {
	var cs []Curve
	for _, c := range centers {
		cs = append(cs, Curve{Center: c})
	}
	return cs
}

// extrude turns a planar distance into a rounded bar of radius 0.5
// about the z=0 plane, using an 8th power norm.
func extrude(planar, z vec.Float) vec.Float {
	p2, z2 := planar*planar, z*z
	p4, z4 := p2*p2, z2*z2
	return math32.Pow(p4*p4+z4*z4, 0.125) - 0.5
}

// Segment is a straight letter stroke on the z=0 plane.
type Segment struct {
	Begin, Delta vec.Vec

	invLen2 vec.Float // 1 / Delta.Dot(Delta)
}

// NewSegment produces the stroke from begin to end.
func NewSegment(begin, end vec.Vec) Segment {
	delta := end.Minus(begin)
	return Segment{Begin: begin, Delta: delta, invLen2: 1 / delta.Dot(delta)}
}

// Query returns the distance to the extruded stroke.
func (s Segment) Query(position vec.Vec) Sample {
	f := vec.Flat(position.X, position.Y) // Flattened position (z=0)
	// Project onto the stroke, clamped to its ends.
	t := vec.Clamp(f.Minus(s.Begin).Dot(s.Delta)*s.invLen2, 0, 1)
	o := f.Minus(s.Begin.Plus(s.Delta.Scale(t)))
	return Sample{Distance: extrude(o.Len(), position.Z), Kind: Letter}
}

// Curve is the right half of a radius 2 circle on the z=0 plane.
// Curves are letter strokes, so they're struck as Letter.
type Curve struct {
	Center vec.Vec
}

const curveRadius = 2

// Query returns the distance to the extruded arc.
func (c Curve) Query(position vec.Vec) Sample {
	o := vec.Flat(position.X, position.Y).Minus(c.Center)
	var d vec.Float
	if o.X > 0 {
		d = math32.Abs(o.Len() - curveRadius)
	} else {
		// Left of the center, the nearest point is an end of the arc.
		if o.Y > 0 {
			o.Y -= curveRadius
		} else {
			o.Y += curveRadius
		}
		d = o.Len()
	}
	return Sample{Distance: extrude(d, position.Z), Kind: Letter}
}
