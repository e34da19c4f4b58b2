package scene

import (
	"github.com/chewxy/math32"

	"github.com/lostluck/postcard/internal/vec"
)

// BoxTest is the Rectangle CSG equation.
// Returns minimum signed distance from space carved by lowerLeft vertex
// and opposite rectangle vertex upperRight.
//
// The result is 0 on a face, negative strictly inside the box, and
// positive outside of it.
func BoxTest(position, lowerLeft, upperRight vec.Vec) vec.Float {
	lowerLeft = position.Minus(lowerLeft)
	upperRight = upperRight.Minus(position)
	return -min(
		min(lowerLeft.X, upperRight.X),
		min(lowerLeft.Y, upperRight.Y),
		min(lowerLeft.Z, upperRight.Z),
	)
}

// Room is the hollow room that contains the scene, with ceiling planks.
type Room struct{}

// Room geometry.
var (
	lowerRoom   = [2]vec.Vec{{X: -30, Y: -.5, Z: -30}, {X: 30, Y: 18, Z: 30}}
	upperRoom   = [2]vec.Vec{{X: -25, Y: 17, Z: -25}, {X: 25, Y: 20, Z: 25}}
	plank       = [2]vec.Vec{{X: 1.5, Y: 18.5, Z: -25}, {X: 6.5, Y: 20, Z: 25}}
	plankPeriod = vec.Float(8)
)

// Query checks colliding with the room.
func (Room) Query(position vec.Vec) Sample {
	// Ceiling "planks" spaced 8 units apart. The remainder of |x| is never
	// negative, so the pattern mirrors cleanly around x=0.
	plankPos := vec.Vec{
		X: math32.Mod(math32.Abs(position.X), plankPeriod),
		Y: position.Y,
		Z: position.Z,
	}
	d := min( // min(A,B) = Union with Constructive solid geometry
		// -min carves an empty space
		-min(
			BoxTest(position, lowerRoom[0], lowerRoom[1]),
			BoxTest(position, upperRoom[0], upperRoom[1]),
		),
		BoxTest(plankPos, plank[0], plank[1]),
	)
	return Sample{Distance: d, Kind: Wall}
}

// SunPlane is everything above y=19.9, which is light source.
type SunPlane struct{}

// sunHeight is just below the upper room's ceiling.
const sunHeight = 19.9

// Query returns the distance to the sun plane.
func (SunPlane) Query(position vec.Vec) Sample {
	return Sample{Distance: sunHeight - position.Y, Kind: Sun}
}
