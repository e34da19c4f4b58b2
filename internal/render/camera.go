package render

import (
	"github.com/lostluck/postcard/internal/tracer"
	"github.com/lostluck/postcard/internal/vec"
)

// RayGenerator produces the primary rays of a render.
type RayGenerator interface {
	// Origin is where every primary ray starts.
	Origin() vec.Vec
	// Ray returns the unit direction for one sample of pixel x,y.
	Ray(x, y int, cfg RenderConfig, rng tracer.Source) vec.Vec
}

// Camera is a pinhole camera. Goal points at the center of the image,
// and Left and Up span one pixel.
type Camera struct {
	Position       vec.Vec
	Goal, Left, Up vec.Vec
}

// Where the camera is, and what it looks at.
var (
	cameraPosition = vec.Vec{X: -22, Y: 5, Z: 25}
	cameraTarget   = vec.Vec{X: -3, Y: 4, Z: 0}
)

// NewCamera sets up the postcard camera for an image width pixels wide.
func NewCamera(width int) Camera {
	goal := cameraTarget.Minus(cameraPosition).Normalize()
	left := vec.Vec{X: goal.Z, Y: 0, Z: -goal.X}.Normalize().Scale(1 / vec.Float(width))
	return Camera{
		Position: cameraPosition,
		Goal:     goal,
		Left:     left,
		Up:       goal.Cross(left), // Cross-product to get the up vector
	}
}

// Origin returns the camera position.
func (c Camera) Origin() vec.Vec {
	return c.Position
}

// Ray applies a fresh sub pixel jitter to pixel x,y.
func (c Camera) Ray(x, y int, cfg RenderConfig, rng tracer.Source) vec.Vec {
	leftJitter := c.Left.Scale(vec.Float(x) - vec.Float(cfg.Width)/2 + rng.Float32())
	upJitter := c.Up.Scale(vec.Float(y) - vec.Float(cfg.Height)/2 + rng.Float32())
	return c.Goal.Plus(leftJitter).Plus(upJitter).Normalize()
}
