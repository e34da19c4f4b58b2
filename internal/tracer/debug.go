package tracer

import (
	"github.com/lostluck/postcard/internal/scene"
	"github.com/lostluck/postcard/internal/vec"
)

// Flat colours for TraceDebug.
var (
	DebugLetter = vec.Vec{X: 1}
	DebugLit    = vec.Vec{Y: 1}
	DebugShadow = vec.Vec{Z: 1}
	DebugSun    = vec.MonoVec(1)
)

// TraceDebug marches once, and colours the result by what was struck:
// black for nothing, red for letters, green for walls the sun reaches,
// blue for walls in shadow, and white for the sun.
//
// It has the same signature as Trace so the two are interchangeable, but
// ignores the bounce budget and randomness.
func TraceDebug(origin, direction vec.Vec, _ int, _ Source) vec.Vec {
	hit := March(origin, direction)
	switch hit.Kind {
	case scene.Letter:
		return DebugLetter
	case scene.Wall:
		incidence := hit.Normal.Dot(lightDirection)
		if incidence > 0 && March(hit.Position.Plus(hit.Normal.Scale(offset)), lightDirection).Kind == scene.Sun {
			return DebugLit
		}
		return DebugShadow
	case scene.Sun:
		return DebugSun
	}
	return vec.Vec{}
}
