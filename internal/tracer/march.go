// Package tracer finds surfaces with sphere marching, and follows light
// paths through the postcard scene.
package tracer

import (
	"github.com/lostluck/postcard/internal/scene"
	"github.com/lostluck/postcard/internal/vec"
)

const (
	// epsilon is both how close counts as a hit, and the offset used
	// to estimate normals.
	epsilon = 0.01
	// maxDistance and maxSteps bound the work done per ray.
	maxDistance = 100
	maxSteps    = 99
)

// Hit is where a ray struck the scene.
type Hit struct {
	Position vec.Vec
	Normal   vec.Vec // Unit length, or zero when Kind is None.
	Kind     scene.Kind
}

// Field is a signed distance field.
type Field func(position vec.Vec) scene.Sample

// March performs signed sphere marching against the postcard scene.
// direction must be unit length.
func March(origin, direction vec.Vec) Hit {
	return MarchField(scene.Evaluate, origin, direction)
}

// MarchField performs signed sphere marching through an arbitrary field.
//
// The ray advances by the field's distance until it's within epsilon of a
// surface, or travels maxDistance, or takes more than maxSteps steps. A
// miss is a zero Hit of Kind None.
func MarchField(field Field, origin, direction vec.Vec) Hit {
	var totalD vec.Float
	for steps := 0; totalD < maxDistance && steps <= maxSteps; steps++ {
		hitPos := origin.Plus(direction.Scale(totalD))
		s := field(hitPos)
		if s.Distance < epsilon {
			return Hit{Position: hitPos, Normal: normal(field, hitPos, s.Distance), Kind: s.Kind}
		}
		totalD += s.Distance
	}
	return Hit{Kind: scene.None}
}

// normal estimates the gradient of the field at p by forward differences.
func normal(field Field, p vec.Vec, d vec.Float) vec.Vec {
	x := field(p.Plus(vec.Vec{X: epsilon})).Distance
	y := field(p.Plus(vec.Vec{Y: epsilon})).Distance
	z := field(p.Plus(vec.Vec{Z: epsilon})).Distance
	return vec.Vec{X: x - d, Y: y - d, Z: z - d}.Normalize()
}
