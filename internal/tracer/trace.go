package tracer

import (
	"github.com/chewxy/math32"

	"github.com/lostluck/postcard/internal/scene"
	"github.com/lostluck/postcard/internal/vec"
)

// Source produces uniform random variates in [0, 1).
//
// A *rand.Rand from pgregory.net/rand satisfies Source. A Source is owned
// by a single goroutine.
type Source interface {
	Float32() float32
}

var (
	// lightDirection is the direction towards the sun.
	lightDirection = vec.Vec{X: .6, Y: .6, Z: 1}.Normalize()

	sunColour   = vec.Vec{X: 50, Y: 80, Z: 100}
	lightColour = vec.Vec{X: 500, Y: 400, Z: 100}
	// Every bounce keeps a fifth of the light.
	albedo = vec.Vec{X: 0.2, Y: 0.2, Z: 0.2}
)

// offset is how far off a surface the next ray starts, to avoid striking
// the same surface again.
const offset = 0.1

// Trace casts a ray, and follows up to maxBounces bounces, returning the
// linear radiance gathered along the path.
//
// Paths end when they escape the scene, strike the sun, or a diffuse
// bounce has a direct view of the sun. Paths that run out of bounces keep
// whatever they gathered, which may be nothing.
func Trace(origin, direction vec.Vec, maxBounces int, rng Source) vec.Vec {
	return traceField(scene.Evaluate, origin, direction, maxBounces, rng)
}

// traceField follows a light path through an arbitrary field.
func traceField(field Field, origin, direction vec.Vec, maxBounces int, rng Source) vec.Vec {
	attenuation := vec.MonoVec(1)
	var colour vec.Vec

	for bounce := 0; bounce < maxBounces; bounce++ {
		hit := MarchField(field, origin, direction)
		switch hit.Kind {
		case scene.None:
			return colour
		case scene.Letter: // Specular bounce on a letter. No colour acc.
			direction = reflect(direction, hit.Normal)
			origin = hit.Position.Plus(direction.Scale(offset))
			attenuation = attenuation.Times(albedo)
		case scene.Wall:
			incidence := hit.Normal.Dot(lightDirection)
			direction = cosineSample(hit.Normal, rng)
			origin = hit.Position.Plus(direction.Scale(offset))
			attenuation = attenuation.Times(albedo)
			// Checks contribution of direct light, which ends the path.
			if incidence > 0 && MarchField(field, hit.Position.Plus(hit.Normal.Scale(offset)), lightDirection).Kind == scene.Sun {
				return colour.Plus(attenuation.Times(lightColour).Scale(incidence))
			}
		case scene.Sun:
			return colour.Plus(attenuation.Times(sunColour))
		}
	}
	return colour
}

// reflect mirrors d about the surface with normal n.
func reflect(d, n vec.Vec) vec.Vec {
	return d.Minus(n.Scale(2 * n.Dot(d)))
}

// cosineSample picks a direction in the hemisphere about n, with
// density proportional to the cosine to n.
//
// The tangent frame is built from n alone, flipping on the sign of n.Z,
// so there's no special case for a particular up vector.
func cosineSample(n vec.Vec, rng Source) vec.Vec {
	phi := 2 * math32.Pi * rng.Float32()
	c := rng.Float32() // cos²θ
	sinTheta := math32.Sqrt(1 - c)

	g := vec.Float(1)
	if n.Z < 0 {
		g = -1
	}
	u := -1 / (g + n.Z)
	v := n.X * n.Y * u

	sin, cos := math32.Sincos(phi)
	t1 := vec.Vec{X: v, Y: g + n.Y*n.Y*u, Z: -n.Y}
	t2 := vec.Vec{X: 1 + g*n.X*n.X*u, Y: g * v, Z: -g * n.X}
	return t1.Scale(cos * sinTheta).
		Plus(t2.Scale(sin * sinTheta)).
		Plus(n.Scale(math32.Sqrt(c)))
}
