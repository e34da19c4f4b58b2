// Package scene is the signed distance field database for the postcard
// room. Every query is a pure function of the position, so it may be
// called from any number of goroutines at once.
package scene

import (
	"fmt"

	"github.com/lostluck/postcard/internal/vec"
)

// Kind is the surface being struck by the ray.
type Kind int

// Kinds of surface in the scene.
const (
	None = Kind(iota) // No surface. Never the result of a hit.
	Letter
	Wall
	Sun
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Letter:
		return "letter"
	case Wall:
		return "wall"
	case Sun:
		return "sun"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Sample is the signed distance to the nearest surface, and what that
// surface is. Negative distances are inside a solid.
type Sample struct {
	Distance vec.Float
	Kind     Kind
}

// noHit is far enough away that any real primitive beats it.
const noHit = 1e9

// Primitive is a single shape in the scene.
type Primitive interface {
	// Query calculates the signed distance to the primitive from the position.
	Query(position vec.Vec) Sample
}

// Primitives returns the shapes that make up the postcard, in evaluation
// order.
func Primitives() []Primitive {
	ps := make([]Primitive, len(primitives))
	copy(ps, primitives)
	return ps
}

// primitives is built once and never mutated afterwards.
var primitives = buildPrimitives()

func buildPrimitives() []Primitive {
	ps := []Primitive{Room{}}
	for _, s := range segments {
		ps = append(ps, s)
	}
	for _, c := range curves {
		ps = append(ps, c)
	}
	return append(ps, SunPlane{})
}

// Evaluate samples the world using signed distance fields, returning
// the nearest surface to position.
//
// When two primitives are equally near, the first in evaluation order is
// returned. Callers should not depend on which.
func Evaluate(position vec.Vec) Sample {
	return Nearest(position, primitives)
}

// Nearest returns the minimum distance sample of the given primitives,
// or a None sample if there are none.
func Nearest(position vec.Vec, ps []Primitive) Sample {
	nearest := Sample{Distance: noHit, Kind: None}
	for _, p := range ps {
		if s := p.Query(position); s.Distance < nearest.Distance {
			nearest = s
		}
	}
	return nearest
}
