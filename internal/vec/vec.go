// Package vec holds the 3 component vector algebra shared by the scene,
// the marcher and the tracer.
package vec

import (
	"github.com/chewxy/math32"
	"golang.org/x/exp/constraints"
)

// Float is a convenience type incase the precision changes later.
type Float = float32

// Vec is a vector of 3 Floats.
type Vec struct {
	X, Y, Z Float
}

// MonoVec produces a vector with all the values set to v.
func MonoVec(v Float) Vec {
	return Vec{v, v, v}
}

// Flat produces a vector on the z=0 plane.
func Flat(x, y Float) Vec {
	return Vec{x, y, 0}
}

// Plus adds two vectors together.
func (v Vec) Plus(r Vec) Vec {
	return Vec{v.X + r.X, v.Y + r.Y, v.Z + r.Z}
}

// Minus subtracts r from v.
func (v Vec) Minus(r Vec) Vec {
	return Vec{v.X - r.X, v.Y - r.Y, v.Z - r.Z}
}

// Times multiplies vectors together elementwise.
func (v Vec) Times(r Vec) Vec {
	return Vec{v.X * r.X, v.Y * r.Y, v.Z * r.Z}
}

// Scale multiplies every component by s.
func (v Vec) Scale(s Float) Vec {
	return Vec{v.X * s, v.Y * s, v.Z * s}
}

// Dot calculates the dot product of two vectors.
func (v Vec) Dot(r Vec) Float {
	return v.X*r.X + v.Y*r.Y + v.Z*r.Z
}

// Len is the euclidean length of v.
func (v Vec) Len() Float {
	return math32.Sqrt(v.Dot(v))
}

// Cross calculates the Cross product of two vectors.
func (v Vec) Cross(b Vec) Vec {
	return Vec{
		v.Y*b.Z - v.Z*b.Y,
		v.Z*b.X - v.X*b.Z,
		v.X*b.Y - v.Y*b.X,
	}
}

// Normalize scales v by its inverse square root.
//
// The zero vector is not guarded, and yields non-finite components.
func (v Vec) Normalize() Vec {
	return v.Scale(1 / math32.Sqrt(v.Dot(v)))
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec) IsFinite() bool {
	for _, c := range [3]Float{v.X, v.Y, v.Z} {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Clamp returns the value v, but restricted to the lower and upper bounds.
func Clamp[T constraints.Float](v, lower, upper T) T {
	if v < lower {
		return lower
	}
	if v > upper {
		return upper
	}
	return v
}
