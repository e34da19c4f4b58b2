package render

import (
	"image/color"

	"github.com/chewxy/math32"

	"github.com/lostluck/postcard/internal/vec"
)

// ToneMap maps linear radiance to a display colour, with Reinhard
// compression, or with a linear clamp when linear is set.
func ToneMap(radiance vec.Vec, linear bool) color.RGBA {
	m := Reinhard
	if linear {
		m = Linear
	}
	return color.RGBA{m(radiance.X), m(radiance.Y), m(radiance.Z), 255}
}

// Reinhard compresses an unbounded channel into [0, 255) with c/(c+1).
// The mapping is monotonic, so relative brightness is preserved.
func Reinhard(c vec.Float) uint8 {
	if bad, v := nonFinite(c); bad {
		return v
	}
	if c <= 0 {
		return 0
	}
	return uint8(c / (c + 1) * 255)
}

// Linear scales a channel by 255 and clamps it.
func Linear(c vec.Float) uint8 {
	if bad, v := nonFinite(c); bad {
		return v
	}
	return uint8(vec.Clamp(c*255, 0, 255))
}

// nonFinite maps NaN to black and infinities to the channel's extremes,
// since converting them to uint8 is undefined.
func nonFinite(c vec.Float) (bool, uint8) {
	switch {
	case math32.IsNaN(c):
		return true, 0
	case math32.IsInf(c, 1):
		return true, 255
	case math32.IsInf(c, -1):
		return true, 0
	}
	return false, 0
}
