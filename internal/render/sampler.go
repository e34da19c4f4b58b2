package render

import (
	"github.com/lostluck/postcard/internal/tracer"
	"github.com/lostluck/postcard/internal/vec"
)

// samplePixel traces cfg.Samples jittered rays through pixel x,y and
// returns their average radiance.
func samplePixel(x, y int, cfg RenderConfig, rays RayGenerator, trace TraceFunc, rng tracer.Source) vec.Vec {
	origin := rays.Origin()
	var sum vec.Vec
	for s := 0; s < cfg.Samples; s++ {
		sum = sum.Plus(trace(origin, rays.Ray(x, y, cfg, rng), cfg.Bounces, rng))
	}
	return average(sum, cfg.Samples)
}

// average divides the summed radiance of n samples.
func average(sum vec.Vec, n int) vec.Vec {
	return sum.Scale(1 / vec.Float(n))
}

// flip maps a sampling grid coordinate to its place in the output image,
// which is mirrored in both axes.
func flip(px Pixel, cfg RenderConfig) Pixel {
	return Pixel{X: cfg.Width - px.X - 1, Y: cfg.Height - px.Y - 1}
}
