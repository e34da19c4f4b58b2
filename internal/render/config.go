// Package render turns the postcard scene into images: it generates
// jittered camera rays, traces them, averages the samples of each pixel,
// tone maps the result and writes it out as a PNG.
//
// Two backends are provided. Local renders with a pool of goroutines in
// this process, and Beam renders as an Apache Beam pipeline.
package render

import (
	"context"
	"log/slog"

	"github.com/lostluck/postcard/internal/tracer"
	"github.com/lostluck/postcard/internal/vec"
)

// RenderConfig describes a single render job. It's immutable for the
// duration of the render.
type RenderConfig struct {
	Width   int `yaml:"width" json:"width"`
	Height  int `yaml:"height" json:"height"`
	Samples int `yaml:"samples" json:"samples"` // Samples per pixel.
	Bounces int `yaml:"bounces" json:"bounces"` // Maximum bounces per path.

	// Name is the object name of the image written to the output bucket.
	Name string `yaml:"name" json:"name"`

	// TraceDebug colours surfaces by kind instead of path tracing.
	TraceDebug bool `yaml:"trace_debug,omitempty" json:"trace_debug,omitempty"`
	// ColorDebug uses the linear tone mapper instead of Reinhard.
	ColorDebug bool `yaml:"color_debug,omitempty" json:"color_debug,omitempty"`
}

// Pixel is an x,y coordinate in the sampling grid. Used as a key in the
// Beam pipeline.
type Pixel struct {
	X, Y int
}

// TraceFunc computes the radiance of one light path.
type TraceFunc func(origin, direction vec.Vec, maxBounces int, rng tracer.Source) vec.Vec

// tracerFor picks the path tracer, or the flat debug tracer.
func tracerFor(debug bool) TraceFunc {
	if debug {
		return tracer.TraceDebug
	}
	return tracer.Trace
}

type loggerKey struct{}

// WithLogger attaches a logger to the context, used for progress reports.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func loggerFrom(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}
