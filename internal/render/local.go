package render

import (
	"context"
	"image"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"pgregory.net/rand"
)

// Local renders with a fixed pool of goroutines in this process.
//
// Each row of the sampling grid is a unit of work with its own random
// generator, and writes only its own row of the image, so no locking is
// needed.
type Local struct {
	// Rays defaults to the postcard Camera for the job's width.
	Rays RayGenerator
	// Workers defaults to GOMAXPROCS.
	Workers int
}

// Name identifies the backend in reports.
func (l *Local) Name() string {
	return "local"
}

// Render renders the job and writes the PNG into the output bucket.
func (l *Local) Render(ctx context.Context, cfg RenderConfig, out Output) error {
	img, err := l.RenderImage(ctx, cfg)
	if err != nil {
		return err
	}
	return WriteImage(ctx, out.Bucket, cfg.Name, img)
}

// RenderImage renders the job into an image. It returns early with the
// context's error if the context is cancelled.
func (l *Local) RenderImage(ctx context.Context, cfg RenderConfig) (*image.RGBA, error) {
	rays := l.Rays
	if rays == nil {
		rays = NewCamera(cfg.Width)
	}
	workers := l.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	trace := tracerFor(cfg.TraceDebug)
	progress := newProgress(ctx, cfg.Height)

	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	// Rows draw from independent generators, split from one seed.
	seed := rand.Uint64()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for y := 0; y < cfg.Height; y++ {
		y := y
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := rand.New(seed, uint64(y))
			for x := 0; x < cfg.Width; x++ {
				radiance := samplePixel(x, y, cfg, rays, trace, rng)
				out := flip(Pixel{x, y}, cfg)
				img.SetRGBA(out.X, out.Y, ToneMap(radiance, cfg.ColorDebug))
			}
			progress.mark()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return img, nil
}

// progress logs every 10% of completed rows.
type progress struct {
	ctx  context.Context
	rows int64

	done, lastTenth atomic.Int64
}

func newProgress(ctx context.Context, rows int) *progress {
	return &progress{ctx: ctx, rows: int64(rows)}
}

func (p *progress) mark() {
	done := p.done.Add(1)
	tenth := done * 10 / p.rows
	for {
		last := p.lastTenth.Load()
		if tenth <= last {
			return
		}
		if p.lastTenth.CompareAndSwap(last, tenth) {
			loggerFrom(p.ctx).Info("render progress", "percent", tenth*10)
			return
		}
	}
}
