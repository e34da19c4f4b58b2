package render

import (
	"context"
	"image"
	"image/color"
	"log/slog"
	"reflect"

	"github.com/apache/beam/sdks/v2/go/pkg/beam"
	"github.com/apache/beam/sdks/v2/go/pkg/beam/core/sdf"
	"github.com/apache/beam/sdks/v2/go/pkg/beam/io/rtrackers/offsetrange"
	"github.com/apache/beam/sdks/v2/go/pkg/beam/log"
	"github.com/apache/beam/sdks/v2/go/pkg/beam/register"
	"github.com/pkg/errors"
	"gocloud.dev/blob"
	"pgregory.net/rand"

	"github.com/lostluck/postcard/internal/vec"
)

func init() {
	beam.RegisterType(reflect.TypeOf((*RenderConfig)(nil)).Elem())
	beam.RegisterType(reflect.TypeOf((*Pixel)(nil)).Elem())
	beam.RegisterType(reflect.TypeOf((*PixelColour)(nil)).Elem())
	beam.RegisterType(reflect.TypeOf((*vec.Vec)(nil)).Elem())

	register.DoFn3x1[*sdf.LockRTracker, RenderConfig, func(Pixel, vec.Vec), error](&generateRaySDFn{})
	register.Emitter2[Pixel, vec.Vec]()
	register.DoFn3x2[context.Context, Pixel, vec.Vec, Pixel, vec.Vec](&TraceFn{})
	register.Combiner1[vec.Vec](&CombinePixelsFn{})
	register.DoFn2x1[Pixel, vec.Vec, PixelColour](&ToneMapFn{})
	register.DoFn3x1[context.Context, int, func(*PixelColour) bool, error](&MakeImageFn{})
	register.Iter1[PixelColour]()
}

// Beam renders jobs as an Apache Beam pipeline on the named runner.
type Beam struct {
	Runner string
}

// Name identifies the backend in reports.
func (b Beam) Name() string {
	return "beam/" + b.Runner
}

// Render builds the pipeline for the job, and runs it to completion.
// Workers reopen the output by URL, so it must name shared storage.
func (b Beam) Render(ctx context.Context, cfg RenderConfig, out Output) error {
	p := BeamTracer(cfg, out.URL)
	pr, err := beam.Run(ctx, b.Runner, p)
	if err != nil {
		return errors.Wrapf(err, "pipeline execution failed on %v", b.Runner)
	}
	if pr != nil {
		logger := loggerFrom(ctx)
		for _, c := range pr.Metrics().AllMetrics().Counters() {
			logger.Info("pipeline counter",
				slog.String("namespace", c.Key.Namespace),
				slog.String("name", c.Key.Name),
				slog.Int64("value", c.Result()))
		}
	}
	return nil
}

// BeamTracer constructs the pipeline rendering cfg into the bucket at
// bucketURL.
//
// Every sample of every pixel is an element. Samples are traced
// independently, then summed and averaged per pixel with a combiner,
// before being gathered onto a single worker to assemble the image.
func BeamTracer(cfg RenderConfig, bucketURL string) *beam.Pipeline {
	p, s := beam.NewPipelineWithRoot()

	rays := generateRays(s, cfg)

	cam := NewCamera(cfg.Width)
	traced := beam.ParDo(s.Scope("Trace"), &TraceFn{Origin: cam.Origin(), Bounces: cfg.Bounces, Debug: cfg.TraceDebug}, rays)
	radiance := beam.CombinePerKey(s.Scope("MergeRays"), &CombinePixelsFn{Samples: cfg.Samples}, traced)

	toImage(s, radiance, cfg, bucketURL)
	return p
}

func generateRays(s beam.Scope, cfg RenderConfig) beam.PCollection {
	s = s.Scope("GenerateRays")
	col := beam.Create(s, cfg)
	return beam.ParDo(s, &generateRaySDFn{}, col)
}

func toImage(s beam.Scope, radiance beam.PCollection, cfg RenderConfig, bucketURL string) {
	s = s.Scope("ToImage")
	colours := beam.ParDo(s, &ToneMapFn{Linear: cfg.ColorDebug}, radiance)
	// Get everything onto a single machine again.
	grouped := beam.GroupByKey(s, beam.AddFixedKey(s, colours))
	beam.ParDo0(s, &MakeImageFn{Width: cfg.Width, Height: cfg.Height, BucketURL: bucketURL, Name: cfg.Name}, grouped)
}

// generateRaySDFn is a splittable DoFn that maps pixel samples to the
// number line. Restrictions are offset ranges into the number line, where
// each index is one sample of one pixel. Samples of a pixel are
// contiguous, increasing the chance they share a bundle, which makes
// combiner lifting more effective.
type generateRaySDFn struct {
	rng *rand.Rand
}

// Setup seeds a generator for this instance.
func (fn *generateRaySDFn) Setup() {
	fn.rng = rand.New()
}

// CreateInitialRestriction creates an offset range restriction representing
// the number of rays to cast.
func (fn *generateRaySDFn) CreateInitialRestriction(cfg RenderConfig) offsetrange.Restriction {
	return offsetrange.Restriction{
		Start: 0,
		End:   int64(cfg.Width) * int64(cfg.Height) * int64(cfg.Samples),
	}
}

// SplitRestriction splits the restriction into one chunk per row.
func (fn *generateRaySDFn) SplitRestriction(cfg RenderConfig, rest offsetrange.Restriction) []offsetrange.Restriction {
	return rest.EvenSplits(int64(cfg.Height))
}

// RestrictionSize outputs the size of the restriction as the number of elements
// that restriction will output.
func (fn *generateRaySDFn) RestrictionSize(_ RenderConfig, rest offsetrange.Restriction) float64 {
	return rest.Size()
}

// CreateTracker just creates an offset range restriction tracker for the
// restriction.
func (fn *generateRaySDFn) CreateTracker(rest offsetrange.Restriction) *sdf.LockRTracker {
	return sdf.NewLockRTracker(offsetrange.NewTracker(rest))
}

// ProcessElement creates a jittered sample ray paired with the pixel it's
// contributing to.
func (fn *generateRaySDFn) ProcessElement(rt *sdf.LockRTracker, cfg RenderConfig, emit func(Pixel, vec.Vec)) error {
	cam := NewCamera(cfg.Width)
	for i := rt.GetRestriction().(offsetrange.Restriction).Start; rt.TryClaim(i); i++ {
		px := samplePixelAt(i, cfg)
		emit(px, cam.Ray(px.X, px.Y, cfg, fn.rng))
	}
	return nil
}

// samplePixelAt is the pixel that sample index i contributes to.
func samplePixelAt(i int64, cfg RenderConfig) Pixel {
	stride := int64(cfg.Width) * int64(cfg.Samples)
	return Pixel{
		X: int(i % stride / int64(cfg.Samples)),
		Y: int(i / stride),
	}
}

var (
	samplesTraced = beam.NewCounter("postcard", "samplesTraced")
	pixelsWritten = beam.NewCounter("postcard", "pixelsWritten")
)

// TraceFn traces a single sample ray for a pixel.
type TraceFn struct {
	Origin  vec.Vec
	Bounces int
	Debug   bool

	rng   *rand.Rand
	trace TraceFunc
}

// Setup picks the tracer, and seeds a generator for this instance.
func (f *TraceFn) Setup() {
	f.rng = rand.New()
	f.trace = tracerFor(f.Debug)
}

// ProcessElement returns the radiance contributed by this sample.
func (f *TraceFn) ProcessElement(ctx context.Context, k Pixel, ray vec.Vec) (Pixel, vec.Vec) {
	samplesTraced.Inc(ctx, 1)
	return k, f.trace(f.Origin, ray, f.Bounces, f.rng)
}

// CombinePixelsFn averages the sample contributions of a pixel.
type CombinePixelsFn struct {
	Samples int
}

// MergeAccumulators sums together the radiance contributions for a pixel.
func (fn *CombinePixelsFn) MergeAccumulators(a, b vec.Vec) vec.Vec {
	return a.Plus(b)
}

// ExtractOutput divides the summed radiance by the samples per pixel.
func (fn *CombinePixelsFn) ExtractOutput(sum vec.Vec) vec.Vec {
	return average(sum, fn.Samples)
}

// PixelColour is a pixel with its display colour.
type PixelColour struct {
	K       Pixel
	R, G, B uint8
}

// ToneMapFn maps the averaged radiance of a pixel to its display colour.
type ToneMapFn struct {
	Linear bool
}

// ProcessElement tone maps one pixel.
func (f *ToneMapFn) ProcessElement(k Pixel, radiance vec.Vec) PixelColour {
	c := ToneMap(radiance, f.Linear)
	return PixelColour{K: k, R: c.R, G: c.G, B: c.B}
}

// MakeImageFn assembles the pixels, and writes the image to the bucket.
type MakeImageFn struct {
	Width, Height int
	BucketURL     string
	Name          string
}

// ProcessElement iterates over all the pixels and writes the file to the
// designated spot.
func (f *MakeImageFn) ProcessElement(ctx context.Context, _ int, iter func(*PixelColour) bool) error {
	cfg := RenderConfig{Width: f.Width, Height: f.Height}
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	var pc PixelColour
	for iter(&pc) {
		out := flip(pc.K, cfg)
		img.SetRGBA(out.X, out.Y, color.RGBA{pc.R, pc.G, pc.B, 255})
		pixelsWritten.Inc(ctx, 1)
	}
	bucket, err := blob.OpenBucket(ctx, f.BucketURL)
	if err != nil {
		log.Errorf(ctx, "unable to open bucket %v: %v", f.BucketURL, err)
		return err
	}
	defer bucket.Close()
	if err := WriteImage(ctx, bucket, f.Name, img); err != nil {
		log.Errorf(ctx, "unable to write image: %v", err)
		return err
	}
	log.Infof(ctx, "image written to %v/%v", f.BucketURL, f.Name)
	return nil
}
