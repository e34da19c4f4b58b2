package render

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gocloud.dev/blob"
)

// Output is where a job's image is written. Bucket is open for the whole
// run; URL reopens the same bucket from other processes, such as pipeline
// workers.
type Output struct {
	URL    string
	Bucket *blob.Bucket
}

// Backend renders a job, writing its image to the output.
type Backend interface {
	Name() string
	Render(ctx context.Context, cfg RenderConfig, out Output) error
}

// RunJobs renders each job in turn with the backend, writing every image
// and its report into the bucket at bucketURL. It stops at the first
// failure.
func RunJobs(ctx context.Context, backend Backend, bucketURL string, jobs []RenderConfig) ([]Report, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open output bucket %v", bucketURL)
	}
	defer bucket.Close()

	out := Output{URL: bucketURL, Bucket: bucket}
	var reports []Report
	for _, cfg := range jobs {
		r := Report{
			ID:      uuid.NewString(),
			Backend: backend.Name(),
			Config:  cfg,
			Started: time.Now(),
		}
		logger := slog.Default().With(slog.String("job", r.ID), slog.String("name", cfg.Name))
		logger.Info("render start",
			slog.Int("width", cfg.Width), slog.Int("height", cfg.Height),
			slog.Int("samples", cfg.Samples), slog.Int("bounces", cfg.Bounces),
			slog.String("backend", r.Backend))

		if err := backend.Render(WithLogger(ctx, logger), cfg, out); err != nil {
			return reports, errors.Wrapf(err, "render of %v failed", cfg.Name)
		}
		r.ElapsedSeconds = time.Since(r.Started).Seconds()
		if err := WriteReport(ctx, bucket, r); err != nil {
			return reports, err
		}
		logger.Info("render done", slog.Duration("elapsed", time.Since(r.Started)))
		reports = append(reports, r)
	}
	return reports, nil
}
