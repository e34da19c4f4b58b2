package render

import (
	"bufio"
	"context"
	"image"
	"image/png"
	"log/slog"

	"github.com/pkg/errors"
	"gocloud.dev/blob"
)

// WriteImage encodes img as a PNG into the bucket under key.
func WriteImage(ctx context.Context, bucket *blob.Bucket, key string, img image.Image) error {
	w, err := bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: "image/png"})
	if err != nil {
		return errors.Wrapf(err, "unable to create image file at %v", key)
	}
	buf := bufio.NewWriterSize(w, 1<<20) // use 1MB buffer

	loggerFrom(ctx).Info("writing image", slog.String("key", key))
	if err := png.Encode(buf, img); err != nil {
		w.Close()
		return errors.Wrapf(err, "unable to encode image to %v", key)
	}
	if err := buf.Flush(); err != nil {
		w.Close()
		return errors.Wrapf(err, "unable to flush buffer for %v", key)
	}
	return errors.Wrapf(w.Close(), "unable to close %v", key)
}
