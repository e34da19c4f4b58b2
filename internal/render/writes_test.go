package render

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"gocloud.dev/blob/memblob"
)

func TestWriteImage(t *testing.T) {
	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(0, 0, color.RGBA{250, 10, 20, 255})
	img.SetRGBA(2, 1, color.RGBA{1, 2, 3, 255})
	if err := WriteImage(ctx, bucket, "out/test.png", img); err != nil {
		t.Fatalf("WriteImage() = %v", err)
	}

	data, err := bucket.ReadAll(ctx, "out/test.png")
	if err != nil {
		t.Fatalf("ReadAll() = %v", err)
	}
	got, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() = %v", err)
	}
	if got, want := got.Bounds(), img.Bounds(); got != want {
		t.Fatalf("decoded bounds = %v, want %v", got, want)
	}
	for _, p := range []image.Point{{0, 0}, {2, 1}, {1, 1}} {
		if got, want := color.RGBAModel.Convert(got.At(p.X, p.Y)), img.RGBAAt(p.X, p.Y); got != want {
			t.Errorf("decoded pixel %v = %v, want %v", p, got, want)
		}
	}
}
