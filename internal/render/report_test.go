package render

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gocloud.dev/blob/memblob"
)

func TestReportKey(t *testing.T) {
	tests := []struct{ name, want string }{
		{"simplest.png", "simplest.json"},
		{"dir/huge.png", "dir/huge.json"},
		{"noext", "noext.json"},
	}
	for _, test := range tests {
		if got := ReportKey(test.name); got != test.want {
			t.Errorf("ReportKey(%q) = %q, want %q", test.name, got, test.want)
		}
	}
}

func TestWriteReport(t *testing.T) {
	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	want := Report{
		ID:             "a1",
		Backend:        "local",
		Config:         RenderConfig{Width: 20, Height: 20, Samples: 8, Bounces: 2, Name: "simplest_tiny.png", ColorDebug: true},
		Started:        time.Date(2026, 10, 18, 13, 0, 0, 0, time.UTC),
		ElapsedSeconds: 1.5,
	}
	if err := WriteReport(ctx, bucket, want); err != nil {
		t.Fatalf("WriteReport() = %v", err)
	}
	got, err := ReadReport(ctx, bucket, "simplest_tiny.png")
	if err != nil {
		t.Fatalf("ReadReport() = %v", err)
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("ReadReport() diff (-want +got):\n%v", d)
	}
	if _, err := ReadReport(ctx, bucket, "missing.png"); err == nil {
		t.Errorf("ReadReport(missing) = nil error, want an error")
	}
}
