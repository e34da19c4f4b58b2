// postcard renders the postcard scene: block letters in a room lit by
// the sun through its ceiling, path traced through a signed distance
// field.
//
// By default it renders a fixed list of presets in order, on the local
// machine. A YAML job file can replace the presets, and -runner can send
// the work to an Apache Beam runner instead.
//
//	postcard -output_dir=file:///tmp/postcard -only=simplest.png
//	postcard -jobs=jobs.yaml -runner=prism
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/url"
	"os"
	"path"
	"runtime/pprof"

	"github.com/apache/beam/sdks/v2/go/pkg/beam"
	"github.com/pkg/errors"
	"gocloud.dev/blob"

	"github.com/lostluck/postcard/internal/render"

	// Register runners for use with beam.Run.
	_ "github.com/apache/beam/sdks/v2/go/pkg/beam/runners/dataflow"
	_ "github.com/apache/beam/sdks/v2/go/pkg/beam/runners/direct"
	_ "github.com/apache/beam/sdks/v2/go/pkg/beam/runners/prism"
	_ "github.com/apache/beam/sdks/v2/go/pkg/beam/runners/universal"

	// Be able to write to GCS and local buckets.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
)

var (
	jobsFile   = flag.String("jobs", "", "A YAML file listing render jobs. Uses the built in presets if unset.")
	only       = flag.String("only", "", "Render only the job with this name.")
	runner     = flag.String("runner", "local", "Where to render: local, or the name of a Beam runner (direct, prism, universal, dataflow).")
	workers    = flag.Int("workers", 0, "Goroutines for the local runner. Defaults to GOMAXPROCS.")
	outputDir  = flag.String("output_dir", "file:///tmp/postcard?create_dir=true", "The bucket URL the png images and reports are written to.")
	cpuProfile = flag.String("cpu_profile", "", "The filename to write a cpuprofile to.")
	logLevel   = flag.String("log_level", "info", "Minimum log level: debug, info, warn or error.")
)

func main() {
	flag.Parse()
	beam.Init()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		slog.Error("invalid log level", "err", err)
		os.Exit(2)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(context.Background()); err != nil {
		slog.Error("postcard failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if *cpuProfile != "" {
		f, err := os.Create(path.Clean(*cpuProfile))
		if err != nil {
			return errors.Wrap(err, "unable to create cpu profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return errors.Wrap(err, "unable to start cpu profile")
		}
		defer pprof.StopCPUProfile()
	}

	jobs := presets
	if *jobsFile != "" {
		var err error
		if jobs, err = loadJobs(*jobsFile); err != nil {
			return err
		}
	}
	jobs, err := selectJobs(jobs, *only)
	if err != nil {
		return err
	}
	if err := validate(jobs); err != nil {
		return err
	}
	if !validBucketURL(*outputDir) {
		return errors.Errorf("unsupported output_dir %q", *outputDir)
	}

	reports, err := render.RunJobs(ctx, backend(*runner, *workers), *outputDir, jobs)
	for _, r := range reports {
		slog.Info("image written", "output_dir", *outputDir, "name", r.Config.Name, "elapsed_seconds", r.ElapsedSeconds)
	}
	return err
}

// backend picks the local renderer, or a Beam runner by name.
func backend(runner string, workers int) render.Backend {
	if runner == "local" {
		return &render.Local{Workers: workers}
	}
	return render.Beam{Runner: runner}
}

// validBucketURL reports whether a bucket driver is registered for the
// URL's scheme.
func validBucketURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return blob.DefaultURLMux().ValidBucketScheme(u.Scheme)
}
