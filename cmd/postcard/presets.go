package main

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lostluck/postcard/internal/render"
)

// presets are the jobs rendered when no job file is given.
var presets = []render.RenderConfig{
	{Width: 20, Height: 20, Samples: 8, Bounces: 2, Name: "simplest_tiny.png"},
	{Width: 200, Height: 200, Samples: 1, Bounces: 1, Name: "simplest.png"},
	{Width: 200, Height: 200, Samples: 4, Bounces: 2, Name: "simplest_4x2.png"},
	{Width: 200, Height: 200, Samples: 8, Bounces: 2, Name: "simplest_8x3.png"},
	{Width: 960, Height: 540, Samples: 8, Bounces: 3, Name: "simplest_huge.png"},
}

// loadJobs reads a YAML list of render jobs from path.
func loadJobs(path string) ([]render.RenderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read jobs file %v", path)
	}
	return parseJobs(data)
}

func parseJobs(data []byte) ([]render.RenderConfig, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var jobs []render.RenderConfig
	if err := dec.Decode(&jobs); err != nil {
		return nil, errors.Wrap(err, "unable to parse jobs")
	}
	return jobs, nil
}

// selectJobs filters jobs down to the one named only, if set.
func selectJobs(jobs []render.RenderConfig, only string) ([]render.RenderConfig, error) {
	if only == "" {
		return jobs, nil
	}
	for _, j := range jobs {
		if j.Name == only {
			return []render.RenderConfig{j}, nil
		}
	}
	return nil, errors.Errorf("no job named %q", only)
}

// validate rejects jobs the renderer can't do anything sensible with.
func validate(jobs []render.RenderConfig) error {
	if len(jobs) == 0 {
		return errors.New("no jobs to render")
	}
	seen := map[string]bool{}
	for i, j := range jobs {
		switch {
		case j.Width <= 0 || j.Height <= 0:
			return errors.Errorf("job %d (%q): image must be at least 1x1, got %dx%d", i, j.Name, j.Width, j.Height)
		case j.Samples <= 0:
			return errors.Errorf("job %d (%q): samples must be positive, got %d", i, j.Name, j.Samples)
		case j.Bounces <= 0:
			return errors.Errorf("job %d (%q): bounces must be positive, got %d", i, j.Name, j.Bounces)
		case j.Name == "":
			return errors.Errorf("job %d: missing name", i)
		case seen[j.Name]:
			return errors.Errorf("job %d: duplicate name %q", i, j.Name)
		}
		seen[j.Name] = true
	}
	return nil
}
