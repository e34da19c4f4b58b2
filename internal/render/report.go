package render

import (
	"context"
	"strings"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/pkg/errors"
	"gocloud.dev/blob"
)

// Report records how a job was rendered. It's written next to the
// image as <name>.json.
type Report struct {
	ID             string       `json:"id"`
	Backend        string       `json:"backend"`
	Config         RenderConfig `json:"config"`
	Started        time.Time    `json:"started"`
	ElapsedSeconds float64      `json:"elapsed_seconds"`
}

// ReportKey is the object name of the report for the image at name.
func ReportKey(name string) string {
	return strings.TrimSuffix(name, ".png") + ".json"
}

// WriteReport writes r as indented JSON into the bucket.
func WriteReport(ctx context.Context, bucket *blob.Bucket, r Report) error {
	data, err := json.Marshal(r, jsontext.WithIndent("  "))
	if err != nil {
		return errors.Wrapf(err, "unable to marshal report for %v", r.Config.Name)
	}
	key := ReportKey(r.Config.Name)
	return errors.Wrapf(bucket.WriteAll(ctx, key, data, nil), "unable to write report %v", key)
}

// ReadReport reads back the report for the image at name.
func ReadReport(ctx context.Context, bucket *blob.Bucket, name string) (Report, error) {
	var r Report
	data, err := bucket.ReadAll(ctx, ReportKey(name))
	if err != nil {
		return r, errors.Wrapf(err, "unable to read report for %v", name)
	}
	if err := json.Unmarshal(data, &r); err != nil {
		return r, errors.Wrapf(err, "unable to parse report for %v", name)
	}
	return r, nil
}
