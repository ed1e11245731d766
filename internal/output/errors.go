package output

import (
	"errors"
	"fmt"
)

// Artifact names one of the two outputs.
type Artifact string

const (
	ArtifactHTML Artifact = "html"
	ArtifactCSV  Artifact = "csv"
)

// SinkError reports that one artifact could not be written.
// Artifacts written before the failure are left in place.
type SinkError struct {
	Artifact Artifact
	Path     string
	Err      error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("failed to write %s output %s: %v", e.Artifact, e.Path, e.Err)
}

func (e *SinkError) Unwrap() error { return e.Err }

// SinkErrors lists the per-artifact failures inside err, in order.
// WriteFiles joins them, so a single errors.As would only find the first one.
func SinkErrors(err error) []*SinkError {
	var out []*SinkError
	collectSinkErrors(err, &out)
	return out
}

func collectSinkErrors(err error, out *[]*SinkError) {
	if err == nil {
		return
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			collectSinkErrors(e, out)
		}
		return
	}
	var se *SinkError
	if errors.As(err, &se) {
		*out = append(*out, se)
	}
}
