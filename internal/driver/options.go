package driver

import (
	"github.com/atanasgiliev/hiatus-detector/internal/annotate"
	"github.com/atanasgiliev/hiatus-detector/internal/output"
	"github.com/atanasgiliev/hiatus-detector/internal/progress"
	"github.com/atanasgiliev/hiatus-detector/internal/scan"
)

// Options configure one detection run.
type Options struct {
	MaxDiagnostics int
	Scan           scan.Options    // Reporter is set by the driver
	Marker         annotate.Marker // nil: annotate.Brackets
	Cache          *DiskCache      // nil: no cache
}

// DefaultOptions returns the settings used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		MaxDiagnostics: 100,
		Scan:           scan.DefaultOptions(),
	}
}

// DirOptions configure DetectDir.
type DirOptions struct {
	Options
	Jobs       int      // 0: GOMAXPROCS
	OutDir     string   // artifacts go here, mirroring the input tree; "" disables writing
	Extensions []string // default: .txt
	Output     output.Options
	Progress   progress.Sink
}
