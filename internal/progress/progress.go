// Package progress carries per-file status events from the driver to
// whatever renders them (the terminal UI or plain log lines).
package progress

import "time"

// Stage describes a pipeline phase of one document.
type Stage string

const (
	StageLoad     Stage = "load"
	StageTokenize Stage = "tokenize"
	StageClassify Stage = "classify"
	StageScan     Stage = "scan"
	StageWrite    Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for a file, or for the whole run when File is empty.
type Event struct {
	File        string
	Stage       Stage
	Status      Status
	Err         error
	Occurrences int
	Elapsed     time.Duration
}

// Sink consumes progress events. Implementations must be goroutine-safe.
type Sink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// FuncSink adapts a function to Sink.
type FuncSink func(Event)

func (f FuncSink) OnEvent(evt Event) {
	if f != nil {
		f(evt)
	}
}

// Emit sends evt to sink if there is one.
func Emit(sink Sink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}

// Fraction estimates how far along a file is.
func Fraction(stage Stage, status Status) float64 {
	switch status {
	case StatusDone, StatusError:
		return 1
	case StatusQueued:
		return 0
	}
	switch stage {
	case StageLoad:
		return 0.1
	case StageTokenize:
		return 0.2
	case StageClassify:
		return 0.4
	case StageScan:
		return 0.6
	case StageWrite:
		return 0.9
	default:
		return 0
	}
}
