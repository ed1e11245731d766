// Package trace records what the detector is doing: pipeline phases,
// per-file work in directory runs and, at debug level, every occurrence.
//
// Enable it from the command line:
//
//	hiatus scan --trace=- --trace-level=phase poem.txt
//
// # Tracers
//
//   - Nop: disabled, costs nothing
//   - StreamTracer: writes each event at once (text or NDJSON)
//   - RingTracer: keeps the last N events in memory for a dump on failure
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// LevelPhase shows driver and pass boundaries, LevelDetail adds files,
// LevelDebug adds single units such as occurrences. LevelError emits
// nothing by itself; the ring is dumped when a run fails.
//
// Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "scan", parentID)
//	defer span.End("")
package trace
