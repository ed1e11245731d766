// Package diag defines the diagnostic model shared by all pipeline phases.
//
// # Purpose
//
//   - Provide deterministic data structures that capture non-fatal findings
//     produced by the tokenizer, the phonetic classifier and the scanner.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform formatting or IO. Rendering lives in
// internal/diagfmt. Fatal conditions (bad rule tables, undecodable input,
// unwritable sinks) are Go errors, not diagnostics.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the source.Span pointing to the finding.
//   - Notes – optional secondary spans/messages for additional context.
//
// # Emitting diagnostics
//
// Phases receive a diag.Reporter. ReportInfo/ReportWarning/ReportError return a
// ReportBuilder; chain WithNote and finish with Emit. BagReporter aggregates
// diagnostics into a Bag, which supports limits, sorting and deduplication.
package diag
