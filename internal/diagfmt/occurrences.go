package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/atanasgiliev/hiatus-detector/internal/report"
)

// RecordJSON is one occurrence row in JSON output.
type RecordJSON struct {
	Index     int    `json:"index"`
	Start     uint32 `json:"start"`
	End       uint32 `json:"end"`
	Line      string `json:"line"`
	Matched   string `json:"matched_text"`
	CrossWord bool   `json:"cross_word"`
	Kind      string `json:"kind"`
	Left      string `json:"left"`
	Right     string `json:"right"`
	Context   string `json:"context"`
}

// OccurrencesOutput is the JSON document for one scanned file.
type OccurrencesOutput struct {
	File        string       `json:"file"`
	Language    string       `json:"language"`
	Cached      bool         `json:"cached,omitempty"`
	Occurrences []RecordJSON `json:"occurrences"`
	Total       int          `json:"total"`
	Intra       int          `json:"intra"`
	CrossWord   int          `json:"cross_word"`
	CrossLine   int          `json:"cross_line"`
}

// BuildOccurrencesOutput converts records without serializing them.
func BuildOccurrencesOutput(file, language string, cached bool, records []report.Record) OccurrencesOutput {
	out := OccurrencesOutput{
		File:        file,
		Language:    language,
		Cached:      cached,
		Occurrences: make([]RecordJSON, 0, len(records)),
	}
	for _, r := range records {
		out.Occurrences = append(out.Occurrences, RecordJSON(r))
	}
	s := report.Summarize(records)
	out.Total, out.Intra, out.CrossWord, out.CrossLine = s.Total, s.Intra, s.CrossWord, s.CrossLine
	return out
}

// FormatOccurrencesJSON writes the occurrence table of one file as JSON.
func FormatOccurrencesJSON(w io.Writer, file, language string, cached bool, records []report.Record) error {
	return encode(w, BuildOccurrencesOutput(file, language, cached, records))
}

// FormatOccurrencesPretty prints one line per occurrence:
//
//	path:line: #idx KIND "matched" | context
//
// Context is flattened to one line and cut to width columns (0: no limit).
func FormatOccurrencesPretty(w io.Writer, path string, records []report.Record, width int, useColor bool) error {
	kindColor := map[string]*color.Color{
		"I": color.New(color.FgGreen, color.Bold),
		"B": color.New(color.FgYellow, color.Bold),
		"V": color.New(color.FgMagenta, color.Bold),
	}
	for _, c := range kindColor {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	for _, r := range records {
		tag := r.Kind
		if c, ok := kindColor[r.Kind]; ok {
			tag = c.Sprint(r.Kind)
		}
		ctx := flatten(r.Context)
		if width > 0 {
			ctx = runewidth.Truncate(ctx, width, "…")
		}
		if _, err := fmt.Fprintf(w, "%s:%s: #%d %s %q | %s\n", path, r.Line, r.Index, tag, flatten(r.Matched), ctx); err != nil {
			return err
		}
	}
	return nil
}

var flattener = strings.NewReplacer("\r\n", "⏎", "\n", "⏎", "\r", "⏎", "\t", " ")

func flatten(s string) string {
	return flattener.Replace(s)
}

// DirEntry summarizes one file of a directory run.
type DirEntry struct {
	File        string `json:"file"`
	Occurrences int    `json:"occurrences"`
	HTML        string `json:"html,omitempty"`
	CSV         string `json:"csv,omitempty"`
	Error       string `json:"error,omitempty"`
}

// FormatDirJSON writes the per-file summary of a directory run.
func FormatDirJSON(w io.Writer, entries []DirEntry) error {
	total := 0
	for _, e := range entries {
		total += e.Occurrences
	}
	return encode(w, struct {
		Files []DirEntry `json:"files"`
		Total int        `json:"total"`
	}{entries, total})
}
