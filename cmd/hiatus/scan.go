package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/atanasgiliev/hiatus-detector/internal/diagfmt"
	"github.com/atanasgiliev/hiatus-detector/internal/driver"
	"github.com/atanasgiliev/hiatus-detector/internal/output"
	"github.com/atanasgiliev/hiatus-detector/internal/rules"
	"github.com/atanasgiliev/hiatus-detector/internal/scan"
	"github.com/atanasgiliev/hiatus-detector/internal/source"
)

var scanCmd = &cobra.Command{
	Use:   "scan [flags] <file|directory|->",
	Short: "Detect hiatus and write the HTML and CSV artifacts",
	Long: `Scan a text file, every matching file of a directory, or standard input ("-").
For a file the artifacts default to <name>.hiatus.html and <name>.hiatus.csv next to it;
with --out-dir (or for a directory) they are written there as <name>.html and <name>.csv.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	registerScanFlags(scanCmd.Flags())
}

func registerScanFlags(f *pflag.FlagSet) {
	f.String("html", "", "HTML output path (file mode)")
	f.String("csv", "", "CSV output path (file mode)")
	f.String("out-dir", "", "directory for the artifacts")
	f.String("lang", "", "builtin rule table ("+strings.Join(rules.List(), "|")+")")
	f.String("rules", "", "rule table file (TOML), overrides --lang")
	f.Int("context", scan.DefaultContextWidth, "characters of context on each side of an occurrence")
	f.Int("max-gap", scan.DefaultMaxGap, "longest separator run bridged between words")
	f.Bool("no-cross-word", false, "do not report pairs between words on one line")
	f.Bool("no-cross-line", false, "do not report pairs across line breaks")
	f.Bool("no-elision", false, "report pairs even when elision is marked")
	f.Bool("csv-extended", false, "append kind,line,left,right columns to the CSV")
	f.Bool("crlf", false, "terminate CSV records with CRLF")
	f.String("title", "", "HTML page title")
	f.StringSlice("ext", nil, "file extensions scanned in directory mode (default .txt)")
	f.Bool("cache", false, "reuse results from the on-disk cache")
	f.Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	f.String("ui", "auto", "progress UI for directories (auto|on|off)")
	f.String("format", "pretty", "stdout listing of occurrences (pretty|json|none)")
	f.Bool("with-notes", false, "include diagnostic notes")
	f.Bool("fullpath", false, "emit absolute file paths in diagnostics")
}

func runScan(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	target := args[0]
	settings, err := resolveScanSettings(cmd)
	if err != nil {
		return err
	}
	table, err := rules.Resolve(settings.language, settings.rulesPath)
	if err != nil {
		return err
	}
	if settings.useCache {
		cache, err := driver.OpenDiskCache("hiatus")
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: cache disabled: %v\n", err)
		} else {
			settings.opts.Cache = cache
		}
	}

	if target == "-" {
		return scanStdin(cmd, table, settings)
	}
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", target, err)
	}
	if info.IsDir() {
		return scanDir(cmd, target, table, settings)
	}
	return scanFile(cmd, target, table, settings)
}

func scanStdin(cmd *cobra.Command, table *rules.Table, s scanSettings) error {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	text, _, err := source.Decode("<stdin>", data)
	if err != nil {
		return err
	}
	res, err := driver.DetectText(cmd.Context(), "<stdin>", text, table, s.opts)
	if err != nil {
		return err
	}
	htmlPath, csvPath := s.artifactPaths("stdin.txt", false)
	return finishFile(cmd, res, htmlPath, csvPath, s)
}

func scanFile(cmd *cobra.Command, path string, table *rules.Table, s scanSettings) error {
	res, err := driver.Detect(cmd.Context(), path, table, s.opts)
	if err != nil {
		var encErr *source.EncodingError
		if errors.As(err, &encErr) {
			return fmt.Errorf("%w (no output written)", err)
		}
		return err
	}
	htmlPath, csvPath := s.artifactPaths(path, true)
	return finishFile(cmd, res, htmlPath, csvPath, s)
}

func finishFile(cmd *cobra.Command, res *driver.Result, htmlPath, csvPath string, s scanSettings) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if res.Bag.Len() > 0 && !quiet(cmd) {
		res.Bag.Sort()
		diagfmt.Pretty(stderr, res.Bag, res.FileSet, s.pretty(cmd))
	}

	if dir := s.outDir; dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	writeErr := res.Write(htmlPath, csvPath, s.output)

	if err := printListing(cmd, stdout, res, s.format); err != nil {
		return err
	}
	if !quiet(cmd) {
		fmt.Fprintf(stderr, "%s: %s\n", res.File.Path, res.Summary())
		reportArtifacts(stderr, htmlPath, csvPath, writeErr)
	}
	if showTimings(cmd) {
		fmt.Fprint(stderr, res.Timer.Summary())
	}
	return writeErr
}

func printListing(cmd *cobra.Command, w io.Writer, res *driver.Result, format string) error {
	switch format {
	case "pretty":
		return diagfmt.FormatOccurrencesPretty(w, res.File.Path, res.Records, 80, useColor(cmd, os.Stdout))
	case "json":
		return diagfmt.FormatOccurrencesJSON(w, res.File.Path, res.Table.Name(), res.Cached, res.Records)
	case "none":
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// reportArtifacts names the artifacts that were written; a failed one is
// reported by the returned error instead.
func reportArtifacts(w io.Writer, htmlPath, csvPath string, writeErr error) {
	failed := map[output.Artifact]bool{}
	for _, se := range output.SinkErrors(writeErr) {
		failed[se.Artifact] = true
	}
	if htmlPath != "" && !failed[output.ArtifactHTML] {
		fmt.Fprintf(w, "wrote %s\n", htmlPath)
	}
	if csvPath != "" && !failed[output.ArtifactCSV] {
		fmt.Fprintf(w, "wrote %s\n", csvPath)
	}
}

func scanDir(cmd *cobra.Command, dir string, table *rules.Table, s scanSettings) error {
	ctx := cmd.Context()
	stderr := cmd.ErrOrStderr()
	outDir := s.outDir
	if outDir == "" {
		outDir = filepath.Join(dir, "hiatus-out")
	}
	dopts := driver.DirOptions{
		Options:    s.opts,
		Jobs:       s.jobs,
		OutDir:     outDir,
		Extensions: s.extensions,
		Output:     s.output,
	}

	files, err := driver.ListFiles(dir, s.extensions)
	if err != nil {
		return err
	}
	var res *driver.DirResult
	if shouldUseTUI(s.ui) && !quiet(cmd) && len(files) > 0 {
		res, err = runDetectDirWithUI(ctx, "hiatus scan "+dir, dir, files, table, dopts)
	} else {
		res, err = driver.DetectDir(ctx, dir, table, dopts)
	}
	if err != nil {
		return err
	}

	failed := 0
	for _, f := range res.Files {
		if f.Bag != nil && f.Bag.Len() > 0 && !quiet(cmd) {
			f.Bag.Sort()
			diagfmt.Pretty(stderr, f.Bag, f.FileSet, s.pretty(cmd))
		}
		if f.Err != nil {
			failed++
			// load, decode and sink failures already came out as diagnostics
			if f.Bag == nil || !f.Bag.HasErrors() || quiet(cmd) {
				fmt.Fprintf(stderr, "%s: error: %v\n", f.Path, f.Err)
			}
			continue
		}
		if s.format == "json" {
			continue
		}
		if !quiet(cmd) {
			fmt.Fprintf(stderr, "%s: %s\n", f.Path, f.Summary)
		}
	}
	if s.format == "json" {
		if err := diagfmt.FormatDirJSON(cmd.OutOrStdout(), toDirEntries(res)); err != nil {
			return err
		}
	}
	if !quiet(cmd) {
		fmt.Fprintf(stderr, "%d files, %d occurrences, artifacts in %s\n", len(res.Files), res.Total(), outDir)
	}
	if showTimings(cmd) {
		fmt.Fprint(stderr, res.Timer.Summary())
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(res.Files))
	}
	return nil
}

func toDirEntries(res *driver.DirResult) []diagfmt.DirEntry {
	entries := make([]diagfmt.DirEntry, 0, len(res.Files))
	for _, f := range res.Files {
		e := diagfmt.DirEntry{File: f.Path, Occurrences: f.Count, HTML: f.HTML, CSV: f.CSV}
		if f.Err != nil {
			e.Error = f.Err.Error()
		}
		entries = append(entries, e)
	}
	return entries
}
