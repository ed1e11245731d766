package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/atanasgiliev/hiatus-detector/internal/diagfmt"
	"github.com/atanasgiliev/hiatus-detector/internal/driver"
	"github.com/atanasgiliev/hiatus-detector/internal/output"
)

// scanSettings is the merged view of defaults, hiatus.toml and flags.
type scanSettings struct {
	language   string
	rulesPath  string
	opts       driver.Options
	output     output.Options
	htmlPath   string
	csvPath    string
	outDir     string
	extensions []string
	jobs       int
	useCache   bool
	format     string
	ui         uiMode
	withNotes  bool
	fullPath   bool
}

func resolveScanSettings(cmd *cobra.Command) (scanSettings, error) {
	s := scanSettings{opts: driver.DefaultOptions(), format: "pretty", ui: uiModeAuto}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return s, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	s.opts.MaxDiagnostics = maxDiagnostics

	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return s, err
	}
	s.applyManifest(manifest)
	if err := s.applyFlags(cmd.Flags()); err != nil {
		return s, err
	}

	switch s.format {
	case "pretty", "json", "none":
	default:
		return s, fmt.Errorf("unknown format: %s", s.format)
	}
	if s.opts.Scan.ContextWidth < 0 || s.opts.Scan.MaxGap < 0 {
		return s, fmt.Errorf("--context and --max-gap must not be negative")
	}
	return s, nil
}

func (s *scanSettings) applyManifest(m *projectManifest) {
	if m == nil {
		return
	}
	d, o := m.Config.Detect, m.Config.Output
	if m.defined("detect", "language") {
		s.language = d.Language
	}
	if m.defined("detect", "rules") {
		s.rulesPath = m.resolve(d.Rules)
	}
	if m.defined("detect", "context_width") {
		s.opts.Scan.ContextWidth = d.ContextWidth
	}
	if m.defined("detect", "cross_word") {
		s.opts.Scan.CrossWord = d.CrossWord
	}
	if m.defined("detect", "cross_line") {
		s.opts.Scan.CrossLine = d.CrossLine
	}
	if m.defined("detect", "max_gap") {
		s.opts.Scan.MaxGap = d.MaxGap
	}
	if m.defined("detect", "elision") {
		s.opts.Scan.Elision = d.Elision
	}
	if m.defined("detect", "extensions") {
		s.extensions = d.Extensions
	}
	s.useCache = d.Cache
	s.htmlPath = m.resolve(o.HTML)
	s.csvPath = m.resolve(o.CSV)
	s.outDir = m.resolve(o.Dir)
	s.output.Extended = o.CSVExtended
	s.output.CRLF = o.CRLF
	s.output.Title = o.Title
}

func (s *scanSettings) applyFlags(f *pflag.FlagSet) error {
	var err error
	str := func(name string, dst *string) {
		if err == nil && f.Changed(name) {
			*dst, err = f.GetString(name)
		}
	}
	num := func(name string, dst *int) {
		if err == nil && f.Changed(name) {
			*dst, err = f.GetInt(name)
		}
	}
	flag := func(name string, dst *bool) {
		if err == nil && f.Changed(name) {
			*dst, err = f.GetBool(name)
		}
	}
	// --no-* флаги выключают
	negated := func(name string, dst *bool) {
		if err == nil && f.Changed(name) {
			var v bool
			v, err = f.GetBool(name)
			*dst = !v
		}
	}

	if f.Changed("lang") {
		s.rulesPath = ""
	}
	str("lang", &s.language)
	if f.Changed("rules") {
		s.language = ""
	}
	str("rules", &s.rulesPath)
	str("html", &s.htmlPath)
	str("csv", &s.csvPath)
	str("out-dir", &s.outDir)
	str("title", &s.output.Title)
	num("context", &s.opts.Scan.ContextWidth)
	num("max-gap", &s.opts.Scan.MaxGap)
	num("jobs", &s.jobs)
	negated("no-cross-word", &s.opts.Scan.CrossWord)
	negated("no-cross-line", &s.opts.Scan.CrossLine)
	negated("no-elision", &s.opts.Scan.Elision)
	flag("csv-extended", &s.output.Extended)
	flag("crlf", &s.output.CRLF)
	flag("cache", &s.useCache)
	flag("with-notes", &s.withNotes)
	flag("fullpath", &s.fullPath)
	str("format", &s.format)
	if err == nil && f.Changed("ext") {
		s.extensions, err = f.GetStringSlice("ext")
	}
	if err != nil {
		return err
	}

	uiValue, err := f.GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	s.ui, err = readUIMode(uiValue)
	return err
}

// artifactPaths returns the HTML and CSV paths for one input. Explicit paths
// win; otherwise --out-dir, otherwise next to the input when besideInput is set.
func (s *scanSettings) artifactPaths(input string, besideInput bool) (htmlPath, csvPath string) {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	htmlPath, csvPath = s.htmlPath, s.csvPath
	switch {
	case htmlPath != "" || csvPath != "":
		// пропущенный артефакт не пишется
	case s.outDir != "":
		htmlPath = filepath.Join(s.outDir, stem+".html")
		csvPath = filepath.Join(s.outDir, stem+".csv")
	case besideInput:
		dir := filepath.Dir(input)
		htmlPath = filepath.Join(dir, stem+".hiatus.html")
		csvPath = filepath.Join(dir, stem+".hiatus.csv")
	}
	return htmlPath, csvPath
}

func (s *scanSettings) pretty(cmd *cobra.Command) diagfmt.PrettyOpts {
	mode := diagfmt.PathModeAuto
	if s.fullPath {
		mode = diagfmt.PathModeAbsolute
	}
	return diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		Context:   1,
		PathMode:  mode,
		ShowNotes: s.withNotes,
	}
}

func showTimings(cmd *cobra.Command) bool {
	v, _ := cmd.Root().PersistentFlags().GetBool("timings")
	return v
}
