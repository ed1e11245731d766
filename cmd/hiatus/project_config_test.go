package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/atanasgiliev/hiatus-detector/internal/output"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFindHiatusTomlWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, projectFileName), "[detect]\nlanguage = \"spanish\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := loadProjectManifest(nested)
	if err != nil || !ok {
		t.Fatalf("expected manifest, got ok=%v err=%v", ok, err)
	}
	if m.Root != root {
		t.Fatalf("root = %q, want %q", m.Root, root)
	}
	if m.Config.Detect.Language != "spanish" || !m.defined("detect", "language") || m.defined("detect", "max_gap") {
		t.Fatalf("unexpected config %+v", m.Config)
	}
}

func TestLoadProjectConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "[detect\n", "failed to parse TOML"},
		{"unknown key", "[detect]\nlanguge = \"greek\"\n", "unknown keys: detect.languge"},
		{"negative gap", "[detect]\nmax_gap = -1\n", "max_gap must not be negative"},
		{"both tables", "[detect]\nlanguage = \"greek\"\nrules = \"x.toml\"\n", "mutually exclusive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), projectFileName)
			writeFile(t, path, tt.content)
			_, _, err := loadProjectConfig(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestDefaultManifestLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), projectFileName)
	writeFile(t, path, buildDefaultManifest("italian"))
	cfg, meta, err := loadProjectConfig(path)
	if err != nil {
		t.Fatalf("starter manifest does not load: %v", err)
	}
	if cfg.Detect.Language != "italian" || cfg.Detect.MaxGap != 8 || !meta.IsDefined("output", "dir") {
		t.Fatalf("unexpected starter config %+v", cfg)
	}
}

func TestSettingsPrecedence(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, projectFileName)
	writeFile(t, path, `[detect]
rules = "rules/mine.toml"
context_width = 5
cross_line = false
max_gap = 3

[output]
dir = "out"
csv_extended = true
`)
	m, _, err := loadProjectManifest(root)
	if err != nil {
		t.Fatal(err)
	}

	f := pflag.NewFlagSet("scan", pflag.ContinueOnError)
	registerScanFlags(f)
	if err := f.Parse([]string{"--lang", "spanish", "--max-gap", "12", "--no-elision", "--format", "json"}); err != nil {
		t.Fatal(err)
	}

	s := scanSettings{format: "pretty"}
	s.opts.Scan.CrossWord, s.opts.Scan.CrossLine, s.opts.Scan.Elision = true, true, true
	s.applyManifest(m)
	if err := s.applyFlags(f); err != nil {
		t.Fatal(err)
	}

	if s.language != "spanish" || s.rulesPath != "" {
		t.Errorf("--lang must replace the manifest table: lang=%q rules=%q", s.language, s.rulesPath)
	}
	if s.opts.Scan.ContextWidth != 5 || s.opts.Scan.MaxGap != 12 {
		t.Errorf("context=%d max_gap=%d", s.opts.Scan.ContextWidth, s.opts.Scan.MaxGap)
	}
	if !s.opts.Scan.CrossWord || s.opts.Scan.CrossLine || s.opts.Scan.Elision {
		t.Errorf("unexpected toggles %+v", s.opts.Scan)
	}
	if s.outDir != filepath.Join(root, "out") || !s.output.Extended {
		t.Errorf("output settings not applied: dir=%q extended=%v", s.outDir, s.output.Extended)
	}
	if s.format != "json" || s.ui != uiModeAuto {
		t.Errorf("format=%q ui=%q", s.format, s.ui)
	}
}

func TestArtifactPaths(t *testing.T) {
	tests := []struct {
		name     string
		s        scanSettings
		input    string
		beside   bool
		wantHTML string
		wantCSV  string
	}{
		{"beside input", scanSettings{}, filepath.Join("poems", "odes.txt"), true,
			filepath.Join("poems", "odes.hiatus.html"), filepath.Join("poems", "odes.hiatus.csv")},
		{"out dir", scanSettings{outDir: "out"}, filepath.Join("poems", "odes.txt"), true,
			filepath.Join("out", "odes.html"), filepath.Join("out", "odes.csv")},
		{"explicit html only", scanSettings{htmlPath: "x.html", outDir: "out"}, "odes.txt", true, "x.html", ""},
		{"stdin without paths", scanSettings{}, "stdin.txt", false, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, c := tt.s.artifactPaths(tt.input, tt.beside)
			if h != tt.wantHTML || c != tt.wantCSV {
				t.Fatalf("got (%q, %q), want (%q, %q)", h, c, tt.wantHTML, tt.wantCSV)
			}
		})
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Error("expected error for invalid mode")
	}
}

func TestReportArtifacts(t *testing.T) {
	htmlErr := &output.SinkError{Artifact: output.ArtifactHTML, Path: "a.html", Err: os.ErrPermission}
	csvErr := &output.SinkError{Artifact: output.ArtifactCSV, Path: "a.csv", Err: os.ErrPermission}

	var buf strings.Builder
	reportArtifacts(&buf, "a.html", "a.csv", htmlErr)
	if buf.String() != "wrote a.csv\n" {
		t.Fatalf("unexpected report %q", buf.String())
	}
	buf.Reset()
	reportArtifacts(&buf, "a.html", "a.csv", errors.Join(htmlErr, csvErr))
	if buf.String() != "" {
		t.Fatalf("both artifacts failed, got %q", buf.String())
	}
}

func TestInitWritesManifest(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "corpus")
	cmd := &cobra.Command{}
	cmd.Flags().String("lang", "spanish", "")
	cmd.Flags().Bool("copy-rules", true, "")
	var out strings.Builder
	cmd.SetOut(&out)

	if err := runInit(cmd, []string{dir}); err != nil {
		t.Fatalf("init: %v", err)
	}
	cfg, _, err := loadProjectConfig(filepath.Join(dir, projectFileName))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Detect.Rules != "rules/spanish.toml" || cfg.Detect.Language != "" {
		t.Fatalf("expected copied rules to be referenced, got %+v", cfg.Detect)
	}
	if _, err := os.Stat(filepath.Join(dir, "rules", "spanish.toml")); err != nil {
		t.Fatalf("rules not copied: %v", err)
	}
	if err := runInit(cmd, []string{dir}); err == nil || !strings.Contains(err.Error(), "already initialized") {
		t.Fatalf("second init must fail, got %v", err)
	}
}
