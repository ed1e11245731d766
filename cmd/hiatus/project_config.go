package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

const projectFileName = "hiatus.toml"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
	meta   toml.MetaData
}

type projectConfig struct {
	Detect detectConfig `toml:"detect"`
	Output outputConfig `toml:"output"`
}

type detectConfig struct {
	Language     string   `toml:"language"`
	Rules        string   `toml:"rules"`
	ContextWidth int      `toml:"context_width"`
	CrossWord    bool     `toml:"cross_word"`
	CrossLine    bool     `toml:"cross_line"`
	MaxGap       int      `toml:"max_gap"`
	Elision      bool     `toml:"elision"`
	Extensions   []string `toml:"extensions"`
	Cache        bool     `toml:"cache"`
}

type outputConfig struct {
	HTML        string `toml:"html"`
	CSV         string `toml:"csv"`
	CSVExtended bool   `toml:"csv_extended"`
	CRLF        bool   `toml:"crlf"`
	Dir         string `toml:"dir"`
	Title       string `toml:"title"`
}

// defined reports whether key was present in the file.
func (m *projectManifest) defined(key ...string) bool {
	return m != nil && m.meta.IsDefined(key...)
}

// resolve makes a path from the manifest relative to its directory.
func (m *projectManifest) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || m == nil {
		return p
	}
	return filepath.Join(m.Root, filepath.FromSlash(p))
}

func findHiatusToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, projectFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findHiatusToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, meta, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
		meta:   meta,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, toml.MetaData, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, meta, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return projectConfig{}, meta, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("detect", "context_width") && cfg.Detect.ContextWidth < 0 {
		return projectConfig{}, meta, fmt.Errorf("%s: [detect].context_width must not be negative", path)
	}
	if meta.IsDefined("detect", "max_gap") && cfg.Detect.MaxGap < 0 {
		return projectConfig{}, meta, fmt.Errorf("%s: [detect].max_gap must not be negative", path)
	}
	if meta.IsDefined("detect", "language") && meta.IsDefined("detect", "rules") {
		return projectConfig{}, meta, fmt.Errorf("%s: [detect].language and [detect].rules are mutually exclusive", path)
	}
	return cfg, meta, nil
}

const projectTemplate = `# hiatus project settings. Command-line flags override these values.

[detect]
language = %q          # builtin table: %s
# rules = "rules/custom.toml"   # own rule table instead of a builtin language
context_width = 20
cross_word = true
cross_line = true
max_gap = 8
elision = true
extensions = [".txt"]
cache = false

[output]
dir = "hiatus-out"
csv_extended = false
crlf = false
`
