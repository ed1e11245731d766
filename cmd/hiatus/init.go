package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atanasgiliev/hiatus-detector/internal/rules"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a hiatus.toml with the default settings",
	Long: `Initialize a directory for hiatus by writing hiatus.toml. With --copy-rules the
builtin table of --lang is copied to rules/<lang>.toml and referenced from the
manifest, so it can be edited.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("lang", rules.DefaultLanguage, "builtin language for the new project")
	initCmd.Flags().Bool("copy-rules", false, "copy the builtin table into rules/ for editing")
}

func runInit(cmd *cobra.Command, args []string) error {
	lang, err := cmd.Flags().GetString("lang")
	if err != nil {
		return fmt.Errorf("failed to get lang flag: %w", err)
	}
	copyRules, err := cmd.Flags().GetBool("copy-rules")
	if err != nil {
		return fmt.Errorf("failed to get copy-rules flag: %w", err)
	}
	src, ok := rules.BuiltinSource(lang)
	if !ok {
		return fmt.Errorf("unknown language %q (available: %s)", lang, strings.Join(rules.List(), ", "))
	}

	target := "."
	if len(args) > 0 && args[0] != "" {
		target = args[0]
	}
	target, err = filepath.Abs(target)
	if err != nil {
		return err
	}
	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	manifestPath := filepath.Join(target, projectFileName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("already initialized: %s exists", manifestPath)
	}

	manifest := buildDefaultManifest(lang)
	created := []string{projectFileName}
	if copyRules {
		rel := filepath.ToSlash(filepath.Join("rules", lang+".toml"))
		rulesPath := filepath.Join(target, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(rulesPath), 0o755); err != nil {
			return fmt.Errorf("failed to create rules directory: %w", err)
		}
		if _, err := os.Stat(rulesPath); errors.Is(err, os.ErrNotExist) {
			if err := os.WriteFile(rulesPath, src, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", rel, err)
			}
			created = append(created, rel)
		}
		manifest = strings.Replace(manifest, fmt.Sprintf("language = %q", lang), fmt.Sprintf("rules = %q", rel), 1)
	}
	if err := os.WriteFile(manifestPath, []byte(manifest), 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized hiatus in %s\n", target)
	for _, name := range created {
		fmt.Fprintf(out, "  - %s\n", name)
	}
	return nil
}

// buildDefaultManifest returns the starter hiatus.toml for lang.
func buildDefaultManifest(lang string) string {
	return fmt.Sprintf(projectTemplate, lang, strings.Join(rules.List(), ", "))
}
