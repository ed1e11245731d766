package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/atanasgiliev/hiatus-detector/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and validate rule tables",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the builtin languages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, name := range rules.List() {
			marker := " "
			if name == rules.DefaultLanguage {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name)
		}
		return nil
	},
}

var rulesShowCmd = &cobra.Command{
	Use:   "show <language|file.toml>",
	Short: "Show the letters and clusters of a rule table",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesShow,
}

var rulesCheckCmd = &cobra.Command{
	Use:   "check <file.toml>...",
	Short: "Validate rule table files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRulesCheck,
}

func init() {
	rulesShowCmd.Flags().Bool("raw", false, "print the table source as written")
	rulesShowCmd.Flags().String("format", "pretty", "output format (pretty|toml)")
	rulesCmd.AddCommand(rulesListCmd, rulesShowCmd, rulesCheckCmd)
}

// loadTable treats arguments ending in .toml as files, others as builtin names.
func loadTable(arg string) (*rules.Table, error) {
	if strings.HasSuffix(strings.ToLower(arg), ".toml") {
		return rules.Load(arg)
	}
	return rules.Builtin(arg)
}

// tableSummary is the normalized view printed by `rules show --format toml`.
type tableSummary struct {
	Name           string   `toml:"name"`
	Source         string   `toml:"source"`
	Digest         string   `toml:"digest"`
	MaxCluster     int      `toml:"max_cluster_length"`
	FoldMarks      bool     `toml:"fold_marks"`
	FoldDiphthongs bool     `toml:"fold_diphthongs"`
	Vowels         []string `toml:"vowels"`
	Consonants     []string `toml:"consonants"`
	Glides         []string `toml:"glides"`
}

func summarize(t *rules.Table) tableSummary {
	return tableSummary{
		Name:           t.Name(),
		Source:         t.Source(),
		Digest:         t.DigestHex(),
		MaxCluster:     t.MaxClusterLength(),
		FoldMarks:      t.FoldMarks(),
		FoldDiphthongs: t.FoldDiphthongs(),
		Vowels:         t.Entries(rules.Vowel),
		Consonants:     t.Entries(rules.Consonant),
		Glides:         t.Entries(rules.Glide),
	}
}

func runRulesShow(cmd *cobra.Command, args []string) error {
	raw, err := cmd.Flags().GetBool("raw")
	if err != nil {
		return fmt.Errorf("failed to get raw flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	table, err := loadTable(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if raw {
		_, err = io.WriteString(out, table.Raw())
		return err
	}
	switch format {
	case "toml":
		return toml.NewEncoder(out).Encode(summarize(table))
	case "pretty":
		return printTable(out, summarize(table))
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func printTable(w io.Writer, s tableSummary) error {
	fmt.Fprintf(w, "%s (%s)\n", s.Name, s.Source)
	fmt.Fprintf(w, "  digest          %s\n", s.Digest[:16])
	fmt.Fprintf(w, "  max cluster     %d\n", s.MaxCluster)
	fmt.Fprintf(w, "  fold marks      %t\n", s.FoldMarks)
	fmt.Fprintf(w, "  fold diphthongs %t\n", s.FoldDiphthongs)
	fmt.Fprintf(w, "  vowels     (%d) %s\n", len(s.Vowels), strings.Join(s.Vowels, " "))
	fmt.Fprintf(w, "  consonants (%d) %s\n", len(s.Consonants), strings.Join(s.Consonants, " "))
	_, err := fmt.Fprintf(w, "  glides     (%d) %s\n", len(s.Glides), strings.Join(s.Glides, " "))
	return err
}

func runRulesCheck(cmd *cobra.Command, args []string) error {
	failed := 0
	for _, path := range args {
		table, err := rules.Load(path)
		if err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
			continue
		}
		if !quiet(cmd) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%s, %d vowels, %d consonants, %d glides)\n",
				path, table.Name(), table.Count(rules.Vowel), table.Count(rules.Consonant), table.Count(rules.Glide))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d rule tables are invalid", failed, len(args))
	}
	return nil
}
