package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atanasgiliev/hiatus-detector/internal/diag"
	"github.com/atanasgiliev/hiatus-detector/internal/diagfmt"
	"github.com/atanasgiliev/hiatus-detector/internal/lexer"
	"github.com/atanasgiliev/hiatus-detector/internal/phon"
	"github.com/atanasgiliev/hiatus-detector/internal/rules"
	"github.com/atanasgiliev/hiatus-detector/internal/source"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file",
	Short: "Show the tokens or sound units of a text file",
	Long:  `Tokenize splits a text into words and separators; with --units each word is classified into sound units`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("units", false, "classify words into sound units")
	tokenizeCmd.Flags().String("lang", "", "builtin rule table (elision marks, and units with --units)")
	tokenizeCmd.Flags().String("rules", "", "rule table file (elision marks, and units with --units)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	withUnits, err := cmd.Flags().GetBool("units")
	if err != nil {
		return fmt.Errorf("failed to get units flag: %w", err)
	}
	lang, err := cmd.Flags().GetString("lang")
	if err != nil {
		return fmt.Errorf("failed to get lang flag: %w", err)
	}
	rulesPath, err := cmd.Flags().GetString("rules")
	if err != nil {
		return fmt.Errorf("failed to get rules flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	fs := source.NewFileSet()
	id, err := fs.Load(filePath)
	if err != nil {
		return err
	}
	file := fs.Get(id)
	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}
	table, err := rules.Resolve(lang, rulesPath)
	if err != nil {
		return err
	}
	tokens := lexer.Tokenize(file, lexer.Options{Reporter: reporter, Punct: table.IsElisionMark})

	var units []phon.SoundUnit
	if withUnits {
		units = phon.NewClassifier(table, phon.Options{Reporter: reporter}).ClassifyAll(file, tokens)
	}

	// Диагностика в stderr
	if bag.Len() > 0 && !quiet(cmd) {
		bag.Sort()
		diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{Color: useColor(cmd, os.Stderr), Context: 1})
	}

	out := cmd.OutOrStdout()
	switch {
	case withUnits && format == "json":
		return diagfmt.FormatUnitsJSON(out, units)
	case withUnits:
		return diagfmt.FormatUnitsPretty(out, units, tokens)
	case format == "json":
		return diagfmt.FormatTokensJSON(out, tokens)
	default:
		return diagfmt.FormatTokensPretty(out, tokens, fs)
	}
}
