package fuzztests

import (
	"testing"

	"github.com/atanasgiliev/hiatus-detector/internal/annotate"
	"github.com/atanasgiliev/hiatus-detector/internal/diag"
	"github.com/atanasgiliev/hiatus-detector/internal/lexer"
	"github.com/atanasgiliev/hiatus-detector/internal/phon"
	"github.com/atanasgiliev/hiatus-detector/internal/rules"
	"github.com/atanasgiliev/hiatus-detector/internal/scan"
	"github.com/atanasgiliev/hiatus-detector/internal/source"
	"github.com/atanasgiliev/hiatus-detector/internal/testkit"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		text, ok := decode(input)
		if !ok {
			return
		}
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.txt", text))
		bag := diag.NewBag(64)
		tokens := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		if err := testkit.CheckTokenPartition(file, tokens); err != nil {
			t.Fatalf("token partition: %v", err)
		}
	})
}

func FuzzPipeline(f *testing.F) {
	addCorpusSeeds(f)
	tables := make([]*rules.Table, 0, len(rules.List()))
	for _, name := range rules.List() {
		tbl, err := rules.Builtin(name)
		if err != nil {
			f.Fatalf("builtin %s: %v", name, err)
		}
		tables = append(tables, tbl)
	}

	f.Fuzz(func(t *testing.T, input []byte) {
		text, ok := decode(input)
		if !ok {
			return
		}
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.txt", text))
		for _, tbl := range tables {
			tokens := lexer.Tokenize(file, lexer.Options{Punct: tbl.IsElisionMark})
			if err := testkit.CheckTokenPartition(file, tokens); err != nil {
				t.Fatalf("%s: token partition: %v", tbl.Name(), err)
			}
			units := phon.NewClassifier(tbl, phon.Options{}).ClassifyAll(file, tokens)
			if err := testkit.CheckUnitPartition(tokens, units, false); err != nil {
				t.Fatalf("%s: unit partition: %v", tbl.Name(), err)
			}
			occs := scan.New(file, tokens, tbl, scan.DefaultOptions()).Scan(units)
			if err := scan.Verify(occs); err != nil {
				t.Fatalf("%s: %v", tbl.Name(), err)
			}
			doc := annotate.Annotate(text, occs, nil)
			if err := testkit.CheckRoundTrip(text, doc.Strip()); err != nil {
				t.Fatalf("%s: %v", tbl.Name(), err)
			}
		}
	})
}

func decode(input []byte) (string, bool) {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	text, _, err := source.Decode("fuzz.txt", input)
	return text, err == nil
}
