package annotate_test

import (
	"strings"
	"testing"

	"github.com/atanasgiliev/hiatus-detector/internal/annotate"
	"github.com/atanasgiliev/hiatus-detector/internal/lexer"
	"github.com/atanasgiliev/hiatus-detector/internal/phon"
	"github.com/atanasgiliev/hiatus-detector/internal/rules"
	"github.com/atanasgiliev/hiatus-detector/internal/scan"
	"github.com/atanasgiliev/hiatus-detector/internal/source"
	"github.com/atanasgiliev/hiatus-detector/internal/testkit"
)

func detect(t *testing.T, lang, input string) []scan.Occurrence {
	t.Helper()
	tbl, err := rules.Builtin(lang)
	if err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.txt", input))
	tokens := lexer.Tokenize(file, lexer.Options{})
	units := phon.NewClassifier(tbl, phon.Options{}).ClassifyAll(file, tokens)
	return scan.New(file, tokens, tbl, scan.DefaultOptions()).Scan(units)
}

func TestAnnotateBrackets(t *testing.T) {
	tests := []struct {
		name  string
		lang  string
		input string
		want  string
	}{
		{"empty", "spanish", "", ""},
		{"no hiatus", "spanish", "aire", "aire"},
		{"intra", "spanish", "saída", "s⟦0:aí⟧da"},
		{"triple run concatenates", "spanish", "leía", "l⟦0:eí⟧⟦1:a⟧"},
		{"cross word", "spanish", "casa azul", "cas⟦0:a a⟧zul"},
		{"markup-like text is untouched", "spanish", "<b>saída</b> & ⟦x⟧", "<b>s⟦0:aí⟧da</b> & ⟦x⟧"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := annotate.Annotate(tt.input, detect(t, tt.lang, tt.input), annotate.Brackets{})
			if doc.Text != tt.want {
				t.Fatalf("got %q, want %q", doc.Text, tt.want)
			}
			if err := testkit.CheckRoundTrip(tt.input, doc.Strip()); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestLaterMarkerCoversPartOfItsOccurrence(t *testing.T) {
	occs := detect(t, "spanish", "leía")
	if len(occs) != 2 {
		t.Fatalf("expected 2 occurrences, got %d", len(occs))
	}
	if sp := occs[1].Span(); sp.Start != 2 || sp.End != 4 {
		t.Fatalf("second occurrence must span í and a, got %v", sp)
	}
	doc := annotate.Annotate("leía", occs, annotate.Brackets{})
	var (
		wrapped []string
		inside  bool
	)
	for _, seg := range doc.Segments() {
		switch {
		case seg.Marker && seg.Occurrence == 1:
			inside = seg.Open
		case !seg.Marker && inside:
			wrapped = append(wrapped, seg.Text)
		}
	}
	if strings.Join(wrapped, "") != "a" {
		t.Fatalf("second marker must wrap only the last vowel, got %q", wrapped)
	}
}

type tagMarker struct{}

func (tagMarker) Open(o scan.Occurrence) string  { return "<" + o.Kind.Tag() + ">" }
func (tagMarker) Close(o scan.Occurrence) string { return "</" + o.Kind.Tag() + ">" }

func TestRoundTripProperty(t *testing.T) {
	inputs := map[string]string{
		"greek": "μῆνιν ἄειδε θεὰ Πηληϊάδεω Ἀχιλῆος\nοὐλομένην, ἣ μυρί᾽ Ἀχαιοῖς ἄλγε᾽ ἔθηκε,\nπολλὰς δ᾽ ἰφθίμους ψυχὰς Ἄϊδι προΐαψεν",
		"spanish": "la oía y leía en la aldea\r\ncasa\nazul, océano; ahí\n\naún",
		"italian": "lo amico e io andiamo a Ancona\nmio zio",
	}
	for lang, input := range inputs {
		occs := detect(t, lang, input)
		if len(occs) == 0 {
			t.Fatalf("%s: expected some occurrences", lang)
		}
		for _, m := range []annotate.Marker{annotate.Brackets{}, tagMarker{}} {
			doc := annotate.Annotate(input, occs, m)
			if err := testkit.CheckRoundTrip(input, doc.Strip()); err != nil {
				t.Fatalf("%s: %v", lang, err)
			}
			opens := 0
			for _, mk := range doc.Marks {
				if mk.Open {
					opens++
				}
			}
			if opens != len(occs) {
				t.Fatalf("%s: %d opening markers for %d occurrences", lang, opens, len(occs))
			}
		}
	}
}

func TestSegmentsAndRender(t *testing.T) {
	input := "a<saída>"
	doc := annotate.Annotate(input, detect(t, "spanish", input), annotate.Brackets{})
	segs := doc.Segments()
	if len(segs) != 5 {
		t.Fatalf("expected 5 segments, got %+v", segs)
	}
	if !segs[1].Marker || !segs[1].Open || segs[1].Occurrence != 0 || segs[2].Text != "aí" || !segs[3].Marker || segs[3].Open {
		t.Fatalf("unexpected segments %+v", segs)
	}
	out := doc.Render(strings.ToUpper, func(s annotate.Segment) string {
		if s.Open {
			return "["
		}
		return "]"
	})
	if out != "A<S[AÍ]DA>" {
		t.Fatalf("Render = %q", out)
	}
}
