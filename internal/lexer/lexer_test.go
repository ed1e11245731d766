package lexer_test

import (
	"strings"
	"testing"

	"github.com/atanasgiliev/hiatus-detector/internal/diag"
	"github.com/atanasgiliev/hiatus-detector/internal/lexer"
	"github.com/atanasgiliev/hiatus-detector/internal/source"
	"github.com/atanasgiliev/hiatus-detector/internal/testkit"
	"github.com/atanasgiliev/hiatus-detector/internal/token"
)

// makeTestFile создаёт виртуальный документ для тестовой строки
func makeTestFile(input string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.txt", input)
	return fs.Get(id)
}

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Kind
		texts []string
	}{
		{
			name:  "two words",
			input: "casa azul",
			want:  []token.Kind{token.Word, token.Space, token.Word},
			texts: []string{"casa", " ", "azul"},
		},
		{
			name:  "punctuation run",
			input: "¡hola!...",
			want:  []token.Kind{token.Punct, token.Word, token.Punct},
			texts: []string{"¡", "hola", "!..."},
		},
		{
			name:  "apostrophe splits words",
			input: "l'amico",
			want:  []token.Kind{token.Word, token.Punct, token.Word},
			texts: []string{"l", "'", "amico"},
		},
		{
			name:  "digits are not word material",
			input: "a1b",
			want:  []token.Kind{token.Word, token.Punct, token.Word},
			texts: []string{"a", "1", "b"},
		},
		{
			name:  "crlf is one space run",
			input: "a\r\n\tb",
			want:  []token.Kind{token.Word, token.Space, token.Word},
			texts: []string{"a", "\r\n\t", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := lexer.Tokenize(makeTestFile(tt.input), lexer.Options{})
			got := kinds(tokens)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d tokens, got %d: %v", len(tt.want), len(got), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d: expected %v, got %v", i, tt.want[i], got[i])
				}
				if tokens[i].Text != tt.texts[i] {
					t.Errorf("token %d: expected text %q, got %q", i, tt.texts[i], tokens[i].Text)
				}
			}
		})
	}
}

func TestCombiningMarksStayInWord(t *testing.T) {
	// "sai" + U+0301 + "da": decomposed accent must not split the word
	input := "saída"
	tokens := lexer.Tokenize(makeTestFile(input), lexer.Options{})
	if len(tokens) != 1 || tokens[0].Kind != token.Word {
		t.Fatalf("expected a single word, got %v", kinds(tokens))
	}
	if tokens[0].Span.End != 6 {
		t.Fatalf("expected span end 6 (runes), got %d", tokens[0].Span.End)
	}
}

func TestEmptyAndSeparatorOnlyInput(t *testing.T) {
	if tokens := lexer.Tokenize(makeTestFile(""), lexer.Options{}); len(tokens) != 0 {
		t.Fatalf("empty input must produce no tokens, got %d", len(tokens))
	}
	for _, tok := range lexer.Tokenize(makeTestFile(" ,;  -- !?\n"), lexer.Options{}) {
		if tok.Kind == token.Word {
			t.Fatalf("unexpected word token %q", tok.Text)
		}
	}
}

func TestPartitionInvariant(t *testing.T) {
	inputs := []string{
		"",
		"saída",
		"casa azul",
		"μῆνιν ἄειδε θεὰ Πηληϊάδεω Ἀχιλῆος\nοὐλομένην, ἣ μυρί᾽ Ἀχαιοῖς ἄλγε᾽ ἔθηκε,",
		"  leading and trailing  ",
		"emoji 👩‍👩‍👧 inside",
		strings.Repeat("ab, ", 100),
	}
	for _, input := range inputs {
		file := makeTestFile(input)
		tokens := lexer.Tokenize(file, lexer.Options{})
		if err := testkit.CheckTokenPartition(file, tokens); err != nil {
			t.Errorf("partition broken for %q: %v", input, err)
		}
	}
}

func TestPunctOverride(t *testing.T) {
	file := makeTestFile("ἄλγεʼ ἔθηκε")
	if got := kinds(lexer.Tokenize(file, lexer.Options{})); len(got) != 3 {
		t.Fatalf("U+02BC is a modifier letter and stays in the word, got %v", got)
	}
	opts := lexer.Options{Punct: func(cl string) bool { return cl == "ʼ" }}
	tokens := lexer.Tokenize(file, opts)
	want := []token.Kind{token.Word, token.Punct, token.Space, token.Word}
	got := kinds(tokens)
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", got, want)
		}
	}
	if tokens[0].Text != "ἄλγε" || tokens[1].Text != "ʼ" {
		t.Fatalf("unexpected texts %q %q", tokens[0].Text, tokens[1].Text)
	}
	if err := testkit.CheckTokenPartition(file, tokens); err != nil {
		t.Fatal(err)
	}
}

func TestNextReturnsEOFRepeatedly(t *testing.T) {
	lx := lexer.New(makeTestFile("ab"), lexer.Options{})
	if tok := lx.Next(); tok.Kind != token.Word {
		t.Fatalf("expected Word, got %v", tok.Kind)
	}
	for i := 0; i < 3; i++ {
		tok := lx.Next()
		if tok.Kind != token.EOF {
			t.Fatalf("expected EOF, got %v", tok.Kind)
		}
		if tok.Span.Start != 2 || !tok.Span.Empty() {
			t.Fatalf("EOF span must be empty at end, got %v", tok.Span)
		}
	}
}

func TestControlCharactersReported(t *testing.T) {
	bag := diag.NewBag(8)
	lexer.Tokenize(makeTestFile("a\x00b�c"), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	var codes []diag.Code
	for _, d := range bag.Items() {
		codes = append(codes, d.Code)
	}
	if len(codes) != 2 || codes[0] != diag.LexControlChar || codes[1] != diag.LexReplacementChar {
		t.Fatalf("unexpected diagnostics: %v", codes)
	}
}
