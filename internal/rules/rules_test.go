package rules

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuiltinTablesParse(t *testing.T) {
	names := List()
	if len(names) != 3 {
		t.Fatalf("expected 3 builtin languages, got %v", names)
	}
	for _, name := range names {
		tbl, err := Builtin(name)
		if err != nil {
			t.Fatalf("builtin %s: %v", name, err)
		}
		if tbl.Name() != name {
			t.Errorf("builtin %s: table declares name %q", name, tbl.Name())
		}
		if tbl.Count(Vowel) == 0 || tbl.Count(Consonant) == 0 {
			t.Errorf("builtin %s: empty letter classes", name)
		}
	}
}

func TestBuiltinReturnsFreshTables(t *testing.T) {
	a, err := Builtin("spanish")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Builtin("spanish")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatalf("Builtin must not share table instances")
	}
	if a.Digest() != b.Digest() {
		t.Fatalf("same source must produce the same digest")
	}
	g, _ := Builtin("greek")
	if g.Digest() == a.Digest() {
		t.Fatalf("different tables must have different digests")
	}
}

func TestUnknownBuiltin(t *testing.T) {
	_, err := Builtin("klingon")
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if !strings.Contains(err.Error(), "greek") {
		t.Fatalf("error should list available languages: %v", err)
	}
}

func TestParseProblems(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []string
	}{
		{
			name: "missing sections",
			data: `[clusters]
fold_marks = true`,
			want: []string{"missing [language]", "missing [letters]"},
		},
		{
			name: "missing vowels",
			data: `[language]
max_cluster_length = 1
[letters]
consonants = ["b"]`,
			want: []string{"missing [letters].vowels"},
		},
		{
			name: "overlapping classes",
			data: `[language]
max_cluster_length = 1
[letters]
vowels = ["a", "y"]
consonants = ["b", "Y"]`,
			want: []string{`"Y" is already classified as vowel`},
		},
		{
			name: "diphthong too long",
			data: `[language]
max_cluster_length = 2
[letters]
vowels = ["a", "e", "i"]
consonants = ["b"]
[clusters]
diphthongs = ["aei"]`,
			want: []string{"more than max_cluster_length"},
		},
		{
			name: "bad entries",
			data: `[language]
max_cluster_length = 0
[letters]
vowels = ["a", "1", ""]
consonants = ["bc"]
[clusters]
break_second = ["x"]`,
			want: []string{
				"max_cluster_length must be at least 1",
				`"1" does not start with a letter`,
				"empty entry",
				`"bc" must be a single grapheme cluster`,
				`"x" must be a single combining mark`,
			},
		},
		{
			name: "unknown key",
			data: `[language]
max_cluster_length = 1
colour = "red"
[letters]
vowels = ["a"]
consonants = ["b"]`,
			want: []string{"unknown key language.colour"},
		},
		{
			name: "broken toml",
			data: `[language`,
			want: []string{"failed to parse TOML"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("test.toml", []byte(tt.data))
			var cerr *ConfigurationError
			if !errors.As(err, &cerr) {
				t.Fatalf("expected ConfigurationError, got %v", err)
			}
			joined := strings.Join(cerr.Problems, "\n")
			for _, w := range tt.want {
				if !strings.Contains(joined, w) {
					t.Errorf("problems %q do not mention %q", cerr.Problems, w)
				}
			}
		})
	}
}

func TestLookupNormalisation(t *testing.T) {
	tbl, err := Builtin("greek")
	if err != nil {
		t.Fatal(err)
	}
	f := NewFolder()

	// precomposed ά and decomposed α + U+0301 share a key
	if f.Key("\u03ac") != f.Key("\u03b1\u0301") {
		t.Fatalf("NFC keys differ")
	}
	if c, ok := tbl.Single(f.Base("Ἄ")); !ok || c != Vowel {
		t.Fatalf("capital alpha with breathing and accent should fold to a vowel, got %v %v", c, ok)
	}
	if c, ok := tbl.Single(f.Key("ς")); !ok || c != Consonant {
		t.Fatalf("final sigma should fold to a consonant, got %v %v", c, ok)
	}
	if c, ok := tbl.MultiBase(f.Base("αί")); !ok || c != Vowel {
		t.Fatalf("accented αι should be a diphthong on base letters")
	}
	if !tbl.BreaksSecond('\u0308') || !tbl.BreaksFirst('\u0314') {
		t.Fatalf("greek breakers not loaded")
	}
	if !tbl.ElisionIn("᾽ ") || tbl.ElisionIn(", ") {
		t.Fatalf("elision marks mismatch")
	}
	if !tbl.IsElisionMark("ʼ") || tbl.IsElisionMark("ʼ ") || tbl.IsElisionMark("λ") {
		t.Fatalf("IsElisionMark must match whole marks only")
	}
}

func TestSpanishDoesNotFoldDiphthongs(t *testing.T) {
	tbl, err := Builtin("spanish")
	if err != nil {
		t.Fatal(err)
	}
	f := NewFolder()
	if _, ok := tbl.Multi(f.Key("aí")); ok {
		t.Fatalf("aí must not be a diphthong")
	}
	if _, ok := tbl.MultiBase(f.Base("aí")); ok {
		t.Fatalf("spanish tables must not match diphthongs on base letters")
	}
	if c, ok := tbl.Multi(f.Key("AI")); !ok || c != Vowel {
		t.Fatalf("uppercase AI should match the ai diphthong")
	}
	if c, ok := tbl.Single(f.Key("y")); !ok || c != Glide {
		t.Fatalf("y should be a glide")
	}
}

func TestLoadAndResolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mini.toml")
	data := `[language]
name = "mini"
max_cluster_length = 1
[letters]
vowels = ["a"]
consonants = ["b"]
[elision]
words = ["Ba"]
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	tbl, err := Resolve("spanish", path)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if tbl.Name() != "mini" || tbl.Source() != path {
		t.Fatalf("unexpected table %q from %q", tbl.Name(), tbl.Source())
	}
	if !tbl.Elidable("ba") {
		t.Fatalf("elidable words must be case-folded")
	}
	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	def, err := Resolve("", "")
	if err != nil || def.Name() != DefaultLanguage {
		t.Fatalf("default language: %v %v", def, err)
	}
}

func TestMarks(t *testing.T) {
	got := Marks("\u0390")
	if len(got) != 2 || got[0] != '\u0308' {
		t.Fatalf("unexpected marks %U", got)
	}
	if len(Marks("a")) != 0 {
		t.Fatalf("plain letter has no marks")
	}
}
