package rules

import (
	"crypto/sha256"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"github.com/rivo/uniseg"
)

type tableFile struct {
	Language languageSection `toml:"language"`
	Letters  lettersSection  `toml:"letters"`
	Clusters clustersSection `toml:"clusters"`
	Elision  elisionSection  `toml:"elision"`
}

type languageSection struct {
	Name             string `toml:"name"`
	MaxClusterLength int    `toml:"max_cluster_length"`
}

type lettersSection struct {
	Vowels     []string `toml:"vowels"`
	Consonants []string `toml:"consonants"`
	Glides     []string `toml:"glides"`
}

type clustersSection struct {
	Diphthongs        []string `toml:"diphthongs"`
	ConsonantDigraphs []string `toml:"consonant_digraphs"`
	FoldMarks         bool     `toml:"fold_marks"`
	FoldDiphthongs    bool     `toml:"fold_diphthongs"`
	BreakFirst        []string `toml:"break_first"`
	BreakSecond       []string `toml:"break_second"`
	JoiningMarks      []string `toml:"joining_marks"`
}

type elisionSection struct {
	Marks []string `toml:"marks"`
	Words []string `toml:"words"`
}

// Load reads and validates a rule table from a TOML file.
func Load(path string) (*Table, error) {
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules: %w", err)
	}
	return Parse(path, data)
}

// Parse validates TOML rule data. Any problem yields *ConfigurationError
// listing everything that is wrong, not just the first finding.
func Parse(source string, data []byte) (*Table, error) {
	var file tableFile
	meta, err := toml.Decode(string(data), &file)
	if err != nil {
		return nil, &ConfigurationError{Source: source, Problems: []string{fmt.Sprintf("failed to parse TOML: %v", err)}}
	}

	cerr := &ConfigurationError{Source: source}
	for _, key := range [][]string{
		{"language"},
		{"language", "max_cluster_length"},
		{"letters"},
		{"letters", "vowels"},
		{"letters", "consonants"},
	} {
		if !meta.IsDefined(key...) {
			if len(key) == 1 {
				cerr.addf("missing [%s]", key[0])
			} else {
				cerr.addf("missing [%s].%s", key[0], key[1])
			}
		}
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		for _, k := range undecoded {
			cerr.addf("unknown key %s", k.String())
		}
	}
	if len(cerr.Problems) > 0 {
		return nil, cerr
	}

	b := newBuilder(source, cerr)
	t := b.table
	t.raw = append([]byte(nil), data...)
	t.digest = sha256.Sum256(data)
	t.name = strings.TrimSpace(file.Language.Name)
	if t.name == "" {
		t.name = source
	}
	t.maxCluster = file.Language.MaxClusterLength
	if t.maxCluster < 1 {
		cerr.addf("[language].max_cluster_length must be at least 1, got %d", t.maxCluster)
	}
	t.foldMarks = file.Clusters.FoldMarks
	t.foldDiphthongs = file.Clusters.FoldDiphthongs

	if len(file.Letters.Vowels) == 0 {
		cerr.addf("[letters].vowels is empty")
	}
	b.addSingles("letters.vowels", file.Letters.Vowels, Vowel)
	b.addSingles("letters.consonants", file.Letters.Consonants, Consonant)
	b.addSingles("letters.glides", file.Letters.Glides, Glide)
	b.addClusters("clusters.diphthongs", file.Clusters.Diphthongs, Vowel)
	b.addClusters("clusters.consonant_digraphs", file.Clusters.ConsonantDigraphs, Consonant)

	t.breakFirst = b.marks("clusters.break_first", file.Clusters.BreakFirst)
	t.breakSecond = b.marks("clusters.break_second", file.Clusters.BreakSecond)
	t.joining = b.marks("clusters.joining_marks", file.Clusters.JoiningMarks)

	for _, m := range file.Elision.Marks {
		if m == "" {
			cerr.addf("elision.marks: empty entry")
			continue
		}
		t.elisionMarks = append(t.elisionMarks, m)
	}
	for _, w := range file.Elision.Words {
		key := b.folder.Key(strings.TrimSpace(w))
		if key == "" {
			cerr.addf("elision.words: empty entry")
			continue
		}
		t.elidable[key] = struct{}{}
	}

	if len(cerr.Problems) > 0 {
		return nil, cerr
	}
	return t, nil
}

type builder struct {
	table  *Table
	folder *Folder
	cerr   *ConfigurationError
	origin map[string]string // key -> section that defined it
}

func newBuilder(source string, cerr *ConfigurationError) *builder {
	return &builder{
		table: &Table{
			source:    source,
			single:    make(map[string]Class),
			multi:     make(map[string]Class),
			multiBase: make(map[string]Class),
			elidable:  make(map[string]struct{}),
		},
		folder: NewFolder(),
		cerr:   cerr,
		origin: make(map[string]string),
	}
}

// define records key in dst unless another section already claimed it.
func (b *builder) define(section, entry, key string, class Class, dst map[string]Class) {
	if prev, ok := dst[key]; ok {
		if prev != class {
			b.cerr.addf("%s: %q is already classified as %s in %s", section, entry, prev, b.origin[key])
		}
		return
	}
	dst[key] = class
	b.origin[key] = section
	b.table.counts[class]++
}

func (b *builder) addSingles(section string, entries []string, class Class) {
	for _, e := range entries {
		if !b.valid(section, e) {
			continue
		}
		if n := uniseg.GraphemeClusterCount(e); n != 1 {
			b.cerr.addf("%s: %q must be a single grapheme cluster, has %d", section, e, n)
			continue
		}
		b.define(section, e, b.folder.Key(e), class, b.table.single)
	}
}

func (b *builder) addClusters(section string, entries []string, class Class) {
	for _, e := range entries {
		if !b.valid(section, e) {
			continue
		}
		n := uniseg.GraphemeClusterCount(e)
		if n == 1 {
			// "ῃ" и подобные: один кластер, но описан как дифтонг
			b.define(section, e, b.folder.Key(e), class, b.table.single)
			continue
		}
		if b.table.maxCluster >= 1 && n > b.table.maxCluster {
			b.cerr.addf("%s: %q has %d clusters, more than max_cluster_length %d", section, e, n, b.table.maxCluster)
			continue
		}
		key := b.folder.Key(e)
		b.define(section, e, key, class, b.table.multi)
		if base := b.folder.Base(e); base == key {
			if _, taken := b.table.multiBase[base]; !taken {
				b.table.multiBase[base] = class
			}
		}
	}
}

func (b *builder) valid(section, entry string) bool {
	if strings.TrimSpace(entry) == "" {
		b.cerr.addf("%s: empty entry", section)
		return false
	}
	for i, r := range entry {
		if i == 0 && !unicode.IsLetter(r) {
			b.cerr.addf("%s: %q does not start with a letter", section, entry)
			return false
		}
		if !unicode.IsLetter(r) && !unicode.Is(unicode.Mn, r) {
			b.cerr.addf("%s: %q contains %U, which is neither a letter nor a mark", section, entry, r)
			return false
		}
	}
	return true
}

func (b *builder) marks(section string, entries []string) map[rune]struct{} {
	out := make(map[rune]struct{}, len(entries))
	for _, e := range entries {
		rs := []rune(e)
		if len(rs) != 1 || !unicode.Is(unicode.Mn, rs[0]) {
			b.cerr.addf("%s: %q must be a single combining mark", section, e)
			continue
		}
		out[rs[0]] = struct{}{}
	}
	return out
}
