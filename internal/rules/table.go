package rules

import (
	"encoding/hex"
	"sort"
	"strings"
)

// Table is an immutable rule table for one language.
type Table struct {
	name           string
	source         string
	raw            []byte
	digest         [32]byte
	maxCluster     int
	single         map[string]Class // one grapheme cluster
	multi          map[string]Class // diphthongs and consonant digraphs
	multiBase      map[string]Class // multi keys without marks, when foldDiphthongs
	foldMarks      bool
	foldDiphthongs bool
	breakFirst     map[rune]struct{}
	breakSecond    map[rune]struct{}
	joining        map[rune]struct{}
	elisionMarks   []string
	elidable       map[string]struct{}
	counts         [4]int
}

// Name returns the language name declared by the table.
func (t *Table) Name() string { return t.name }

// Source returns the path or builtin name the table was read from.
func (t *Table) Source() string { return t.source }

// Raw returns the TOML text of the table.
func (t *Table) Raw() string { return string(t.raw) }

// MaxClusterLength is the longest entry, in grapheme clusters.
func (t *Table) MaxClusterLength() int { return t.maxCluster }

// Digest identifies the table contents.
func (t *Table) Digest() [32]byte { return t.digest }

// DigestHex returns Digest as a lowercase hex string.
func (t *Table) DigestHex() string { return hex.EncodeToString(t.digest[:]) }

// FoldMarks reports whether single clusters may match on their base letter.
func (t *Table) FoldMarks() bool { return t.foldMarks }

// FoldDiphthongs reports whether multi-cluster entries may match on base letters.
func (t *Table) FoldDiphthongs() bool { return t.foldDiphthongs }

// Count returns how many entries of class c the table has, multi-cluster ones included.
func (t *Table) Count(c Class) int { return t.counts[c] }

// Single looks up a one-cluster key produced by Folder.Key or Folder.Base.
func (t *Table) Single(key string) (Class, bool) {
	c, ok := t.single[key]
	return c, ok
}

// Multi looks up a multi-cluster key.
func (t *Table) Multi(key string) (Class, bool) {
	c, ok := t.multi[key]
	return c, ok
}

// MultiBase looks up a multi-cluster key with marks removed.
func (t *Table) MultiBase(key string) (Class, bool) {
	if !t.foldDiphthongs {
		return None, false
	}
	c, ok := t.multiBase[key]
	return c, ok
}

// BreaksFirst reports whether mark r on a leading cluster prevents a multi-cluster match.
func (t *Table) BreaksFirst(r rune) bool {
	_, ok := t.breakFirst[r]
	return ok
}

// BreaksSecond reports whether mark r on a trailing cluster prevents a multi-cluster match.
func (t *Table) BreaksSecond(r rune) bool {
	_, ok := t.breakSecond[r]
	return ok
}

// Joins reports whether a vowel carrying mark r forms one nucleus with its neighbour.
func (t *Table) Joins(r rune) bool {
	_, ok := t.joining[r]
	return ok
}

// HasJoining reports whether any joining marks are configured.
func (t *Table) HasJoining() bool { return len(t.joining) > 0 }

// ElisionIn reports whether gap contains one of the elision marks.
func (t *Table) ElisionIn(gap string) bool {
	for _, m := range t.elisionMarks {
		if strings.Contains(gap, m) {
			return true
		}
	}
	return false
}

// IsElisionMark reports whether cluster is exactly one of the elision marks.
func (t *Table) IsElisionMark(cluster string) bool {
	for _, m := range t.elisionMarks {
		if m == cluster {
			return true
		}
	}
	return false
}

// Elidable reports whether the folded word key is listed as elidable.
func (t *Table) Elidable(key string) bool {
	_, ok := t.elidable[key]
	return ok
}

// Entries lists the keys of class c in sorted order, for display.
func (t *Table) Entries(c Class) []string {
	var out []string
	for k, v := range t.single {
		if v == c {
			out = append(out, k)
		}
	}
	for k, v := range t.multi {
		if v == c {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
