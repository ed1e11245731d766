// Package rules loads language rule tables: which grapheme clusters are
// vowels, consonants or glides, which pairs form one nucleus, and the
// elision policy used by the scanner.
//
// Tables are plain TOML. A few languages ship embedded in the binary;
// every call to Builtin parses a fresh copy, so a *Table is never shared
// mutable state. Once built, a Table is read-only and may be used from any
// number of goroutines.
package rules
