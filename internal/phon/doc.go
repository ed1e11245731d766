// Package phon turns word tokens into sound units using a rule table.
//
// Matching is greedy and left to right over grapheme clusters: the longest
// table entry that fits wins, so a diphthong becomes one vowel unit and a
// consonant digraph one consonant unit. Clusters outside the alphabet
// produce no unit at all.
package phon
