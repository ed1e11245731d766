// Package scan finds hiatus: two vowel sound units with nothing phonetic
// between them, either inside one word or across a word or line boundary.
package scan
