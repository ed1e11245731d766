package token

import (
	"strings"

	"github.com/atanasgiliev/hiatus-detector/internal/source"
)

// Token represents a single positioned piece of the document.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsWord reports whether the token is a word.
func (t Token) IsWord() bool { return t.Kind == Word }

// IsSeparator reports whether the token carries no phonetic weight.
func (t Token) IsSeparator() bool { return t.Kind == Space || t.Kind == Punct }

// Newlines counts line breaks inside the token. "\r\n" counts once.
func (t Token) Newlines() int {
	if t.Kind != Space {
		return 0
	}
	return strings.Count(t.Text, "\n") + strings.Count(strings.ReplaceAll(t.Text, "\r\n", ""), "\r")
}
