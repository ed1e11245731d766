package lexer

import (
	"unicode"

	"github.com/atanasgiliev/hiatus-detector/internal/token"
)

// classOf решает, к какому виду токена относится кластер, по его первой руне.
// Буква с комбинируемыми знаками: один кластер, поэтому знаки остаются в слове.
func classOf(cl Cluster) token.Kind {
	switch {
	case unicode.IsLetter(cl.First):
		return token.Word
	case unicode.IsSpace(cl.First):
		return token.Space
	default:
		return token.Punct
	}
}

func isSuspiciousControl(r rune) bool {
	if r == '\t' || r == '\n' || r == '\r' || r == '\f' || r == '\v' {
		return false
	}
	return unicode.IsControl(r)
}
