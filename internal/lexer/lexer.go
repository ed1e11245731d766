package lexer

import (
	"fmt"
	"unicode/utf8"

	"github.com/atanasgiliev/hiatus-detector/internal/diag"
	"github.com/atanasgiliev/hiatus-detector/internal/source"
	"github.com/atanasgiliev/hiatus-detector/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next возвращает следующий токен: максимальный отрезок кластеров одного вида.
// После конца документа всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.cursor.EOF() {
		off := lx.cursor.Off()
		return token.Token{
			Kind: token.EOF,
			Span: source.Span{File: lx.file.ID, Start: off, End: off},
		}
	}

	start := lx.cursor.Mark()
	kind := lx.kindOf(lx.cursor.Peek())
	for !lx.cursor.EOF() && lx.kindOf(lx.cursor.Peek()) == kind {
		cl := lx.cursor.Bump()
		if kind == token.Punct {
			lx.checkCluster(cl)
		}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.file.Slice(sp)}
}

func (lx *Lexer) kindOf(cl Cluster) token.Kind {
	kind := classOf(cl)
	if kind == token.Word && lx.opts.Punct != nil {
		sp := source.Span{File: lx.file.ID, Start: cl.Start, End: cl.End}
		if lx.opts.Punct(lx.file.Slice(sp)) {
			return token.Punct
		}
	}
	return kind
}

func (lx *Lexer) checkCluster(cl Cluster) {
	sp := source.Span{File: lx.file.ID, Start: cl.Start, End: cl.End}
	switch {
	case cl.First == utf8.RuneError:
		lx.report(diag.LexReplacementChar, sp, "replacement character U+FFFD: the text was probably decoded lossily")
	case isSuspiciousControl(cl.First):
		lx.report(diag.LexControlChar, sp, fmt.Sprintf("control character U+%04X", cl.First))
	}
}

// Tokenize returns the token partition of file without the trailing EOF.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	var tokens []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
