package diagfmt

import (
	"fmt"
	"io"

	"github.com/atanasgiliev/hiatus-detector/internal/phon"
	"github.com/atanasgiliev/hiatus-detector/internal/source"
	"github.com/atanasgiliev/hiatus-detector/internal/token"
)

type TokenOutput struct {
	Kind string      `json:"kind"`
	Text string      `json:"text,omitempty"`
	Span source.Span `json:"span"`
}

type UnitOutput struct {
	Kind  string      `json:"kind"`
	Text  string      `json:"text"`
	Span  source.Span `json:"span"`
	Token int         `json:"token"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		if tok.Kind == token.EOF {
			break
		}
		startPos, endPos := fs.Resolve(tok.Span)
		if _, err := fmt.Fprintf(w, "%3d: %-6s %q at %d:%d-%d:%d\n", i, tok.Kind.String(), tok.Text,
			startPos.Line, startPos.Col, endPos.Line, endPos.Col); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind == token.EOF {
			break
		}
		out = append(out, TokenOutput{Kind: tok.Kind.String(), Text: tok.Text, Span: tok.Span})
	}
	return encode(w, out)
}

// FormatUnitsPretty печатает звуковые единицы, сгруппированные по словам.
func FormatUnitsPretty(w io.Writer, units []phon.SoundUnit, tokens []token.Token) error {
	last := -1
	for _, u := range units {
		if u.Token != last {
			if last >= 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			text := ""
			if u.Token >= 0 && u.Token < len(tokens) {
				text = tokens[u.Token].Text
			}
			if _, err := fmt.Fprintf(w, "%3d: %q\n", u.Token, text); err != nil {
				return err
			}
			last = u.Token
		}
		if _, err := fmt.Fprintf(w, "     %c %-6q %d-%d\n", u.Kind.Letter(), u.Text, u.Span.Start, u.Span.End); err != nil {
			return err
		}
	}
	return nil
}

// FormatUnitsJSON выводит звуковые единицы в JSON формате
func FormatUnitsJSON(w io.Writer, units []phon.SoundUnit) error {
	out := make([]UnitOutput, 0, len(units))
	for _, u := range units {
		out = append(out, UnitOutput{Kind: u.Kind.String(), Text: u.Text, Span: u.Span, Token: u.Token})
	}
	return encode(w, out)
}
