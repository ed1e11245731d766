package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/atanasgiliev/hiatus-detector/internal/diag"
	"github.com/atanasgiliev/hiatus-detector/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	code, gutter    *color.Color
	mark, note      *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		mark:   color.New(color.FgRed),
		note:   color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.mark, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return p.err.Sprint(sev.String())
	case diag.SevWarning:
		return p.warn.Sprint(sev.String())
	default:
		return p.info.Sprint(sev.String())
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		f := fs.Get(d.Primary.File)
		start, end := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			formatPath(f, fs, opts.PathMode), start.Line, start.Col,
			p.severity(d.Severity), p.code.Sprint(d.Code.ID()), d.Message)
		writeExcerpt(w, f, start, end, opts, p)

		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			nf := fs.Get(n.Span.File)
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"), formatPath(nf, fs, opts.PathMode), ns.Line, ns.Col, n.Msg)
		}
	}
	if dropped := bag.Dropped(); dropped > 0 {
		fmt.Fprintf(w, "... %d more diagnostics not shown\n", dropped)
	}
}

func writeExcerpt(w io.Writer, f *source.File, start, end source.LineCol, opts PrettyOpts, p palette) {
	if f.Len() == 0 {
		return
	}
	ctx := uint32(max(opts.Context, 0))
	first := uint32(1)
	if start.Line > ctx {
		first = start.Line - ctx
	}
	last := min(start.Line+ctx, uint32(len(f.LineIdx))+1)
	numWidth := len(fmt.Sprint(last))

	for n := first; n <= last; n++ {
		line := strings.TrimSuffix(f.GetLine(n), "\r")
		shown := line
		if opts.Width > 0 {
			shown = runewidth.Truncate(line, int(opts.Width), "…")
		}
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", numWidth, n), shown)
		if n != start.Line {
			continue
		}
		runes := []rune(line)
		from := min(int(start.Col)-1, len(runes))
		to := len(runes)
		if end.Line == start.Line {
			to = min(int(end.Col)-1, len(runes))
		}
		fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", numWidth, ""), padTo(runes[:from]), p.mark.Sprint(underline(runes[from:max(from, to)])))
	}
}

// padTo повторяет ширину prefix пробелами, табы сохраняются.
func padTo(prefix []rune) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}

func underline(marked []rune) string {
	width := runewidth.StringWidth(string(marked))
	if width < 1 {
		width = 1
	}
	return "^" + strings.Repeat("~", width-1)
}
