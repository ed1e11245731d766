package phon

import (
	"fmt"
	"strings"

	"github.com/atanasgiliev/hiatus-detector/internal/diag"
	"github.com/atanasgiliev/hiatus-detector/internal/lexer"
	"github.com/atanasgiliev/hiatus-detector/internal/rules"
	"github.com/atanasgiliev/hiatus-detector/internal/source"
	"github.com/atanasgiliev/hiatus-detector/internal/token"
)

type Options struct {
	Reporter diag.Reporter // nil: неизвестные кластеры пропускаются молча
}

// Classifier maps word tokens to sound units. It keeps a Folder and is
// therefore bound to one goroutine; the table itself may be shared.
type Classifier struct {
	table  *rules.Table
	folder *rules.Folder
	opts   Options
}

func NewClassifier(table *rules.Table, opts Options) *Classifier {
	return &Classifier{
		table:  table,
		folder: rules.NewFolder(),
		opts:   opts,
	}
}

type cluster struct {
	lexer.Cluster
	text string
}

// Classify returns the sound units of tok. Non-word tokens have none.
func (c *Classifier) Classify(file *source.File, tokIndex int, tok token.Token) []SoundUnit {
	if !tok.IsWord() {
		return nil
	}
	raw := lexer.Segment(tok.Text, tok.Span.Start)
	clusters := make([]cluster, len(raw))
	for i, cl := range raw {
		clusters[i] = cluster{Cluster: cl, text: file.Slice(source.Span{File: file.ID, Start: cl.Start, End: cl.End})}
	}

	units := make([]SoundUnit, 0, len(clusters))
	maxLen := max(c.table.MaxClusterLength(), 1)
	for i := 0; i < len(clusters); {
		n := min(maxLen, len(clusters)-i)
		matched := false
		for ; n >= 1; n-- {
			parts := clusters[i : i+n]
			class, ok := c.lookup(parts)
			if !ok {
				continue
			}
			units = append(units, SoundUnit{
				Kind:  class,
				Text:  joinText(parts),
				Span:  source.Span{File: file.ID, Start: parts[0].Start, End: parts[n-1].End},
				Token: tokIndex,
			})
			i += n
			matched = true
			break
		}
		if !matched {
			c.unknown(file, clusters[i])
			i++
		}
	}

	if c.table.HasJoining() {
		units = c.join(units)
	}
	return units
}

// ClassifyAll classifies every word token of a document in order.
func (c *Classifier) ClassifyAll(file *source.File, tokens []token.Token) []SoundUnit {
	var units []SoundUnit
	for i, tok := range tokens {
		units = append(units, c.Classify(file, i, tok)...)
	}
	return units
}

func (c *Classifier) lookup(parts []cluster) (rules.Class, bool) {
	text := joinText(parts)
	if len(parts) == 1 {
		if class, ok := c.table.Single(c.folder.Key(text)); ok {
			return class, true
		}
		if c.table.FoldMarks() {
			return c.table.Single(c.folder.Base(text))
		}
		return rules.None, false
	}
	if c.broken(parts) {
		return rules.None, false
	}
	if class, ok := c.table.Multi(c.folder.Key(text)); ok {
		return class, true
	}
	return c.table.MultiBase(c.folder.Base(text))
}

// broken reports whether a breaker mark forbids reading parts as one unit.
func (c *Classifier) broken(parts []cluster) bool {
	last := len(parts) - 1
	for i, p := range parts {
		for _, m := range rules.Marks(p.text) {
			if i < last && c.table.BreaksFirst(m) {
				return true
			}
			if i > 0 && c.table.BreaksSecond(m) {
				return true
			}
		}
	}
	return false
}

// join сливает соседние гласные, если одна из них несёт joining mark.
func (c *Classifier) join(units []SoundUnit) []SoundUnit {
	out := units[:0]
	for i := 0; i < len(units); i++ {
		u := units[i]
		if i+1 < len(units) {
			next := units[i+1]
			if u.IsVowel() && next.IsVowel() && u.Span.End == next.Span.Start &&
				(c.carriesJoining(u.Text) || c.carriesJoining(next.Text)) {
				u.Text += next.Text
				u.Span = u.Span.Cover(next.Span)
				i++
			}
		}
		out = append(out, u)
	}
	return out
}

func (c *Classifier) carriesJoining(text string) bool {
	for _, m := range rules.Marks(text) {
		if c.table.Joins(m) {
			return true
		}
	}
	return false
}

func (c *Classifier) unknown(file *source.File, cl cluster) {
	if c.opts.Reporter == nil {
		return
	}
	sp := source.Span{File: file.ID, Start: cl.Start, End: cl.End}
	diag.ReportInfo(c.opts.Reporter, diag.PhonUnknownGrapheme, sp,
		fmt.Sprintf("%q is outside the %s alphabet and breaks adjacency", cl.text, c.table.Name())).Emit()
}

func joinText(parts []cluster) string {
	if len(parts) == 1 {
		return parts[0].text
	}
	var sb strings.Builder
	for _, p := range parts {
		sb.WriteString(p.text)
	}
	return sb.String()
}
