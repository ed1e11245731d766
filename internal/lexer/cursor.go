package lexer

import (
	"fmt"

	"fortio.org/safecast"
	"github.com/rivo/uniseg"

	"github.com/atanasgiliev/hiatus-detector/internal/source"
)

// Cluster is one extended grapheme cluster of the document.
type Cluster struct {
	Start uint32 // rune offset
	End   uint32
	First rune // первая руна кластера, по ней определяется класс
}

// Segment splits text into grapheme clusters with rune offsets starting at base.
func Segment(text string, base uint32) []Cluster {
	out := make([]Cluster, 0, len(text))
	off := base
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		rs := gr.Runes()
		n, err := safecast.Conv[uint32](len(rs))
		if err != nil {
			panic(fmt.Errorf("cluster length overflow: %w", err))
		}
		out = append(out, Cluster{Start: off, End: off + n, First: rs[0]})
		off += n
	}
	return out
}

// Cursor представляет собой позицию в списке кластеров документа
type Cursor struct {
	File     *source.File
	clusters []Cluster
	pos      int
}

// NewCursor creates a new cursor for the provided file.
func NewCursor(f *source.File) Cursor {
	return Cursor{
		File:     f,
		clusters: Segment(f.Text, 0),
	}
}

// EOF проверяет, достигнут ли конец файла
func (c *Cursor) EOF() bool {
	return c.pos >= len(c.clusters)
}

// Peek возвращает текущий кластер; на EOF пустой кластер в конце файла
func (c *Cursor) Peek() Cluster {
	if c.EOF() {
		end := c.Off()
		return Cluster{Start: end, End: end}
	}
	return c.clusters[c.pos]
}

// Bump перемещает курсор на один кластер вперед и возвращает прочитанный кластер
func (c *Cursor) Bump() Cluster {
	cl := c.Peek()
	if !c.EOF() {
		c.pos++
	}
	return cl
}

// Off returns the rune offset of the cursor.
func (c *Cursor) Off() uint32 {
	if c.pos < len(c.clusters) {
		return c.clusters[c.pos].Start
	}
	if n := len(c.clusters); n > 0 {
		return c.clusters[n-1].End
	}
	return 0
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента
type Mark int

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.pos)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	start := c.Off()
	if int(m) < len(c.clusters) {
		start = c.clusters[m].Start
	}
	return source.Span{File: c.File.ID, Start: start, End: c.Off()}
}
