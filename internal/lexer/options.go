package lexer

import (
	"github.com/atanasgiliev/hiatus-detector/internal/diag"
	"github.com/atanasgiliev/hiatus-detector/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil, тогда находки игнорируем (но продолжаем)
	// Punct отмечает кластеры, которые всегда пунктуация, даже если это буквы
	// (например апостроф U+02BC как знак элизии).
	Punct func(cluster string) bool
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportWarning(lx.opts.Reporter, code, sp, msg).Emit()
	}
}
