package scan

import "github.com/atanasgiliev/hiatus-detector/internal/diag"

// Options control which boundaries the scanner looks across.
type Options struct {
	CrossWord    bool // пары через пробел/пунктуацию в одной строке
	CrossLine    bool // пары через ровно один перевод строки
	Elision      bool // подавлять пары при элизии
	MaxGap       int  // максимальная длина промежутка между словами, в рунах
	ContextWidth int  // руны контекста с каждой стороны
	Reporter     diag.Reporter
}

const (
	DefaultMaxGap       = 8
	DefaultContextWidth = 20
)

func DefaultOptions() Options {
	return Options{
		CrossWord:    true,
		CrossLine:    true,
		Elision:      true,
		MaxGap:       DefaultMaxGap,
		ContextWidth: DefaultContextWidth,
	}
}
