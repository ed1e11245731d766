package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Токенизация
	LexControlChar     Code = 1001
	LexReplacementChar Code = 1002

	// Фонетическая классификация
	PhonUnknownGrapheme Code = 2001

	// Сканер
	ScanElisionSkipped Code = 3001
	ScanGapTooLong     Code = 3002

	// Ввод/вывод
	IOLoadFileError Code = 4001
	IOEncodingError Code = 4002
	IOSinkError     Code = 4003
	IOCacheError    Code = 4004
)

var codeTitles = map[Code]string{
	UnknownCode:         "unknown",
	LexControlChar:      "control character in text",
	LexReplacementChar:  "replacement character in text",
	PhonUnknownGrapheme: "grapheme outside the rule table",
	ScanElisionSkipped:  "cross-word pair suppressed by elision",
	ScanGapTooLong:      "vowel pair separated by a long gap",
	IOLoadFileError:     "failed to load file",
	IOEncodingError:     "text cannot be decoded",
	IOSinkError:         "failed to write artifact",
	IOCacheError:        "result cache unavailable",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("PHN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SCN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	if t, ok := codeTitles[c]; ok {
		return t
	}
	return codeTitles[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
