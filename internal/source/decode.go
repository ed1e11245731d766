package source

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// EncodingError reports input that cannot be decoded as text.
type EncodingError struct {
	Path   string
	Offset int // byte offset of the first undecodable sequence, -1 if unknown
	Reason string
}

func (e *EncodingError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s: cannot decode text at byte %d: %s", e.Path, e.Offset, e.Reason)
	}
	return fmt.Sprintf("%s: cannot decode text: %s", e.Path, e.Reason)
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decode turns raw bytes into text. UTF-16 input is accepted only with a BOM;
// everything else must be valid UTF-8. A leading BOM is not part of the text.
func Decode(path string, content []byte) (string, FileFlags, error) {
	var flags FileFlags

	switch {
	case bytes.HasPrefix(content, bomUTF16LE), bytes.HasPrefix(content, bomUTF16BE):
		dec := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		out, _, err := transform.Bytes(dec, content)
		if err != nil {
			return "", 0, &EncodingError{Path: path, Offset: -1, Reason: err.Error()}
		}
		flags |= FileHadBOM | FileDecodedUTF16
		content = out
	case bytes.HasPrefix(content, bomUTF8):
		flags |= FileHadBOM
		content = content[len(bomUTF8):]
	}

	if off := invalidUTF8At(content); off >= 0 {
		if flags&FileDecodedUTF16 != 0 {
			return "", 0, &EncodingError{Path: path, Offset: -1, Reason: "invalid UTF-16 sequence"}
		}
		if flags&FileHadBOM != 0 {
			off += len(bomUTF8)
		}
		return "", 0, &EncodingError{Path: path, Offset: off, Reason: "invalid UTF-8 sequence"}
	}
	return string(content), flags, nil
}

func invalidUTF8At(b []byte) int {
	if utf8.Valid(b) {
		return -1
	}
	for i := 0; i < len(b); {
		r, sz := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && sz <= 1 {
			return i
		}
		i += sz
	}
	return -1
}

// CheckText rejects text that is not valid UTF-8. Strings that did not come
// through Decode go through here before they enter a FileSet.
func CheckText(path, text string) error {
	if utf8.ValidString(text) {
		return nil
	}
	for i, r := range text {
		if r == utf8.RuneError {
			if _, sz := utf8.DecodeRuneInString(text[i:]); sz <= 1 {
				return &EncodingError{Path: path, Offset: i, Reason: "invalid UTF-8 sequence"}
			}
		}
	}
	return &EncodingError{Path: path, Offset: -1, Reason: "invalid UTF-8 sequence"}
}
