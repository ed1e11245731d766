package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("poem.txt", "hello world", 0)
	id2 := fs.Add("poem.txt", "hello universe", 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}

	latest, ok := fs.GetLatest("poem.txt")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v; want %d,true", latest, ok, id2)
	}
	if fs.Get(id1).Text != "hello world" {
		t.Errorf("old version lost: %q", fs.Get(id1).Text)
	}
}

// TestRuneOffsets проверяет, что смещения считаются в рунах, а не в байтах
func TestRuneOffsets(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("greek.txt", "αβ\nγ")
	f := fs.Get(id)

	if f.Len() != 4 {
		t.Fatalf("expected 4 runes, got %d", f.Len())
	}
	if got := f.Slice(Span{File: id, Start: 1, End: 2}); got != "β" {
		t.Errorf("Slice(1,2) = %q, want β", got)
	}
	start, end := fs.Resolve(Span{File: id, Start: 3, End: 4})
	if start != (LineCol{Line: 2, Col: 1}) || end != (LineCol{Line: 2, Col: 2}) {
		t.Errorf("Resolve = %+v..%+v", start, end)
	}
	if f.Line(1) != 1 || f.Line(3) != 2 {
		t.Errorf("Line() mismatch: %d %d", f.Line(1), f.Line(3))
	}
	if f.GetLine(1) != "αβ" || f.GetLine(2) != "γ" || f.GetLine(3) != "" {
		t.Errorf("GetLine mismatch: %q %q %q", f.GetLine(1), f.GetLine(2), f.GetLine(3))
	}
	if f.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag to be set")
	}
}

func TestLoadKeepsCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crlf.txt")
	if err := os.WriteFile(path, []byte("a\r\nb\r\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := fs.Get(id).Text; got != "a\r\nb\r\n" {
		t.Fatalf("text must be kept verbatim, got %q", got)
	}
}

func TestLoadBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bom.txt")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFaí\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if f.Text != "aí\n" {
		t.Errorf("expected BOM to be stripped, got %q", f.Text)
	}
	if f.Flags&FileHadBOM == 0 {
		t.Error("expected FileHadBOM flag to be set")
	}
}

func TestDecodeUTF16(t *testing.T) {
	// UTF-16LE BOM + "ab"
	raw := []byte{0xFF, 0xFE, 'a', 0, 'b', 0}
	text, flags, err := Decode("u16.txt", raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if text != "ab" {
		t.Errorf("Decode = %q, want ab", text)
	}
	if flags&FileDecodedUTF16 == 0 {
		t.Error("expected FileDecodedUTF16 flag")
	}
}

func TestLoadInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	if err := os.WriteFile(path, []byte("ab\xffcd"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	fs := NewFileSet()
	_, err := fs.Load(path)
	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("expected *EncodingError, got %v", err)
	}
	if encErr.Offset != 2 {
		t.Errorf("expected offset 2, got %d", encErr.Offset)
	}
	if fs.Len() != 0 {
		t.Errorf("nothing must be added on decode failure")
	}
}

func TestCheckText(t *testing.T) {
	tests := []struct {
		text   string
		offset int
	}{
		{"saída", -1},
		{"", -1},
		{"a\xffe", 1},
		{"ío\xc3", 3},
	}
	for _, tt := range tests {
		err := CheckText("t.txt", tt.text)
		if tt.offset < 0 {
			if err != nil {
				t.Errorf("CheckText(%q) = %v, want nil", tt.text, err)
			}
			continue
		}
		var encErr *EncodingError
		if !errors.As(err, &encErr) {
			t.Fatalf("CheckText(%q): expected *EncodingError, got %v", tt.text, err)
		}
		if encErr.Offset != tt.offset {
			t.Errorf("CheckText(%q): offset %d, want %d", tt.text, encErr.Offset, tt.offset)
		}
	}
}
