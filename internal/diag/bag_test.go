package diag

import (
	"testing"

	"github.com/atanasgiliev/hiatus-detector/internal/source"
)

func TestBagLimitAndDropped(t *testing.T) {
	bag := NewBag(2)
	for i := 0; i < 4; i++ {
		bag.Add(New(SevInfo, PhonUnknownGrapheme, source.Span{Start: uint32(i), End: uint32(i + 1)}, "x"))
	}
	if bag.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", bag.Len())
	}
	if bag.Dropped() != 2 {
		t.Fatalf("expected 2 dropped, got %d", bag.Dropped())
	}
	if bag.HasWarnings() || bag.HasErrors() {
		t.Fatalf("info diagnostics must not count as warnings")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	bag := NewBag(10)
	sp := source.Span{Start: 5, End: 6}
	bag.Add(New(SevInfo, PhonUnknownGrapheme, sp, "late"))
	bag.Add(New(SevWarning, LexControlChar, source.Span{Start: 1, End: 2}, "early"))
	bag.Add(New(SevInfo, PhonUnknownGrapheme, sp, "late again"))

	bag.Sort()
	bag.Dedup()

	items := bag.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items after dedup, got %d", len(items))
	}
	if items[0].Message != "early" {
		t.Fatalf("expected earliest span first, got %q", items[0].Message)
	}
	if !bag.HasWarnings() {
		t.Fatalf("expected HasWarnings")
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(10)
	b := ReportWarning(BagReporter{Bag: bag}, LexReplacementChar, source.Span{}, "msg").
		WithNote(source.Span{Start: 1, End: 2}, "note")
	b.Emit()
	b.Emit()

	if bag.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", bag.Len())
	}
	if len(bag.Items()[0].Notes) != 1 {
		t.Fatalf("expected note to be kept")
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexControlChar:      "LEX1001",
		PhonUnknownGrapheme: "PHN2001",
		ScanElisionSkipped:  "SCN3001",
		IOSinkError:         "IO4003",
		UnknownCode:         "E0000",
	}
	for c, want := range cases {
		if got := c.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", c, got, want)
		}
	}
}
