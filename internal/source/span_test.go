package source

import (
	"testing"
)

func TestSpan_CoverAndContains(t *testing.T) {
	a := Span{File: 0, Start: 3, End: 5}
	b := Span{File: 0, Start: 7, End: 9}

	c := a.Cover(b)
	if c.Start != 3 || c.End != 9 {
		t.Fatalf("Cover() = %+v, want 3-9", c)
	}
	if !c.Contains(a) || !c.Contains(b) {
		t.Fatalf("expected %v to contain both %v and %v", c, a, b)
	}
	if a.Contains(b) {
		t.Fatalf("%v must not contain %v", a, b)
	}

	other := Span{File: 1, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Fatalf("Cover across files changed span: %+v", got)
	}
	if a.Len() != 2 || a.Empty() {
		t.Fatalf("unexpected Len/Empty for %v", a)
	}
}
