package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("tokenize")
	time.Sleep(time.Millisecond)
	tm.End(idx, "12 tokens")
	tm.End(42, "ignored")

	r := tm.Report()
	if len(r.Phases) != 1 || r.Phases[0].Name != "tokenize" || r.Phases[0].Note != "12 tokens" {
		t.Fatalf("unexpected report %+v", r)
	}
	if r.Phases[0].DurationMS <= 0 || r.TotalMS != r.Phases[0].DurationMS {
		t.Fatalf("unexpected durations %+v", r)
	}
	s := tm.Summary()
	if !strings.Contains(s, "tokenize") || !strings.Contains(s, "// 12 tokens") || !strings.Contains(s, "total") {
		t.Fatalf("unexpected summary %q", s)
	}
}

func TestTimerMerge(t *testing.T) {
	a, b := NewTimer(), NewTimer()
	a.End(a.Begin("scan"), "")
	b.End(b.Begin("scan"), "")
	b.End(b.Begin("write"), "2 files")
	a.Merge(b)
	r := a.Report()
	if len(r.Phases) != 2 || r.Phases[1].Name != "write" || r.Phases[1].Note != "" {
		t.Fatalf("unexpected merged report %+v", r)
	}

	var nilTimer *Timer
	nilTimer.End(nilTimer.Begin("x"), "")
	if len(nilTimer.Report().Phases) != 0 {
		t.Fatalf("nil timer must be inert")
	}
}
