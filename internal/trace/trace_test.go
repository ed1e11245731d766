package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeUnit, false},
		{LevelDebug, ScopeUnit, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseFlags(t *testing.T) {
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Fatalf("ParseLevel: %v %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat: %v %v", f, err)
	}
	if m, err := ParseMode("both"); err != nil || m != ModeBoth {
		t.Fatalf("ParseMode: %v %v", m, err)
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)

	root := Begin(tr, ScopeDriver, "scan", 0)
	pass := Begin(tr, ScopePass, "tokenize", root.ID())
	pass.WithExtra("tokens", "3").End("")
	Point(tr, ScopeUnit, "occurrence", pass.ID(), "filtered out", nil)
	root.End("done")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 events, got %d:\n%s", len(lines), buf.String())
	}
	var ev jsonEvent
	if err := json.Unmarshal([]byte(lines[2]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Kind != "end" || ev.Name != "tokenize" || ev.Extra["tokens"] != "3" || ev.ParentID != root.ID() {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	Point(tr, ScopeUnit, "occurrence", 0, "I", map[string]string{"b": "2", "a": "1"})
	out := buf.String()
	if !strings.Contains(out, "• occurrence (I) {a=1, b=2}") {
		t.Fatalf("unexpected text %q", out)
	}
}

func TestRingKeepsLastEventsAtErrorLevel(t *testing.T) {
	ring := NewRingTracer(2, LevelError)
	for _, name := range []string{"a", "b", "c"} {
		Begin(ring, ScopePass, name, 0)
	}
	events := ring.Snapshot()
	if len(events) != 2 || events[0].Name != "b" || events[1].Name != "c" {
		t.Fatalf("unexpected ring contents %+v", events)
	}
	var buf bytes.Buffer
	if err := ring.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Fatalf("dump should have 2 lines: %q", buf.String())
	}
}

func TestNopAndContext(t *testing.T) {
	ctx := context.Background()
	if FromContext(ctx) != Nop {
		t.Fatalf("expected Nop tracer")
	}
	span := Begin(FromContext(ctx), ScopeDriver, "x", 0)
	if span.ID() != 0 || span.End("") != 0 {
		t.Fatalf("nop span must be inert")
	}

	ring := NewRingTracer(8, LevelDebug)
	multi := NewMultiTracer(LevelDebug, ring)
	ctx = WithTracer(ctx, multi)
	s := Begin(FromContext(ctx), ScopePass, "scan", 0)
	ctx = WithParent(ctx, s)
	if ParentFromContext(ctx) != s.ID() {
		t.Fatalf("parent not propagated")
	}
	if multi.Ring() != ring || len(ring.Snapshot()) != 1 {
		t.Fatalf("multi tracer did not forward to ring")
	}
}

func TestNewOff(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("LevelOff must give a disabled tracer: %v", err)
	}
	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeStream, Output: &buf})
	if err != nil || !tr.Enabled() {
		t.Fatalf("stream tracer: %v", err)
	}
}
