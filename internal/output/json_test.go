package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrinter_Indented(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, false).JSON(map[string]int{"a": 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "{\n  \"a\": 1\n}\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestPrinter_Compact(t *testing.T) {
	var buf bytes.Buffer
	_ = New(&buf, true).JSON(map[string]int{"a": 1})
	if buf.String() != "{\"a\":1}\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestPrinter_Error(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true).Error("search failed", "boom")
	if !strings.Contains(buf.String(), `"error":"search failed"`) || !strings.Contains(buf.String(), `"details":"boom"`) {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestPrinter_MarshalFailure(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, true).JSON(make(chan int)); err == nil {
		t.Error("expected marshal error")
	}
}
