package diag

import (
	"bytes"
	"strings"
	"testing"

	"glint/internal/source"
)

func TestPrintingConsumerRendersLocation(t *testing.T) {
	fset := source.NewFileSet()
	id := fset.AddVirtual("main.gl", []byte("ab\ncd"))

	var buf bytes.Buffer
	p := &PrintingConsumer{Out: &buf}
	p.Handle(fset, Diagnostic{
		Severity: SevError,
		Code:     SemaUnresolvedType,
		Message:  "unresolved type \"Mystery\"",
		Primary:  source.Span{File: id, Start: 3, End: 4},
	})

	out := buf.String()
	for _, want := range []string{"main.gl:2:1:", "ERROR", "GL3001", "unresolved type"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestPrintingConsumerWithoutLocation(t *testing.T) {
	var buf bytes.Buffer
	p := &PrintingConsumer{Out: &buf}
	p.Handle(nil, Diagnostic{Severity: SevWarning, Code: UnknownCode, Message: "hello"})
	out := buf.String()
	if !strings.Contains(out, "WARNING") || !strings.Contains(out, "hello") {
		t.Errorf("output = %q", out)
	}
	if strings.Contains(out, ":0:") {
		t.Errorf("output %q renders a bogus location", out)
	}
}

func TestCollectingConsumerReturnsCopies(t *testing.T) {
	c := &CollectingConsumer{}
	c.Handle(nil, Diagnostic{Message: "one"})
	c.Handle(nil, Diagnostic{Message: "two"})

	all := c.All()
	if len(all) != 2 {
		t.Fatalf("got %d diagnostics, want 2", len(all))
	}
	all[0].Message = "mutated"
	if c.All()[0].Message != "one" {
		t.Error("All must return an independent copy")
	}
}

func TestForwardingConsumerFansOut(t *testing.T) {
	a := &CollectingConsumer{}
	b := &CollectingConsumer{}
	f := &ForwardingConsumer{Targets: []Consumer{a, b}}
	f.Handle(nil, Diagnostic{Message: "x"})

	if len(a.All()) != 1 || len(b.All()) != 1 {
		t.Errorf("fan-out missed a target: %d, %d", len(a.All()), len(b.All()))
	}
}
