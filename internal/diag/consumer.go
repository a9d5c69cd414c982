package diag

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"glint/internal/source"
)

// Consumer receives every diagnostic emitted while a front-end instance is
// working on behalf of a query. Consumers registered on an instance must be
// removed on every exit path; see frontend.Instance.
type Consumer interface {
	Handle(fset *source.FileSet, d Diagnostic)
}

// PrintingConsumer renders diagnostics to a writer. It is the always-present
// primary sink of the capture layer.
type PrintingConsumer struct {
	Out   io.Writer
	Color bool
}

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan)
)

func (p *PrintingConsumer) Handle(fset *source.FileSet, d Diagnostic) {
	if p.Out == nil {
		return
	}
	sev := d.Severity.String()
	if p.Color {
		switch d.Severity {
		case SevError:
			sev = errColor.Sprint(sev)
		case SevWarning:
			sev = warnColor.Sprint(sev)
		default:
			sev = infoColor.Sprint(sev)
		}
	}
	loc := ""
	if fset != nil && (!d.Primary.Empty() || d.Primary.Start > 0) {
		start, _ := fset.Resolve(d.Primary)
		loc = fmt.Sprintf("%s:%d:%d: ", fset.Get(d.Primary.File).Path, start.Line, start.Col)
	}
	fmt.Fprintf(p.Out, "%s%s [%s]: %s\n", loc, sev, d.Code, d.Message)
}

// CollectingConsumer accumulates diagnostics for trace correlation.
// Safe for use from the single query goroutine; All returns a copy.
type CollectingConsumer struct {
	mu  sync.Mutex
	bag []Diagnostic
}

func (c *CollectingConsumer) Handle(_ *source.FileSet, d Diagnostic) {
	c.mu.Lock()
	c.bag = append(c.bag, d)
	c.mu.Unlock()
}

// All returns the accumulated diagnostics.
func (c *CollectingConsumer) All() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.bag))
	copy(out, c.bag)
	return out
}

// ForwardingConsumer fans a diagnostic out to several consumers.
type ForwardingConsumer struct {
	Targets []Consumer
}

func (f *ForwardingConsumer) Handle(fset *source.FileSet, d Diagnostic) {
	for _, t := range f.Targets {
		t.Handle(fset, d)
	}
}
