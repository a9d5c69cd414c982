package diag

import "glint/internal/source"

// Reporter is the minimal contract phases use to emit diagnostics.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string)
}

// BagReporter stores reported diagnostics in a Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary})
}

// ConsumerReporter bridges the phase-level Reporter onto the query-level
// Consumer chain.
type ConsumerReporter struct {
	FileSet  *source.FileSet
	Consumer Consumer
}

func (r ConsumerReporter) Report(code Code, sev Severity, primary source.Span, msg string) {
	if r.Consumer == nil {
		return
	}
	r.Consumer.Handle(r.FileSet, Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary})
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, source.Span, string) {}
