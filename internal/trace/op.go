package trace

import (
	"fmt"
	"os"
	"time"

	"glint/internal/diag"
)

// Config controls the tracing side channel.
type Config struct {
	Enabled bool
	Dir     string // record store directory
}

// FromEnv reads tracing configuration from the environment: GLINT_TRACE
// enables, GLINT_TRACE_DIR overrides the store location.
func FromEnv() Config {
	cfg := Config{}
	if v := os.Getenv("GLINT_TRACE"); v != "" && v != "0" {
		cfg.Enabled = true
	}
	cfg.Dir = os.Getenv("GLINT_TRACE_DIR")
	return cfg
}

// Recorder owns the record store. A nil Recorder is valid and disabled.
type Recorder struct {
	store *Store
}

// NewRecorder opens the store when tracing is enabled; a disabled config
// yields a nil recorder.
func NewRecorder(cfg Config) (*Recorder, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	dir := cfg.Dir
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = home + "/.cache"
		}
		dir = base + "/glint/trace"
	}
	store, err := OpenStore(dir)
	if err != nil {
		return nil, err
	}
	return &Recorder{store: store}, nil
}

// Enabled reports whether operations started from this recorder persist.
func (r *Recorder) Enabled() bool {
	return r != nil && r.store != nil
}

// Begin creates a traced operation. Always non-nil; on a disabled recorder
// every method is a no-op, so call sites need no branching.
func (r *Recorder) Begin(kind string) *Operation {
	op := &Operation{kind: kind}
	if r.Enabled() {
		op.recorder = r
	}
	return op
}

// Operation correlates one query with the diagnostics it produced. Purely
// an observability side channel: it never alters result content.
type Operation struct {
	kind         string
	recorder     *Recorder
	rec          Record
	started      bool
	diagProvider func() []diag.Diagnostic
}

// Enabled reports whether this operation records anything.
func (op *Operation) Enabled() bool {
	return op != nil && op.recorder != nil
}

// Start captures the request identity and key-value attributes.
func (op *Operation) Start(info RequestInfo, attrs map[string]string) {
	if !op.Enabled() {
		return
	}
	info.Kind = op.kind
	op.rec = Record{Time: time.Now(), Request: info, Attrs: attrs}
	op.started = true
}

// SetDiagnosticProvider registers the callback that yields collected
// diagnostics when the operation finishes.
func (op *Operation) SetDiagnosticProvider(fn func() []diag.Diagnostic) {
	if !op.Enabled() {
		return
	}
	op.diagProvider = fn
}

// AddAttr attaches one attribute after Start (e.g. fallback notes).
func (op *Operation) AddAttr(key, value string) {
	if !op.Enabled() || !op.started {
		return
	}
	if op.rec.Attrs == nil {
		op.rec.Attrs = make(map[string]string)
	}
	op.rec.Attrs[key] = value
}

// Finish attaches collected diagnostics and persists the record. Safe to
// defer; does nothing when the operation never started.
func (op *Operation) Finish() {
	if !op.Enabled() || !op.started {
		return
	}
	if op.diagProvider != nil {
		for _, d := range op.diagProvider() {
			op.rec.Diagnostics = append(op.rec.Diagnostics, DiagRecord{
				Severity: d.Severity.String(),
				Code:     d.Code.String(),
				Message:  d.Message,
				Offset:   d.Primary.Start,
			})
		}
	}
	if err := op.recorder.store.Append(&op.rec); err != nil {
		fmt.Fprintf(os.Stderr, "glint: failed to persist trace record: %v\n", err)
	}
	op.started = false
}
