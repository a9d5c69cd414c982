package service

import (
	"io"
	"os"
	"strconv"

	"glint/internal/complete"
	"glint/internal/diag"
	"glint/internal/docs"
	"glint/internal/frontend"
	"glint/internal/sema"
	"glint/internal/source"
	"glint/internal/trace"
)

// Buffer is the caller-provided source buffer for one query.
type Buffer struct {
	Identity string // usually a file path; aliases/symlinks are resolved
	Content  []byte
}

// Options configure a Service.
type Options struct {
	FS             source.FS        // default: OSFS
	Cache          *complete.Cache  // default: NewCache(DefaultCacheCapacity)
	Recorder       *trace.Recorder  // nil disables tracing
	DiagOut        io.Writer        // printing diagnostic sink; default os.Stderr
	DiagColor      bool
	MaxDiagnostics int
}

// Service answers semantic-completion queries. It owns the compilation
// context cache; everything else is query-scoped.
type Service struct {
	fs             source.FS
	cache          *complete.Cache
	recorder       *trace.Recorder
	diagOut        io.Writer
	diagColor      bool
	maxDiagnostics int
}

func New(opts Options) *Service {
	s := &Service{
		fs:             opts.FS,
		cache:          opts.Cache,
		recorder:       opts.Recorder,
		diagOut:        opts.DiagOut,
		diagColor:      opts.DiagColor,
		maxDiagnostics: opts.MaxDiagnostics,
	}
	if s.fs == nil {
		s.fs = source.OSFS{}
	}
	if s.cache == nil {
		s.cache = complete.NewCache(0)
	}
	if s.diagOut == nil {
		s.diagOut = os.Stderr
	}
	if s.maxDiagnostics <= 0 {
		s.maxDiagnostics = 100
	}
	return s
}

// Cache exposes the compilation-context cache (tests observe reuse on it).
func (s *Service) Cache() *complete.Cache { return s.cache }

// queryContext carries the per-query state shared by both entry points:
// resolved identity, derived buffer, diagnostic capture and trace operation.
type queryContext struct {
	fs       source.FS
	identity string // canonicalized buffer identity
	alias    string // original identity when canonicalization changed it
	derived  []byte
	adjusted uint32
	fwd      *diag.ForwardingConsumer
	op       *trace.Operation
	inv      *frontend.Invocation
}

// prepare runs the steps every query shares: canonicalize the buffer
// identity (best effort), splice the completion marker, set up diagnostic
// capture and tracing, and validate the invocation. The returned context is
// non-nil even on error so the caller can finish the trace operation.
func (s *Service) prepare(kind string, buf Buffer, offset uint32, args []string, fs source.FS) (*queryContext, error) {
	qc := &queryContext{fs: fs}

	// Resolve aliases/symlinks for the input buffer. Failure is non-fatal:
	// the original identity is used unchanged.
	qc.identity = buf.Identity
	var realpathErr error
	if real, err := fs.RealPath(buf.Identity); err == nil {
		if real != buf.Identity {
			qc.alias = buf.Identity
		}
		qc.identity = real
	} else {
		realpathErr = err
	}

	qc.derived, qc.adjusted = source.WithMarker(buf.Content, offset)

	// Diagnostic capture: always print; duplicate into a collector
	// correlated with the trace record when tracing is active.
	printing := &diag.PrintingConsumer{Out: s.diagOut, Color: s.diagColor}
	targets := []diag.Consumer{printing}
	qc.op = s.recorder.Begin(kind)
	if qc.op.Enabled() {
		collector := &diag.CollectingConsumer{}
		targets = append(targets, collector)
		qc.op.SetDiagnosticProvider(collector.All)
		qc.op.Start(trace.RequestInfo{
			BufferIdentity: qc.identity,
			Args:           args,
			OriginalOffset: offset,
			MarkerOffset:   qc.adjusted,
		}, map[string]string{
			"original_offset": strconv.FormatUint(uint64(offset), 10),
			"offset":          strconv.FormatUint(uint64(qc.adjusted), 10),
		})
		if realpathErr != nil {
			qc.op.AddAttr("realpath_error", realpathErr.Error())
		}
	}
	qc.fwd = &diag.ForwardingConsumer{Targets: targets}

	inv, err := frontend.ParseInvocation(args)
	if err != nil {
		return qc, err
	}
	qc.inv = inv
	return qc, nil
}

// execute acquires (or reuses) the compilation context for the query and
// drives the second pass with the installed strategy. The diagnostic
// consumer registration is released on every exit path.
func (s *Service) execute(qc *queryContext, cb sema.CompletionCallbacks) error {
	// The derived marker buffer shadows the on-disk file, under both the
	// canonical identity and the caller's original spelling.
	var fs source.FS = &source.Overlay{Base: qc.fs, Path: qc.identity, Content: qc.derived}
	if qc.alias != "" {
		fs = &source.Overlay{Base: fs, Path: qc.alias, Content: qc.derived}
	}

	key := complete.KeyFor(qc.inv, qc.identity, qc.derived, qc.adjusted)
	pinned := s.cache.Acquire(key, func() *frontend.Instance {
		return frontend.NewInstance(qc.inv, fs, s.maxDiagnostics)
	})
	defer pinned.Release()

	inst := pinned.Instance()
	inst.AddDiagConsumer(qc.fwd)
	defer inst.RemoveDiagConsumer(qc.fwd)

	if !inst.HasPersistentParserState() {
		qc.op.AddAttr("initial_parse", "1")
	}
	return complete.Run(inst, cb)
}

// GetConformingMethodList answers a ConformingMethodList query: which
// methods of the type at the marker satisfy the expected protocol/type
// names. Exactly one of consumer.HandleResult / consumer.Failed is invoked.
// vfs, when non-nil, overrides the service filesystem for this query.
func (s *Service) GetConformingMethodList(buf Buffer, offset uint32, args []string, expectedTypeNames []string, consumer ConformingMethodsConsumer, vfs source.FS) {
	fs := s.fs
	if vfs != nil {
		fs = vfs
	}
	qc, err := s.prepare("conforming-methods", buf, offset, args, fs)
	defer qc.op.Finish()
	if err != nil {
		consumer.Failed(err.Error())
		return
	}

	proj := &conformingProjector{docs: docs.NewStore(fs), out: consumer}
	if err := s.execute(qc, complete.NewConformingMethodListCallbacks(expectedTypeNames, proj)); err != nil {
		consumer.Failed(err.Error())
		return
	}
	if !proj.delivered {
		// Absence of candidates is a successful, empty result.
		consumer.HandleResult(ConformingMethodsResult{})
	}
}

// GetExpressionContextInfo answers a TypeContextInfo query: the statically
// expected type at the marker position and its implicit members. Exactly
// one of consumer.HandleResults / consumer.Failed is invoked.
func (s *Service) GetExpressionContextInfo(buf Buffer, offset uint32, args []string, consumer TypeContextConsumer, vfs source.FS) {
	fs := s.fs
	if vfs != nil {
		fs = vfs
	}
	qc, err := s.prepare("type-context", buf, offset, args, fs)
	defer qc.op.Finish()
	if err != nil {
		consumer.Failed(err.Error())
		return
	}

	proj := &typeContextProjector{docs: docs.NewStore(fs), out: consumer}
	if err := s.execute(qc, complete.NewTypeContextInfoCallbacks(proj)); err != nil {
		consumer.Failed(err.Error())
		return
	}
	if !proj.delivered {
		consumer.HandleResults(nil)
	}
}
