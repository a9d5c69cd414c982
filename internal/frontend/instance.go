package frontend

import (
	"fmt"
	"path/filepath"
	"sync"

	"glint/internal/ast"
	"glint/internal/diag"
	"glint/internal/parser"
	"glint/internal/sema"
	"glint/internal/source"
)

// Instance wraps one front-end for one compilation-context cache key. It
// owns the persistent parser state and the diagnostic consumer registry.
// The cache serializes all use per key, so methods assume one active query
// at a time; the mutex only guards the consumer list against registration
// races on shared cached instances.
type Instance struct {
	inv            *Invocation
	fs             source.FS
	maxDiagnostics int

	mu        sync.Mutex
	consumers []diag.Consumer

	fileSet    *source.FileSet
	files      []*ast.File
	state      *sema.State
	parseCount int
}

// NewInstance builds an unparsed instance. The filesystem is expected to
// already carry the derived marker buffer as an overlay.
func NewInstance(inv *Invocation, fs source.FS, maxDiagnostics int) *Instance {
	return &Instance{
		inv:            inv,
		fs:             fs,
		maxDiagnostics: maxDiagnostics,
		fileSet:        source.NewFileSet(),
	}
}

func (in *Instance) Invocation() *Invocation { return in.inv }

// AddDiagConsumer registers a consumer for all diagnostics this instance
// emits. Callers must remove it on every exit path.
func (in *Instance) AddDiagConsumer(c diag.Consumer) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.consumers = append(in.consumers, c)
}

// RemoveDiagConsumer unregisters a previously added consumer.
func (in *Instance) RemoveDiagConsumer(c diag.Consumer) {
	in.mu.Lock()
	defer in.mu.Unlock()
	for i, have := range in.consumers {
		if have == c {
			in.consumers = append(in.consumers[:i], in.consumers[i+1:]...)
			return
		}
	}
}

func (in *Instance) reporter() diag.Reporter {
	in.mu.Lock()
	targets := append([]diag.Consumer(nil), in.consumers...)
	in.mu.Unlock()
	return diag.ConsumerReporter{
		FileSet:  in.fileSet,
		Consumer: &diag.ForwardingConsumer{Targets: targets},
	}
}

// resolveImports loads `import name` declarations through the -I search
// directories. An unresolvable import is a regular diagnostic, not a setup
// failure: the query still runs over what did load. Transitive imports are
// followed; each module loads once.
func (in *Instance) resolveImports(files []*ast.File, reporter diag.Reporter) []*ast.File {
	var extra []*ast.File
	queue := append([]*ast.File(nil), files...)
	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]
		for _, d := range f.Decls {
			imp, ok := d.(*ast.ImportDecl)
			if !ok {
				continue
			}
			path, found := in.findImport(imp.Path)
			if !found {
				reporter.Report(diag.IOLoadFileError, diag.SevError, imp.Span,
					fmt.Sprintf("cannot find module %q in search path", imp.Path))
				continue
			}
			if _, loaded := in.fileSet.GetByPath(path); loaded {
				continue
			}
			id, err := in.fileSet.Load(in.fs, path)
			if err != nil {
				reporter.Report(diag.IOLoadFileError, diag.SevError, imp.Span,
					fmt.Sprintf("cannot open module %q: %v", imp.Path, err))
				continue
			}
			mod := parser.ParseFile(in.fileSet.Get(id), parser.Options{
				Reporter:  reporter,
				MaxErrors: in.maxDiagnostics,
			})
			extra = append(extra, mod)
			queue = append(queue, mod)
		}
	}
	return extra
}

func (in *Instance) findImport(name string) (string, bool) {
	for _, dir := range in.inv.SearchDirs {
		candidate := filepath.Join(dir, name+".gl")
		if _, err := in.fs.ReadFile(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

// HasPersistentParserState reports whether parse-and-resolve-imports already
// ran for this instance.
func (in *Instance) HasPersistentParserState() bool {
	return in.state != nil
}

// ParserState returns the persistent parser state; nil before the first
// ParseAndResolveImports.
func (in *Instance) ParserState() *sema.State {
	return in.state
}

// ParseCount reports how many times the initial parse ran. Cached reuse
// across queries keeps it at 1.
func (in *Instance) ParseCount() int {
	return in.parseCount
}

// FileSet exposes the instance's file table for diagnostics rendering.
func (in *Instance) FileSet() *source.FileSet {
	return in.fileSet
}

// ParseAndResolveImports performs the initial parse and name binding for all
// invocation inputs. It runs at most once per instance; later calls are
// no-ops so cached contexts are never re-parsed.
func (in *Instance) ParseAndResolveImports() error {
	if in.state != nil {
		return nil
	}
	reporter := in.reporter()
	var files []*ast.File
	for _, path := range in.inv.Inputs {
		id, err := in.fileSet.Load(in.fs, path)
		if err != nil {
			return fmt.Errorf("cannot open input file %q: %v: %w", path, err, ErrFrontendSetup)
		}
		files = append(files, parser.ParseFile(in.fileSet.Get(id), parser.Options{
			Reporter:  reporter,
			MaxErrors: in.maxDiagnostics,
		}))
	}
	files = append(files, in.resolveImports(files, reporter)...)
	globals := sema.Bind(in.fileSet, files, reporter)
	in.files = files
	in.state = &sema.State{Globals: globals}
	in.parseCount++
	return nil
}
