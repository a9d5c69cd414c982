package docs

import (
	"sync"

	"github.com/BurntSushi/toml"

	"glint/internal/ast"
	"glint/internal/source"
)

// Foreign declarations come from interop headers whose documentation lives
// outside the source text, in a sidecar file next to the declaring source:
// `<file>.docs.toml` with a single `[brief]` table of name = "text" pairs.
type sidecar struct {
	Brief map[string]string `toml:"brief"`
}

// Store resolves brief documentation for declarations. Native declarations
// use their attached doc comment; foreign declarations consult the sidecar
// of their declaring file. Sidecars load lazily and failures degrade to "no
// documentation".
type Store struct {
	fs source.FS

	mu       sync.Mutex
	sidecars map[string]map[string]string // file path -> name -> brief
}

func NewStore(fs source.FS) *Store {
	return &Store{fs: fs, sidecars: make(map[string]map[string]string)}
}

// Brief returns the documentation string for a member-like declaration. The
// returned value is an owned string, independent of any shared buffer.
func (s *Store) Brief(origin ast.Origin, name, nativeDoc, file string) string {
	switch origin {
	case ast.OriginForeign:
		return s.foreignBrief(file, name)
	default:
		return nativeDoc
	}
}

func (s *Store) foreignBrief(file, name string) string {
	if file == "" {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	briefs, ok := s.sidecars[file]
	if !ok {
		briefs = s.load(file)
		s.sidecars[file] = briefs
	}
	return briefs[name]
}

func (s *Store) load(file string) map[string]string {
	raw, err := s.fs.ReadFile(file + ".docs.toml")
	if err != nil {
		return map[string]string{}
	}
	var sc sidecar
	if err := toml.Unmarshal(raw, &sc); err != nil {
		return map[string]string{}
	}
	if sc.Brief == nil {
		return map[string]string{}
	}
	return sc.Brief
}
