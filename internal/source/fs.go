package source

import (
	"fmt"
	"os"
	"path/filepath"
)

// FS is the filesystem collaborator for the query pipeline. RealPath failures
// are tolerated by callers (the unresolved identity is used instead), so
// implementations may be best-effort.
type FS interface {
	ReadFile(path string) ([]byte, error)
	RealPath(path string) (string, error)
}

// OSFS reads from the host filesystem and resolves symlinks.
type OSFS struct{}

func (OSFS) ReadFile(path string) ([]byte, error) {
	// #nosec G304 -- path is provided by the caller
	return os.ReadFile(path)
}

func (OSFS) RealPath(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}

// MapFS is an in-memory filesystem used for virtual-filesystem overrides and
// tests. Real paths resolve through the Links table when present.
type MapFS struct {
	Files map[string][]byte
	Links map[string]string // alias -> canonical
}

func (m *MapFS) ReadFile(path string) ([]byte, error) {
	if c, ok := m.Files[path]; ok {
		return c, nil
	}
	if target, ok := m.Links[path]; ok {
		if c, ok := m.Files[target]; ok {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", path, os.ErrNotExist)
}

func (m *MapFS) RealPath(path string) (string, error) {
	if target, ok := m.Links[path]; ok {
		return target, nil
	}
	if _, ok := m.Files[path]; ok {
		return path, nil
	}
	return "", fmt.Errorf("%s: %w", path, os.ErrNotExist)
}

// Overlay layers an in-memory buffer on top of a base filesystem. It backs
// the derived marker buffer: reads of Path see Content, everything else
// passes through.
type Overlay struct {
	Base    FS
	Path    string
	Content []byte
}

func (o *Overlay) ReadFile(path string) ([]byte, error) {
	if path == o.Path {
		return o.Content, nil
	}
	return o.Base.ReadFile(path)
}

func (o *Overlay) RealPath(path string) (string, error) {
	if path == o.Path {
		return path, nil
	}
	return o.Base.RealPath(path)
}
