package trace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/vmihailenco/msgpack/v5"
)

// Store persists trace records, one msgpack file per record, atomically
// renamed into place so readers never observe partial writes.
type Store struct {
	dir string
	seq atomic.Uint64
}

// OpenStore initializes a record store under dir, creating it if needed.
func OpenStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to open trace store: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Append writes one record.
func (s *Store) Append(rec *Record) error {
	rec.Schema = recordSchemaVersion
	rec.Seq = s.seq.Add(1)

	f, err := os.CreateTemp(s.dir, "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(rec); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	final := filepath.Join(s.dir, fmt.Sprintf("%016d-%d.mp", rec.Seq, rec.Time.UnixNano()))
	return os.Rename(tmp, final)
}

// ReadAll decodes every record in the store, in sequence order.
func (s *Store) ReadAll() ([]Record, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".mp") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	out := make([]Record, 0, len(names))
	for _, name := range names {
		f, err := os.Open(filepath.Join(s.dir, name))
		if err != nil {
			return nil, err
		}
		var rec Record
		err = msgpack.NewDecoder(f).Decode(&rec)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("corrupt trace record %s: %w", name, err)
		}
		if rec.Schema != recordSchemaVersion {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}
