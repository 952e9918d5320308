// Package archive opens a trace archive (a zip file containing *.trace and
// *.network NDJSON logs plus a resources/ subtree keyed by content hash)
// and exposes it as a simple keyed blob store. It is the mirror image of
// the zip writer a recorder uses to produce these archives: the same entry
// layout (N-trace.trace, N-trace.network, resources/<sha1>), read back
// instead of written.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
)

// Store is an opened trace archive. It must be closed on every exit path.
type Store struct {
	reader  *zip.ReadCloser
	byName  map[string]*zip.File
	names   []string
}

// Open opens the zip archive at path. The returned Store owns the
// underlying file handle; callers must call Close when done, including on
// error paths elsewhere in the pipeline.
func Open(path string) (*Store, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("archive: open %q: %w", path, err)
	}
	if len(r.File) == 0 {
		r.Close()
		return nil, fmt.Errorf("archive: %q contains no entries", path)
	}

	s := &Store{
		reader: r,
		byName: make(map[string]*zip.File, len(r.File)),
		names:  make([]string, 0, len(r.File)),
	}
	for _, f := range r.File {
		s.byName[f.Name] = f
		s.names = append(s.names, f.Name)
	}
	return s, nil
}

// Names returns every entry name in the archive, in no particular order.
func (s *Store) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Has reports whether name exists in the archive.
func (s *Store) Has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Read returns the full decompressed contents of the named entry.
func (s *Store) Read(name string) ([]byte, error) {
	f, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("archive: no entry %q", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("archive: open entry %q: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("archive: read entry %q: %w", name, err)
	}
	return data, nil
}

// Close releases the underlying file handle.
func (s *Store) Close() error {
	return s.reader.Close()
}
