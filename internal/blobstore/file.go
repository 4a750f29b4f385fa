package blobstore

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists each dataset as <dir>/<dataset>.json.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store rooted at dir. The directory is
// created on first write, not here — a read-only inspection of a fresh
// install must not create state.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Get reads a dataset document. A missing file returns (nil, nil).
func (s *FileStore) Get(dataset string) ([]byte, error) {
	data, err := os.ReadFile(s.path(dataset))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading dataset %q: %w", dataset, err)
	}
	return data, nil
}

// Put writes a dataset document. The write goes through a temp file and
// rename so a crash mid-write cannot leave a truncated document behind.
func (s *FileStore) Put(dataset string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	path := s.path(dataset)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing dataset %q: %w", dataset, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing dataset %q: %w", dataset, err)
	}
	return nil
}

func (s *FileStore) path(dataset string) string {
	return filepath.Join(s.dir, dataset+".json")
}
