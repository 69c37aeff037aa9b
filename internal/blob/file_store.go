package blob

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore keeps blobs as plain files under a single directory. Stored
// names are "<uuid-hex>_<base-name>", so concurrent uploads of files with
// the same name never collide.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns the store.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("blob: empty store directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("blob: create store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Save(name string, r io.Reader) (string, error) {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "file"
	}
	unique := strings.ReplaceAll(uuid.NewString(), "-", "") + "_" + base
	full := filepath.Join(s.dir, unique)

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("blob: create %s: %w", unique, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(full)
		return "", fmt.Errorf("blob: write %s: %w", unique, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(full)
		return "", fmt.Errorf("blob: close %s: %w", unique, err)
	}
	return unique, nil
}

func (s *FileStore) Open(path string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.dir, filepath.Base(path)))
}

func (s *FileStore) Exists(path string) bool {
	_, err := os.Stat(filepath.Join(s.dir, filepath.Base(path)))
	return err == nil
}

func (s *FileStore) Delete(path string) error {
	return os.Remove(filepath.Join(s.dir, filepath.Base(path)))
}

var _ Store = (*FileStore)(nil)
