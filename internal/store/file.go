package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/admissions-geo/internal/model"
)

// FileStore keeps one YAML file per URL, named by the URL's key. There is no
// index; presence is checked by file existence.
type FileStore struct {
	dir string
}

// NewFile creates a FileStore rooted at dir, creating the directory if needed.
func NewFile(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, eris.New("file store: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "file store: mkdir %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

// Path returns the file that holds the record for url.
func (s *FileStore) Path(url string) string {
	return filepath.Join(s.dir, Key(url)+".yaml")
}

func (s *FileStore) Get(_ context.Context, url string) (*model.CachedPageRecord, error) {
	data, err := os.ReadFile(s.Path(url))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "file store: read")
	}
	var rec model.CachedPageRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, eris.Wrapf(err, "file store: decode %s", filepath.Base(s.Path(url)))
	}
	return &rec, nil
}

// Put writes the record to a temp file and renames it into place, so readers
// never observe a partial record.
func (s *FileStore) Put(_ context.Context, url string, rec *model.CachedPageRecord) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return eris.Wrap(err, "file store: encode")
	}
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return eris.Wrap(err, "file store: create temp")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return eris.Wrap(err, "file store: write")
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrap(err, "file store: close")
	}
	return eris.Wrap(os.Rename(tmp.Name(), s.Path(url)), "file store: rename")
}

func (s *FileStore) Close() error { return nil }
