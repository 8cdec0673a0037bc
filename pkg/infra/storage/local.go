package storage

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
)

// Local stores blobs as files in a directory.
type Local struct {
	dir string
}

// NewLocal creates the directory if needed.
func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, goerr.Wrap(err, "failed to create destination directory", goerr.V("dir", dir))
	}
	return &Local{dir: dir}, nil
}

// Put writes one file, overwriting any existing file with the same name.
func (l *Local) Put(ctx context.Context, name, contentType string, data []byte) error {
	dest := filepath.Join(l.dir, name)
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return goerr.Wrap(err, "failed to write file", goerr.V("path", dest))
	}
	return nil
}
