// Package storage is the object-store port product images go through:
// a binary file plus a path in, a publicly resolvable URL out.
package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

type ObjectStore interface {
	Upload(r io.Reader, path string) (string, error)
	Delete(path string) error
}

// DiskStore writes objects under a base directory and resolves them to
// URLs below a public base path served by the HTTP layer.
type DiskStore struct {
	baseDir string
	baseURL string
}

func NewDiskStore(baseDir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *DiskStore) Upload(r io.Reader, path string) (string, error) {
	full := filepath.Join(s.baseDir, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(full)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(full)
		return "", err
	}
	return s.baseURL + "/" + path, nil
}

func (s *DiskStore) Delete(path string) error {
	return os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(path)))
}
