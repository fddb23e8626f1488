package cart

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned by a Storage when no state exists for the key.
var ErrNotFound = errors.New("cart state not found")

// Storage is the persistence port the engine writes through. The
// browser original kept one record per visitor in local storage; any
// key-value-ish backend can stand in.
type Storage interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}

// FileStorage keeps one JSON document per session key under a
// directory.
type FileStorage struct {
	dir string
}

func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStorage{dir: dir}, nil
}

func (s *FileStorage) Load(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *FileStorage) Save(key string, data []byte) error {
	return os.WriteFile(s.path(key), data, 0o644)
}

// path maps a session key to a file name, dropping anything that could
// escape the directory.
func (s *FileStorage) path(key string) string {
	var b strings.Builder
	for _, r := range key {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	name := b.String()
	if name == "" {
		name = "default"
	}
	return filepath.Join(s.dir, name+".json")
}
