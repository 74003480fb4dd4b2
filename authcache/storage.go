package authcache

import (
	"os"
	"sync"

	"github.com/pkg/errors"
)

// Storage is the persistence contract for the cache: Load is called once at
// construction, Store on every mutation, Clear on sign-out. Load returns
// (nil, nil) when nothing is stored.
type Storage interface {
	Load() ([]byte, error)
	Store(data []byte) error
	Clear() error
}

// FileStorage persists the cache as a mode-0600 file.
type FileStorage struct {
	path string
}

var _ Storage = (*FileStorage)(nil)

func NewFileStorage(path string) (*FileStorage, error) {
	if path == "" {
		return nil, errors.New("[NewFileStorage] path is required")
	}
	return &FileStorage{path: path}, nil
}

func (f *FileStorage) Load() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "[FileStorage.Load]")
	}
	return data, nil
}

func (f *FileStorage) Store(data []byte) error {
	return errors.Wrap(os.WriteFile(f.path, data, 0o600), "[FileStorage.Store]")
}

func (f *FileStorage) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[FileStorage.Clear]")
	}
	return nil
}

// MemoryStorage keeps the stored bytes in memory. Used in tests and as a
// throwaway store for ephemeral processes.
type MemoryStorage struct {
	data []byte
	lock sync.Mutex
}

var _ Storage = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Load() ([]byte, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.data == nil {
		return nil, nil
	}
	data := make([]byte, len(m.data))
	copy(data, m.data)
	return data, nil
}

func (m *MemoryStorage) Store(data []byte) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.data = make([]byte, len(data))
	copy(m.data, data)
	return nil
}

func (m *MemoryStorage) Clear() error {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.data = nil
	return nil
}
