package session

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenStore is the durable client-local credential storage: one token,
// keyed singly, no multi-account support.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

type FileTokenStore struct {
	path string
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (fs *FileTokenStore) Load() (string, error) {
	raw, err := ioutil.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(raw)), nil
}

func (fs *FileTokenStore) Save(token string) error {
	err := os.MkdirAll(filepath.Dir(fs.path), 0700)
	if err != nil {
		return err
	}

	return ioutil.WriteFile(fs.path, []byte(token), 0600)
}

func (fs *FileTokenStore) Clear() error {
	err := os.Remove(fs.path)
	if os.IsNotExist(err) {
		return nil
	}

	return err
}

// MemoryTokenStore keeps the token in memory only; used in tests.
type MemoryTokenStore struct {
	mu    *sync.Mutex
	token string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{mu: &sync.Mutex{}}
}

func (ms *MemoryTokenStore) Load() (string, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.token, nil
}

func (ms *MemoryTokenStore) Save(token string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.token = token
	return nil
}

func (ms *MemoryTokenStore) Clear() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.token = ""
	return nil
}
