package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"edu_portal/internal/model"

	"github.com/joho/godotenv"
)

// FileStore keeps the session in a dotenv-formatted file
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load() (Session, error) {
	values, err := godotenv.Read(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, ErrNoSession
		}
		return Session{}, fmt.Errorf("failed to read session file: %w", err)
	}
	token := values[TokenKey]
	if token == "" {
		return Session{}, ErrNoSession
	}
	return Session{Token: token, Role: model.Role(values[RoleKey])}, nil
}

func (f *FileStore) Save(s Session) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	values := map[string]string{TokenKey: s.Token, RoleKey: string(s.Role)}
	if err := godotenv.Write(values, f.path); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	// the file holds a credential
	return os.Chmod(f.path, 0o600)
}

func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// MemoryStore keeps the session for the life of the process
type MemoryStore struct {
	mu sync.Mutex
	s  *Session
}

func (m *MemoryStore) Load() (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.s == nil {
		return Session{}, ErrNoSession
	}
	return *m.s, nil
}

func (m *MemoryStore) Save(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = &s
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = nil
	return nil
}
