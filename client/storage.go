package client

import (
	"os"
	"path/filepath"
	"strings"
)

// TokenStorage is the durable home of the bearer token, the one piece of
// client state that survives restarts.
type TokenStorage interface {
	Read() string
	Write(token string) error
	Clear() error
}

// FileTokenStorage keeps the token in a file under the user config dir.
type FileTokenStorage struct {
	path string
}

func NewFileTokenStorage(path string) (*FileTokenStorage, error) {
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(configDir, "reactivities", "token")
	}
	return &FileTokenStorage{path: path}, nil
}

func (s *FileTokenStorage) Read() string {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

func (s *FileTokenStorage) Write(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

func (s *FileTokenStorage) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MemoryTokenStorage holds the token in memory. Used by tests and as the
// fallback when no durable storage is configured.
type MemoryTokenStorage struct {
	token string
}

func NewMemoryTokenStorage() *MemoryTokenStorage {
	return &MemoryTokenStorage{}
}

func (s *MemoryTokenStorage) Read() string {
	return s.token
}

func (s *MemoryTokenStorage) Write(token string) error {
	s.token = token
	return nil
}

func (s *MemoryTokenStorage) Clear() error {
	s.token = ""
	return nil
}
