// Package history keeps a local log of the transactions sent from each address, used to pick nonces for payments that
// are not yet reflected in the ledger's account state.
package history

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/ziesha-network/zwallet/internal/tx"
)

// Store persists sent transactions per source address.
type Store interface {
	List(addr string) ([]tx.Payload, error)
	Append(addr string, p tx.Payload) error
	Clear(addr string) error
}

var _ Store = &FileStore{}

// FileStore keeps one JSON file per address in a directory.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) *FileStore { return &FileStore{dir: dir} }

// List returns the history of addr, oldest first. An address without history yields an empty list.
func (s *FileStore) List(addr string) ([]tx.Payload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(addr)
}

func (s *FileStore) Append(addr string, p tx.Payload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	hist, err := s.read(addr)
	if err != nil {
		return err
	}
	return s.write(addr, append(hist, p))
}

func (s *FileStore) Clear(addr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(addr, []tx.Payload{})
}

func (s *FileStore) path(addr string) string {
	return filepath.Join(s.dir, filepath.Base(addr)+".json")
}

func (s *FileStore) read(addr string) ([]tx.Payload, error) {
	b, err := os.ReadFile(s.path(addr))
	if errors.Is(err, os.ErrNotExist) {
		return []tx.Payload{}, nil
	}
	if err != nil {
		return nil, err
	}
	var hist []tx.Payload
	if err := json.Unmarshal(b, &hist); err != nil {
		return nil, err
	}
	return hist, nil
}

// write replaces the history file atomically via a temp file and rename.
func (s *FileStore) write(addr string, hist []tx.Payload) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(hist, "", "  ")
	if err != nil {
		return err
	}

	path := s.path(addr)
	f, err := os.CreateTemp(s.dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
