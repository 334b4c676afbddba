// Package store holds the small key-value stores used to remember particle
// field preferences between runs (File) or for the life of the process (Memory).
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	golog "github.com/tochemey/goakt/v3/log"
)

// Store is a string key-value store.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}

// Memory is an in-process Store.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Keys returns the stored keys in sorted order.
func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// File is a Store backed by a JSON object on disk. Every Set and Remove
// rewrites the whole file.
type File struct {
	mem    *Memory
	path   string
	logger golog.Logger
}

var _ Store = (*File)(nil)

// OpenFile loads the store at path. A missing file yields an empty store; an
// unreadable or malformed one is logged and also yields an empty store, so a
// corrupted preferences file never blocks startup.
func OpenFile(path string, logger golog.Logger) (*File, error) {
	if path == "" {
		return nil, errors.New("store: empty file path")
	}
	if logger == nil {
		logger = golog.DiscardLogger
	}
	f := &File{mem: NewMemory(), path: path, logger: logger}

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return f, nil
	case err != nil:
		logger.Warnf("store: cannot read %s, starting empty: %v", path, err)
		return f, nil
	}

	var data map[string]string
	if err := json.Unmarshal(b, &data); err != nil {
		logger.Warnf("store: %s is not a valid store file, starting empty: %v", path, err)
		return f, nil
	}
	for k, v := range data {
		f.mem.data[k] = v
	}
	logger.Debugf("store: loaded %d keys from %s", len(data), path)
	return f, nil
}

// Path returns the backing file path.
func (f *File) Path() string { return f.path }

func (f *File) Get(key string) (string, bool) {
	return f.mem.Get(key)
}

func (f *File) Set(key, value string) error {
	_ = f.mem.Set(key, value)
	return f.flush()
}

func (f *File) Remove(key string) error {
	_ = f.mem.Remove(key)
	return f.flush()
}

func (f *File) flush() error {
	f.mem.mu.RLock()
	b, err := json.MarshalIndent(f.mem.data, "", "  ")
	f.mem.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: create dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".store-*.json")
	if err != nil {
		return fmt.Errorf("store: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("store: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("store: replace %s: %w", f.path, err)
	}
	return nil
}
