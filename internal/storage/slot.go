package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	ErrNotFound       = errors.New("storage: not found")
	ErrUnknownBackend = errors.New("storage: unknown backend")
)

// DefaultKey is the fixed slot holding the serialized task collection.
const DefaultKey = "todo-app:v1"

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

const sqliteFileName = "todo.db"

// Slot is a durable key-value store. Set overwrites the whole value atomically.
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Open returns the slot backend registered under name, rooted at dir.
func Open(backend, dir string) (Slot, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		return NewFileSlot(dir)
	case BackendSQLite:
		return OpenSQLiteSlot(filepath.Join(dir, sqliteFileName))
	case BackendMemory:
		return NewMemorySlot(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
