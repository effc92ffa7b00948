// Package storage persists the task list in a single local key-value slot.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// TasksKey is the slot key holding the serialized task list.
const TasksKey = "smartTaskAnalyzer_tasks"

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMySQL  = "mysql"
)

var (
	// ErrCorrupt is returned by a slot whose stored value failed an integrity check.
	ErrCorrupt = errors.New("stored value is corrupt or tampered")
	// ErrUnsupportedBackend is returned by Open for an unknown backend name.
	ErrUnsupportedBackend = errors.New("unsupported storage backend")
)

// Slot is a minimal key-value store. Get reports found=false for an absent key.
type Slot interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Options selects and configures a slot backend.
type Options struct {
	Backend string // file (default), sqlite or mysql
	Dir     string // data directory for file and sqlite backends
	Format  string // json (default), yaml or toml; file backend only
	DSN     string // mysql data source name
}

// Open builds the slot described by opts.
func Open(opts Options) (Slot, error) {
	switch strings.ToLower(opts.Backend) {
	case "", BackendFile:
		codec, err := CodecFor(opts.Format)
		if err != nil {
			return nil, err
		}
		slot, err := NewFileSlot(nil, opts.Dir)
		if err != nil {
			return nil, err
		}
		return slot.WithExtension(codec.Name()), nil
	case BackendSQLite:
		return NewSQLiteSlot(opts.Dir)
	case BackendMySQL:
		return NewMySQLSlot(opts.DSN)
	default:
		return nil, fmt.Errorf("%w: %s (supported: file, sqlite, mysql)", ErrUnsupportedBackend, opts.Backend)
	}
}
