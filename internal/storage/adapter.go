package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/josephgoksu/smarttask/internal/task"
)

// Adapter saves and loads the whole task list under TasksKey.
type Adapter struct {
	slot   Slot
	codec  Codec
	logger *slog.Logger
}

// NewAdapter wraps slot. A nil codec means json; a nil logger means slog.Default().
func NewAdapter(slot Slot, codec Codec, logger *slog.Logger) *Adapter {
	if codec == nil {
		codec = jsonCodec{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{slot: slot, codec: codec, logger: logger.With("component", "storage")}
}

// OpenAdapter opens the configured slot and wraps it.
func OpenAdapter(opts Options, logger *slog.Logger) (*Adapter, error) {
	codec := Codec(jsonCodec{})
	if opts.Backend == "" || opts.Backend == BackendFile {
		c, err := CodecFor(opts.Format)
		if err != nil {
			return nil, err
		}
		codec = c
	}
	slot, err := Open(opts)
	if err != nil {
		return nil, err
	}
	return NewAdapter(slot, codec, logger), nil
}

// Save serializes tasks and overwrites the slot.
func (a *Adapter) Save(ctx context.Context, tasks []task.Task) error {
	data, err := a.codec.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("failed to serialize tasks: %w", err)
	}
	if err := a.slot.Put(ctx, TasksKey, data); err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	a.logger.Debug("tasks saved", "count", len(tasks), "bytes", len(data))
	return nil
}

// Load returns the stored tasks. An absent, unreadable, tampered or undecodable slot
// yields an empty list; the problem is logged, never returned.
func (a *Adapter) Load(ctx context.Context) []task.Task {
	tasks, err := a.ReadTasks(ctx)
	if err != nil {
		a.logger.Warn("stored tasks are unreadable, starting empty", "error", err)
		return []task.Task{}
	}
	return tasks
}

// ReadTasks is Load without the fallback: an absent slot is an empty list, but a read,
// integrity or decode failure is returned so callers holding good state can keep it.
func (a *Adapter) ReadTasks(ctx context.Context) ([]task.Task, error) {
	data, found, err := a.slot.Get(ctx, TasksKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}
	if !found || len(data) == 0 {
		return []task.Task{}, nil
	}
	tasks, err := a.codec.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	for i := range tasks {
		if tasks[i].Dependencies == nil {
			tasks[i].Dependencies = []task.ID{}
		}
	}
	return tasks, nil
}

// WatchPath returns the file backing the slot, or "" when the backend is not file based.
func (a *Adapter) WatchPath() string {
	if fs, ok := a.slot.(*FileSlot); ok {
		return fs.Path(TasksKey)
	}
	return ""
}

// Close releases the slot.
func (a *Adapter) Close() error { return a.slot.Close() }
