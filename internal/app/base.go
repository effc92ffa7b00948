// Package app provides the application layer that orchestrates business logic.
// This layer sits between the CLI, TUI and MCP handlers and the service layer,
// ensuring a single source of truth for all operations. Every surface is a thin
// adapter that builds a Command and hands it to TaskApp.Dispatch.
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/josephgoksu/smarttask/internal/analysis"
	"github.com/josephgoksu/smarttask/internal/task"
	"github.com/josephgoksu/smarttask/internal/telemetry"
)

// Persistence saves and loads the whole task list. storage.Adapter implements it.
type Persistence interface {
	Save(ctx context.Context, tasks []task.Task) error
	Load(ctx context.Context) []task.Task
}

// StrictLoader is implemented by persistence that reports read failures instead of
// falling back to an empty list. Reload uses it to keep the live store on a bad read.
type StrictLoader interface {
	ReadTasks(ctx context.Context) ([]task.Task, error)
}

// Analyzer scores a task list. analysis.Client implements it.
type Analyzer interface {
	Analyze(ctx context.Context, tasks []task.Task) (*analysis.Result, error)
}

// Context holds shared dependencies for all app services.
type Context struct {
	Persistence Persistence
	Analyzer    Analyzer // nil disables analysis
	IDs         *task.IDGenerator
	Now         func() time.Time
	Logger      *slog.Logger
	Telemetry   telemetry.Client
}

// NewContext creates an app context with standard defaults for the optional fields.
func NewContext(p Persistence, a Analyzer) *Context {
	return &Context{Persistence: p, Analyzer: a}
}

func (c *Context) withDefaults() *Context {
	cp := *c
	if cp.Now == nil {
		cp.Now = time.Now
	}
	if cp.IDs == nil {
		cp.IDs = task.NewIDGenerator(cp.Now)
	}
	if cp.Logger == nil {
		cp.Logger = slog.Default()
	}
	if cp.Telemetry == nil {
		cp.Telemetry = telemetry.NewNoopClient()
	}
	return &cp
}
