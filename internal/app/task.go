package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/josephgoksu/smarttask/internal/analysis"
	"github.com/josephgoksu/smarttask/internal/task"
	"github.com/josephgoksu/smarttask/internal/telemetry"
)

var (
	// ErrNoTasks is returned when analysis is requested for an empty store.
	ErrNoTasks = analysis.ErrNoTasks
	// ErrNotConfirmed is returned by ClearAll without confirmation.
	ErrNotConfirmed = errors.New("clearing all tasks requires confirmation")
	// ErrAnalysisDisabled is returned by Analyze when no analyzer is configured.
	ErrAnalysisDisabled = errors.New("analysis service is not configured")
	// ErrReloadFailed means the stored tasks could not be read back; the live list is kept.
	ErrReloadFailed = errors.New("stored tasks could not be reloaded")
)

// TaskResult contains the result of a dispatched command.
// This is the canonical response type used by the CLI, the TUI and MCP.
type TaskResult struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message,omitempty"`
	Task     *task.Task       `json:"task,omitempty"`
	Tasks    []task.Task      `json:"tasks"`
	Analysis *analysis.Result `json:"analysis,omitempty"`

	// AnalysisErr is set when ImportJSON's follow-up analysis failed; the import stands.
	AnalysisErr   error  `json:"-"`
	AnalysisError string `json:"analysis_error,omitempty"`
}

// EventKind says what changed.
type EventKind int

const (
	EventTasksChanged EventKind = iota + 1
	EventAnalyzed
)

// Event is delivered to observers after the change is committed.
type Event struct {
	Kind     EventKind
	Tasks    []task.Task
	Analysis *analysis.Result
}

// Observer is notified after every committed change. It runs on the dispatching
// goroutine, outside the app lock.
type Observer func(Event)

// TaskApp owns the task store and the last analysis result.
// This is THE implementation - CLI, TUI and MCP all call Dispatch.
type TaskApp struct {
	ctx *Context
	log *slog.Logger

	mu        sync.Mutex
	store     *task.Store
	last      *analysis.Result
	observers map[int]Observer
	nextObs   int
}

// NewTaskApp creates the app and loads the persisted tasks.
func NewTaskApp(ctx context.Context, c *Context) *TaskApp {
	c = c.withDefaults()
	a := &TaskApp{
		ctx:       c,
		log:       c.Logger.With("component", "app"),
		store:     task.NewStore(nil),
		observers: make(map[int]Observer),
	}
	if c.Persistence != nil {
		a.store = task.NewStore(c.Persistence.Load(ctx))
	}
	return a
}

// Subscribe registers an observer and returns a function that removes it.
func (a *TaskApp) Subscribe(o Observer) (unsubscribe func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.nextObs
	a.nextObs++
	a.observers[id] = o
	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		delete(a.observers, id)
	}
}

// Tasks returns a snapshot of the store.
func (a *TaskApp) Tasks() []task.Task {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.List()
}

// LastAnalysis returns the most recent successful analysis, or nil.
func (a *TaskApp) LastAnalysis() *analysis.Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}

// Today returns the app clock's current time, used for urgency labels.
func (a *TaskApp) Today() time.Time { return a.ctx.Now() }

// Dispatch applies one command. Validation, persistence and service errors are
// returned with the state left exactly as it was.
func (a *TaskApp) Dispatch(ctx context.Context, cmd Command) (*TaskResult, error) {
	start := time.Now()
	res, err := a.dispatch(ctx, cmd)

	name := CommandName(cmd)
	if err != nil {
		a.log.Debug("command failed", "command", name, "error", err)
	} else {
		a.log.Debug("command applied", "command", name, "duration", time.Since(start))
	}
	a.ctx.Telemetry.Track(telemetry.EventCommandDispatched, telemetry.Properties{
		"command":     name,
		"success":     err == nil,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	if err != nil {
		a.ctx.Telemetry.Track(telemetry.EventCommandError, telemetry.Properties{
			"command": name,
			"kind":    errorKind(err),
		})
	}
	return res, err
}

func (a *TaskApp) dispatch(ctx context.Context, cmd Command) (*TaskResult, error) {
	switch c := cmd.(type) {
	case AddTask:
		return a.addTask(ctx, c)
	case ToggleComplete:
		return a.toggle(ctx, c)
	case DeleteTask:
		return a.delete(ctx, c)
	case ClearAll:
		return a.clear(ctx, c)
	case ImportJSON:
		return a.importJSON(ctx, c)
	case Analyze:
		return a.analyze(ctx)
	case Reload:
		return a.reload(ctx)
	default:
		return nil, fmt.Errorf("unknown command %T", cmd)
	}
}

func (a *TaskApp) addTask(ctx context.Context, c AddTask) (*TaskResult, error) {
	t, err := task.FromInput(a.ctx.IDs.Next(), c.Input)
	if err != nil {
		return nil, err
	}
	tasks, err := a.mutate(ctx, func(s *task.Store) (bool, error) {
		return true, s.Add(t)
	})
	if err != nil {
		return nil, err
	}
	return &TaskResult{Success: true, Message: fmt.Sprintf("Task %q added", t.Title), Task: &t, Tasks: tasks}, nil
}

func (a *TaskApp) toggle(ctx context.Context, c ToggleComplete) (*TaskResult, error) {
	var updated task.Task
	tasks, err := a.mutate(ctx, func(s *task.Store) (bool, error) {
		if !s.ToggleComplete(c.ID) {
			return false, fmt.Errorf("%w: %s", task.ErrNotFound, c.ID)
		}
		updated, _ = s.Get(c.ID)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	state := "pending"
	if updated.Completed {
		state = "completed"
	}
	return &TaskResult{Success: true, Message: fmt.Sprintf("Task %q marked %s", updated.Title, state), Task: &updated, Tasks: tasks}, nil
}

func (a *TaskApp) delete(ctx context.Context, c DeleteTask) (*TaskResult, error) {
	var removed task.Task
	tasks, err := a.mutate(ctx, func(s *task.Store) (bool, error) {
		t, ok := s.Get(c.ID)
		if !ok {
			return false, fmt.Errorf("%w: %s", task.ErrNotFound, c.ID)
		}
		removed = t
		s.Remove(c.ID)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return &TaskResult{Success: true, Message: fmt.Sprintf("Task %q deleted", removed.Title), Task: &removed, Tasks: tasks}, nil
}

func (a *TaskApp) clear(ctx context.Context, c ClearAll) (*TaskResult, error) {
	a.mu.Lock()
	empty := a.store.Len() == 0
	a.mu.Unlock()
	if empty {
		return &TaskResult{Success: true, Message: "No tasks to clear", Tasks: []task.Task{}}, nil
	}
	if !c.Confirmed {
		return nil, ErrNotConfirmed
	}

	tasks, err := a.mutate(ctx, func(s *task.Store) (bool, error) {
		s.Clear()
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	a.mu.Lock()
	a.last = nil
	a.mu.Unlock()
	a.notify(Event{Kind: EventAnalyzed, Tasks: tasks})
	return &TaskResult{Success: true, Message: "All tasks cleared", Tasks: tasks}, nil
}

func (a *TaskApp) importJSON(ctx context.Context, c ImportJSON) (*TaskResult, error) {
	imported, err := a.ctx.IDs.Import(c.Data)
	if err != nil {
		return nil, err
	}
	tasks, err := a.mutate(ctx, func(s *task.Store) (bool, error) {
		return true, s.ReplaceAll(imported)
	})
	if err != nil {
		return nil, err
	}

	res := &TaskResult{Success: true, Message: fmt.Sprintf("Imported %d tasks", len(tasks)), Tasks: tasks}
	if !c.Analyze || len(tasks) == 0 || a.ctx.Analyzer == nil {
		return res, nil
	}
	ar, err := a.analyze(ctx)
	if err != nil {
		res.AnalysisErr = err
		res.AnalysisError = err.Error()
		return res, nil
	}
	res.Analysis = ar.Analysis
	return res, nil
}

func (a *TaskApp) analyze(ctx context.Context) (*TaskResult, error) {
	if a.ctx.Analyzer == nil {
		return nil, ErrAnalysisDisabled
	}
	tasks := a.Tasks()
	if len(tasks) == 0 {
		return nil, ErrNoTasks
	}

	// The lock is not held across the request: the last response to arrive wins.
	result, err := a.ctx.Analyzer.Analyze(ctx, tasks)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.last = result
	a.mu.Unlock()
	a.notify(Event{Kind: EventAnalyzed, Tasks: tasks, Analysis: result})

	msg := result.Message
	if msg == "" {
		msg = fmt.Sprintf("Analyzed %d tasks", len(tasks))
	}
	return &TaskResult{Success: true, Message: msg, Tasks: tasks, Analysis: result}, nil
}

func (a *TaskApp) reload(ctx context.Context) (*TaskResult, error) {
	if a.ctx.Persistence == nil {
		return &TaskResult{Success: true, Tasks: a.Tasks()}, nil
	}
	var loaded []task.Task
	if sl, ok := a.ctx.Persistence.(StrictLoader); ok {
		tasks, err := sl.ReadTasks(ctx)
		if err != nil {
			a.log.Warn("reload failed, keeping current tasks", "error", err)
			return nil, fmt.Errorf("%w: %w", ErrReloadFailed, err)
		}
		loaded = tasks
	} else {
		loaded = a.ctx.Persistence.Load(ctx)
	}
	a.mu.Lock()
	a.store = task.NewStore(loaded)
	tasks := a.store.List()
	a.mu.Unlock()
	a.notify(Event{Kind: EventTasksChanged, Tasks: tasks})
	return &TaskResult{Success: true, Message: fmt.Sprintf("Loaded %d tasks", len(tasks)), Tasks: tasks}, nil
}

// mutate applies fn to a copy of the store, persists the copy and only then swaps it
// in. fn returning changed=false or an error leaves everything untouched.
func (a *TaskApp) mutate(ctx context.Context, fn func(*task.Store) (changed bool, err error)) ([]task.Task, error) {
	a.mu.Lock()
	next := a.store.Clone()
	changed, err := fn(next)
	if err != nil || !changed {
		a.mu.Unlock()
		return nil, err
	}
	tasks := next.List()
	if a.ctx.Persistence != nil {
		if err := a.ctx.Persistence.Save(ctx, tasks); err != nil {
			a.mu.Unlock()
			a.log.Error("save failed, keeping previous state", "error", err)
			return nil, err
		}
	}
	a.store = next
	a.mu.Unlock()

	a.notify(Event{Kind: EventTasksChanged, Tasks: tasks})
	return tasks, nil
}

func (a *TaskApp) notify(e Event) {
	a.mu.Lock()
	observers := make([]Observer, 0, len(a.observers))
	for _, o := range a.observers {
		observers = append(observers, o)
	}
	a.mu.Unlock()
	for _, o := range observers {
		o(e)
	}
}

// errorKind classifies err for telemetry without exposing its text.
func errorKind(err error) string {
	var se *analysis.ServiceError
	switch {
	case task.IsValidation(err), errors.Is(err, task.ErrDuplicateID):
		return "validation"
	case errors.Is(err, task.ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrNotConfirmed):
		return "not_confirmed"
	case errors.Is(err, ErrNoTasks), errors.Is(err, ErrAnalysisDisabled):
		return "precondition"
	case errors.Is(err, ErrReloadFailed):
		return "reload"
	case errors.As(err, &se):
		return "service"
	}
	return "other"
}
