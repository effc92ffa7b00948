package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/josephgoksu/smarttask/internal/analysis"
	"github.com/josephgoksu/smarttask/internal/storage"
	"github.com/josephgoksu/smarttask/internal/task"
	"github.com/josephgoksu/smarttask/internal/telemetry"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memPersistence struct {
	mu      sync.Mutex
	saved   []task.Task
	saves   int
	saveErr error
}

func (m *memPersistence) Save(_ context.Context, tasks []task.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.saved = append([]task.Task(nil), tasks...)
	return nil
}

func (m *memPersistence) Load(context.Context) []task.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]task.Task(nil), m.saved...)
}

type fakeAnalyzer struct {
	result *analysis.Result
	err    error
	calls  int
	got    []task.Task
}

func (f *fakeAnalyzer) Analyze(_ context.Context, tasks []task.Task) (*analysis.Result, error) {
	f.calls++
	f.got = tasks
	return f.result, f.err
}

var fixedNow = time.Date(2025, 11, 28, 9, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T, p *memPersistence, a Analyzer) *TaskApp {
	t.Helper()
	c := NewContext(p, a)
	c.Now = func() time.Time { return fixedNow }
	return NewTaskApp(context.Background(), c)
}

func addTask(t *testing.T, a *TaskApp, title, due string) task.Task {
	t.Helper()
	res, err := a.Dispatch(context.Background(), AddTask{Input: task.Input{Title: title, DueDate: due, Importance: "7", EstimatedHours: "2"}})
	require.NoError(t, err)
	require.NotNil(t, res.Task)
	return *res.Task
}

func TestTaskApp_LoadsPersistedTasks(t *testing.T) {
	p := &memPersistence{saved: []task.Task{{ID: "1", Title: "Existing", DueDate: task.NewDate(2025, 12, 1), Importance: 5, EstimatedHours: 1}}}
	a := newTestApp(t, p, nil)
	require.Len(t, a.Tasks(), 1)
	assert.Equal(t, "Existing", a.Tasks()[0].Title)
}

func TestTaskApp_AddTask(t *testing.T) {
	p := &memPersistence{}
	a := newTestApp(t, p, nil)

	res, err := a.Dispatch(context.Background(), AddTask{Input: task.Input{
		Title: "  Fix login bug ", DueDate: "2025-11-30", Importance: "8", EstimatedHours: "3h",
	}})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, task.ID("1764320400000"), res.Task.ID, "id from clock millis")
	assert.Equal(t, "Fix login bug", res.Task.Title)
	assert.Equal(t, 8, res.Task.Importance)
	assert.Equal(t, 3.0, res.Task.EstimatedHours)
	assert.Equal(t, []task.ID{}, res.Task.Dependencies)
	assert.Equal(t, 1, p.saves)
	assert.Equal(t, a.Tasks(), p.saved)

	second := addTask(t, a, "Write docs", "2025-12-02")
	assert.Equal(t, task.ID("1764320400001"), second.ID, "ids stay unique within a millisecond")
}

func TestTaskApp_AddTask_Invalid(t *testing.T) {
	p := &memPersistence{}
	a := newTestApp(t, p, nil)

	_, err := a.Dispatch(context.Background(), AddTask{Input: task.Input{Title: "   ", DueDate: "2025-11-30"}})
	var ve *task.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"title"}, ve.Fields)
	assert.Empty(t, a.Tasks())
	assert.Zero(t, p.saves)
}

func TestTaskApp_ToggleAndDelete(t *testing.T) {
	p := &memPersistence{}
	a := newTestApp(t, p, nil)
	first := addTask(t, a, "A", "2025-11-30")
	second := addTask(t, a, "B", "2025-12-01")

	res, err := a.Dispatch(context.Background(), ToggleComplete{ID: first.ID})
	require.NoError(t, err)
	assert.True(t, res.Task.Completed)
	assert.True(t, p.saved[0].Completed)

	res, err = a.Dispatch(context.Background(), ToggleComplete{ID: first.ID})
	require.NoError(t, err)
	assert.False(t, res.Task.Completed, "toggle twice restores")

	res, err = a.Dispatch(context.Background(), DeleteTask{ID: first.ID})
	require.NoError(t, err)
	assert.Equal(t, "A", res.Task.Title)
	require.Len(t, a.Tasks(), 1)
	assert.Equal(t, second.ID, a.Tasks()[0].ID)
	assert.Equal(t, a.Tasks(), p.saved)
}

func TestTaskApp_UnknownID(t *testing.T) {
	p := &memPersistence{}
	a := newTestApp(t, p, nil)
	addTask(t, a, "A", "2025-11-30")
	saves := p.saves

	_, err := a.Dispatch(context.Background(), ToggleComplete{ID: "nope"})
	assert.ErrorIs(t, err, task.ErrNotFound)
	_, err = a.Dispatch(context.Background(), DeleteTask{ID: "nope"})
	assert.ErrorIs(t, err, task.ErrNotFound)
	assert.Equal(t, saves, p.saves, "nothing persisted")
	assert.Len(t, a.Tasks(), 1)
}

func TestTaskApp_SaveFailureLeavesStateUnchanged(t *testing.T) {
	p := &memPersistence{}
	a := newTestApp(t, p, nil)
	first := addTask(t, a, "A", "2025-11-30")
	before := a.Tasks()

	p.saveErr = errors.New("disk full")
	_, err := a.Dispatch(context.Background(), ToggleComplete{ID: first.ID})
	require.Error(t, err)
	_, err = a.Dispatch(context.Background(), AddTask{Input: task.Input{Title: "B", DueDate: "2025-12-01"}})
	require.Error(t, err)
	_, err = a.Dispatch(context.Background(), ClearAll{Confirmed: true})
	require.Error(t, err)

	assert.Equal(t, before, a.Tasks())
}

func TestTaskApp_ClearAll(t *testing.T) {
	p := &memPersistence{}
	an := &fakeAnalyzer{result: &analysis.Result{Tasks: []analysis.ScoredTask{}, SuggestedTasks: []analysis.ScoredTask{}}}
	a := newTestApp(t, p, an)

	res, err := a.Dispatch(context.Background(), ClearAll{})
	require.NoError(t, err, "clearing an empty list needs no confirmation")
	assert.Empty(t, res.Tasks)
	assert.Zero(t, p.saves)

	addTask(t, a, "A", "2025-11-30")
	_, err = a.Dispatch(context.Background(), Analyze{})
	require.NoError(t, err)
	require.NotNil(t, a.LastAnalysis())

	_, err = a.Dispatch(context.Background(), ClearAll{})
	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.Len(t, a.Tasks(), 1)

	_, err = a.Dispatch(context.Background(), ClearAll{Confirmed: true})
	require.NoError(t, err)
	assert.Empty(t, a.Tasks())
	assert.Empty(t, p.saved)
	assert.Nil(t, a.LastAnalysis(), "results are reset with the tasks")
}

func TestTaskApp_Analyze(t *testing.T) {
	p := &memPersistence{}
	scored := &analysis.Result{Message: "Analysis complete"}
	an := &fakeAnalyzer{result: scored}
	a := newTestApp(t, p, an)

	_, err := a.Dispatch(context.Background(), Analyze{})
	assert.ErrorIs(t, err, ErrNoTasks)
	assert.Zero(t, an.calls, "no request for an empty list")

	addTask(t, a, "A", "2025-11-30")
	res, err := a.Dispatch(context.Background(), Analyze{})
	require.NoError(t, err)
	assert.Equal(t, "Analysis complete", res.Message)
	assert.Same(t, scored, res.Analysis)
	assert.Same(t, scored, a.LastAnalysis())
	assert.Equal(t, a.Tasks(), an.got)
}

func TestTaskApp_AnalyzeFailureKeepsPreviousResults(t *testing.T) {
	p := &memPersistence{}
	first := &analysis.Result{Message: "first"}
	an := &fakeAnalyzer{result: first}
	a := newTestApp(t, p, an)
	addTask(t, a, "A", "2025-11-30")

	_, err := a.Dispatch(context.Background(), Analyze{})
	require.NoError(t, err)

	before := a.Tasks()
	an.result, an.err = nil, &analysis.ServiceError{StatusCode: 500, Message: "boom"}
	_, err = a.Dispatch(context.Background(), Analyze{})
	require.EqualError(t, err, "boom")
	assert.Same(t, first, a.LastAnalysis())
	assert.Equal(t, before, a.Tasks())
}

func TestTaskApp_AnalyzeDisabled(t *testing.T) {
	a := newTestApp(t, &memPersistence{}, nil)
	addTask(t, a, "A", "2025-11-30")
	_, err := a.Dispatch(context.Background(), Analyze{})
	assert.ErrorIs(t, err, ErrAnalysisDisabled)
}

func TestTaskApp_ImportJSON(t *testing.T) {
	p := &memPersistence{}
	an := &fakeAnalyzer{result: &analysis.Result{Message: "ok"}}
	a := newTestApp(t, p, an)
	addTask(t, a, "Old", "2025-11-30")

	data := []byte(`[
		{"id": 1, "title": "Fix login bug", "due_date": "2025-11-30", "importance": 8, "estimated_hours": 3, "dependencies": []},
		{"title": "Write docs", "due_date": "2025-12-02"}
	]`)
	res, err := a.Dispatch(context.Background(), ImportJSON{Data: data, Analyze: true})
	require.NoError(t, err)
	require.Len(t, res.Tasks, 2, "import replaces the list")
	assert.Equal(t, task.ID("1"), res.Tasks[0].ID)
	assert.NotEmpty(t, res.Tasks[1].ID)
	assert.Equal(t, p.saved, res.Tasks)
	assert.Equal(t, 1, an.calls, "import triggers analysis")
	assert.Equal(t, "ok", res.Analysis.Message)
}

func TestTaskApp_ImportJSON_Invalid(t *testing.T) {
	p := &memPersistence{}
	an := &fakeAnalyzer{}
	a := newTestApp(t, p, an)
	addTask(t, a, "Keep me", "2025-11-30")
	before := a.Tasks()

	_, err := a.Dispatch(context.Background(), ImportJSON{Data: []byte(`[{"title": "x", "due_date": "2025-11-30"}, {"title": "no date"}]`), Analyze: true})
	var ve *task.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, 1, ve.Index)

	_, err = a.Dispatch(context.Background(), ImportJSON{Data: []byte(`{"title": "x"}`)})
	assert.ErrorIs(t, err, task.ErrNotArray)

	assert.Equal(t, before, a.Tasks())
	assert.Zero(t, an.calls)
}

func TestTaskApp_ImportJSON_AnalysisFailureKeepsImport(t *testing.T) {
	p := &memPersistence{}
	an := &fakeAnalyzer{err: &analysis.ServiceError{Message: analysis.GenericFailureMessage}}
	a := newTestApp(t, p, an)

	res, err := a.Dispatch(context.Background(), ImportJSON{Data: []byte(`[{"title": "x", "due_date": "2025-11-30"}]`), Analyze: true})
	require.NoError(t, err)
	assert.Len(t, a.Tasks(), 1)
	require.Error(t, res.AnalysisErr)
	assert.Equal(t, analysis.GenericFailureMessage, res.AnalysisError)
	assert.Nil(t, a.LastAnalysis())
}

func TestTaskApp_Reload(t *testing.T) {
	p := &memPersistence{}
	a := newTestApp(t, p, nil)
	addTask(t, a, "A", "2025-11-30")

	p.saved = append(p.saved, task.Task{ID: "99", Title: "From elsewhere", DueDate: task.NewDate(2025, 12, 3), Importance: 5, EstimatedHours: 1, Dependencies: []task.ID{}})
	saves := p.saves

	res, err := a.Dispatch(context.Background(), Reload{})
	require.NoError(t, err)
	assert.Len(t, res.Tasks, 2)
	assert.Len(t, a.Tasks(), 2)
	assert.Equal(t, saves, p.saves, "reload never writes")
}

// newFileApp wires the app to a json file slot on an in-memory filesystem.
func newFileApp(t *testing.T) (*TaskApp, afero.Fs, string) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	slot, err := storage.NewFileSlot(fsys, "/data")
	require.NoError(t, err)
	c := NewContext(storage.NewAdapter(slot, nil, nil), nil)
	c.Now = func() time.Time { return fixedNow }
	return NewTaskApp(context.Background(), c), fsys, slot.Path(storage.TasksKey)
}

func TestTaskApp_ReloadKeepsTasksOnUnreadableSlot(t *testing.T) {
	a, fsys, path := newFileApp(t)
	for _, title := range []string{"A", "B", "C"} {
		addTask(t, a, title, "2025-11-30")
	}

	// Hand edit without updating the checksum sidecar.
	data, err := afero.ReadFile(fsys, path)
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fsys, path, append(data, '\n'), 0o644))

	_, err = a.Dispatch(context.Background(), Reload{})
	require.ErrorIs(t, err, ErrReloadFailed)
	assert.Len(t, a.Tasks(), 3, "live tasks survive a bad read")

	addTask(t, a, "D", "2025-12-01")
	slot, err := storage.NewFileSlot(fsys, "/data")
	require.NoError(t, err)
	assert.Len(t, storage.NewAdapter(slot, nil, nil).Load(context.Background()), 4)
}

func TestTaskApp_LeadingZeroIDsPersist(t *testing.T) {
	a, fsys, path := newFileApp(t)

	res, err := a.Dispatch(context.Background(), ImportJSON{Data: []byte(`[
		{"id": "007", "title": "Bond", "due_date": "2025-11-30"},
		{"id": 8, "title": "Next", "due_date": "2025-12-01", "dependencies": ["007"]}
	]`)})
	require.NoError(t, err)
	require.Len(t, res.Tasks, 2)

	res, err = a.Dispatch(context.Background(), AddTask{Input: task.Input{Title: "Deps", DueDate: "2025-12-02", Dependencies: []string{"01"}}})
	require.NoError(t, err)
	assert.Len(t, res.Tasks, 3)

	data, err := afero.ReadFile(fsys, path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id":"007"`)

	slot, err := storage.NewFileSlot(fsys, "/data")
	require.NoError(t, err)
	loaded := storage.NewAdapter(slot, nil, nil).Load(context.Background())
	require.Len(t, loaded, 3)
	assert.Equal(t, task.ID("007"), loaded[0].ID)
	assert.Equal(t, []task.ID{"007"}, loaded[1].Dependencies)
	assert.Equal(t, []task.ID{"01"}, loaded[2].Dependencies)
}

type trackedEvent struct {
	name  string
	props telemetry.Properties
}

type recordingTelemetry struct{ events []trackedEvent }

func (r *recordingTelemetry) Track(name string, props telemetry.Properties) {
	r.events = append(r.events, trackedEvent{name, props})
}

func (r *recordingTelemetry) Close() error { return nil }

func TestTaskApp_TracksCommands(t *testing.T) {
	rec := &recordingTelemetry{}
	c := NewContext(&memPersistence{}, nil)
	c.Now = func() time.Time { return fixedNow }
	c.Telemetry = rec
	a := NewTaskApp(context.Background(), c)

	addTask(t, a, "A", "2025-11-30")
	_, err := a.Dispatch(context.Background(), DeleteTask{ID: "missing"})
	require.Error(t, err)

	require.Len(t, rec.events, 3)
	assert.Equal(t, telemetry.EventCommandDispatched, rec.events[0].name)
	assert.Equal(t, "add_task", rec.events[0].props["command"])
	assert.Equal(t, false, rec.events[1].props["success"])
	assert.Equal(t, telemetry.EventCommandError, rec.events[2].name)
	assert.Equal(t, "not_found", rec.events[2].props["kind"])
}

func TestTaskApp_Subscribe(t *testing.T) {
	a := newTestApp(t, &memPersistence{}, nil)

	var events []Event
	unsubscribe := a.Subscribe(func(e Event) { events = append(events, e) })

	addTask(t, a, "A", "2025-11-30")
	require.Len(t, events, 1)
	assert.Equal(t, EventTasksChanged, events[0].Kind)
	assert.Len(t, events[0].Tasks, 1)

	_, _ = a.Dispatch(context.Background(), ToggleComplete{ID: "missing"})
	assert.Len(t, events, 1, "failed commands do not notify")

	unsubscribe()
	addTask(t, a, "B", "2025-11-30")
	assert.Len(t, events, 1)
}

func TestTaskApp_ObserverMayReadState(t *testing.T) {
	a := newTestApp(t, &memPersistence{}, nil)
	var seen int
	a.Subscribe(func(Event) { seen = len(a.Tasks()) })

	addTask(t, a, "A", "2025-11-30")
	assert.Equal(t, 1, seen)
}

func TestCommandName(t *testing.T) {
	assert.Equal(t, "add_task", CommandName(AddTask{}))
	assert.Equal(t, "import_json", CommandName(ImportJSON{}))
	assert.Equal(t, "reload", CommandName(Reload{}))
}
