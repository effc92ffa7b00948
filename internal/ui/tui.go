package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/josephgoksu/smarttask/internal/analysis"
	"github.com/josephgoksu/smarttask/internal/app"
	"github.com/josephgoksu/smarttask/internal/storage"
	"github.com/josephgoksu/smarttask/internal/task"
)

type tuiMode int

const (
	modeBrowse tuiMode = iota
	modeAdd
	modeImport
	modeConfirmDelete
	modeConfirmClear
)

// Form field order of the add form.
const (
	fieldTitle = iota
	fieldDue
	fieldImportance
	fieldHours
	fieldDeps
	fieldCount
)

type dispatchedMsg struct {
	cmd app.Command
	res *app.TaskResult
	err error
}

type reloadMsg struct{}

// TaskModel is the interactive task manager: the list, the add form, and the analysis
// results side by side.
type TaskModel struct {
	ctx context.Context
	app *app.TaskApp

	mode    tuiMode
	cursor  int
	tasks   []task.Task
	results *analysis.Result
	pending task.Task // delete target, fixed when the prompt opens

	form      []textinput.Model
	focus     int
	pathInput textinput.Model
	spinner   spinner.Model
	analyzing bool
	status    string
	err       error
	width     int
	quitting  bool
}

// NewTaskModel builds the model from the app's current state.
func NewTaskModel(ctx context.Context, a *app.TaskApp) TaskModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = StylePrimary

	path := textinput.New()
	path.Placeholder = "tasks.json"
	path.CharLimit = 512
	path.Width = 50

	return TaskModel{
		ctx:       ctx,
		app:       a,
		tasks:     a.Tasks(),
		results:   a.LastAnalysis(),
		form:      newAddForm(),
		pathInput: path,
		spinner:   s,
		width:     80,
	}
}

func newAddForm() []textinput.Model {
	specs := []struct {
		placeholder string
		limit       int
	}{
		fieldTitle:      {"Title", 200},
		fieldDue:        {"Due date (YYYY-MM-DD)", 10},
		fieldImportance: {"Importance 1-10 (default 5)", 3},
		fieldHours:      {"Estimated hours (default 1)", 5},
		fieldDeps:       {"Dependencies (comma separated ids)", 200},
	}
	form := make([]textinput.Model, fieldCount)
	for i, sp := range specs {
		ti := textinput.New()
		ti.Placeholder = sp.placeholder
		ti.CharLimit = sp.limit
		ti.Width = 40
		form[i] = ti
	}
	return form
}

// RunTUI runs the interactive UI until the user quits. When watchPath is set the list
// is reloaded whenever another process rewrites that file.
func RunTUI(ctx context.Context, a *app.TaskApp, watchPath string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewTaskModel(ctx, a), tea.WithContext(ctx))
	if watchPath != "" {
		go func() {
			_ = storage.Watch(ctx, watchPath, storage.DefaultWatchDebounce, func() {
				p.Send(reloadMsg{})
			})
		}()
	}

	_, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running task UI: %w", err)
	}
	return nil
}

func (m TaskModel) Init() tea.Cmd {
	return nil
}

func (m TaskModel) dispatch(cmd app.Command) tea.Cmd {
	ctx, a := m.ctx, m.app
	return func() tea.Msg {
		res, err := a.Dispatch(ctx, cmd)
		return dispatchedMsg{cmd: cmd, res: res, err: err}
	}
}

func (m TaskModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.analyzing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case reloadMsg:
		return m, m.dispatch(app.Reload{})

	case dispatchedMsg:
		return m.applyResult(msg), nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.mode {
		case modeAdd:
			return m.updateForm(msg)
		case modeImport:
			return m.updateImport(msg)
		case modeConfirmDelete, modeConfirmClear:
			return m.updateConfirm(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m TaskModel) applyResult(msg dispatchedMsg) TaskModel {
	if _, ok := msg.cmd.(app.Analyze); ok {
		m.analyzing = false
	}
	if imp, ok := msg.cmd.(app.ImportJSON); ok && imp.Analyze {
		m.analyzing = false
	}
	if msg.err != nil {
		m.err = msg.err
		m.status = ""
		return m
	}

	m.err = nil
	m.tasks = msg.res.Tasks
	m.results = m.app.LastAnalysis()
	if msg.res.AnalysisErr != nil {
		m.err = msg.res.AnalysisErr
	}
	if _, ok := msg.cmd.(app.Reload); !ok {
		m.status = msg.res.Message
	}
	if m.cursor >= len(m.tasks) {
		m.cursor = max(len(m.tasks)-1, 0)
	}
	return m
}

func (m TaskModel) selected() (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return task.Task{}, false
	}
	return m.tasks[m.cursor], true
}

func (m TaskModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case "a":
		m.mode = modeAdd
		m.form = newAddForm()
		m.focus = fieldTitle
		cmd := m.form[fieldTitle].Focus()
		return m, cmd
	case " ", "x":
		if t, ok := m.selected(); ok {
			return m, m.dispatch(app.ToggleComplete{ID: t.ID})
		}
	case "d":
		if t, ok := m.selected(); ok {
			m.pending = t
			m.mode = modeConfirmDelete
		}
	case "C":
		if len(m.tasks) == 0 {
			return m, m.dispatch(app.ClearAll{})
		}
		m.mode = modeConfirmClear
	case "i":
		m.mode = modeImport
		m.pathInput.SetValue("")
		cmd := m.pathInput.Focus()
		return m, cmd
	case "r":
		if m.analyzing {
			return m, nil
		}
		if len(m.tasks) == 0 {
			m.err = app.ErrNoTasks
			return m, nil
		}
		m.analyzing = true
		m.status = ""
		return m, tea.Batch(m.spinner.Tick, m.dispatch(app.Analyze{}))
	}
	return m, nil
}

func (m TaskModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	mode := m.mode
	m.mode = modeBrowse
	target := m.pending
	m.pending = task.Task{}
	if msg.String() != "y" && msg.String() != "Y" {
		m.status = "Cancelled"
		return m, nil
	}
	if mode == modeConfirmClear {
		return m, m.dispatch(app.ClearAll{Confirmed: true})
	}
	return m, m.dispatch(app.DeleteTask{ID: target.ID})
}

func (m TaskModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		cmd := m.focusField((m.focus + 1) % fieldCount)
		return m, cmd
	case tea.KeyShiftTab, tea.KeyUp:
		cmd := m.focusField((m.focus + fieldCount - 1) % fieldCount)
		return m, cmd
	case tea.KeyEnter:
		if m.focus < fieldDeps {
			cmd := m.focusField(m.focus + 1)
			return m, cmd
		}
		m.mode = modeBrowse
		return m, m.dispatch(app.AddTask{Input: m.formInput()})
	}

	var cmd tea.Cmd
	m.form[m.focus], cmd = m.form[m.focus].Update(msg)
	return m, cmd
}

// focusField moves the form focus to field i.
func (m *TaskModel) focusField(i int) tea.Cmd {
	m.form[m.focus].Blur()
	m.focus = i
	return m.form[i].Focus()
}

func (m TaskModel) formInput() task.Input {
	var deps []string
	for _, d := range strings.Split(m.form[fieldDeps].Value(), ",") {
		if d = strings.TrimSpace(d); d != "" {
			deps = append(deps, d)
		}
	}
	return task.Input{
		Title:          m.form[fieldTitle].Value(),
		DueDate:        m.form[fieldDue].Value(),
		Importance:     m.form[fieldImportance].Value(),
		EstimatedHours: m.form[fieldHours].Value(),
		Dependencies:   deps,
	}
}

func (m TaskModel) updateImport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
		return m, nil
	case tea.KeyEnter:
		m.mode = modeBrowse
		path := strings.TrimSpace(m.pathInput.Value())
		data, err := os.ReadFile(path)
		if err != nil {
			m.err = fmt.Errorf("read %s: %w", path, err)
			return m, nil
		}
		m.analyzing = true
		return m, tea.Batch(m.spinner.Tick, m.dispatch(app.ImportJSON{Data: data, Analyze: true}))
	}
	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m TaskModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleHeader.Render("SmartTask") + "\n\n")
	b.WriteString(m.taskListView())
	b.WriteString("\n")

	switch m.mode {
	case modeAdd:
		b.WriteString(m.formView() + "\n")
	case modeImport:
		b.WriteString(StyleInputBox.Render("Import tasks from JSON file\n"+m.pathInput.View()) + "\n")
	case modeConfirmDelete:
		b.WriteString(StyleWarning.Render(fmt.Sprintf("Delete %q? [y/N]", m.pending.Title)) + "\n")
	case modeConfirmClear:
		b.WriteString(StyleWarning.Render(fmt.Sprintf("Delete all %d tasks? This cannot be undone. [y/N]", len(m.tasks))) + "\n")
	}

	var results strings.Builder
	RenderResults(&results, ProjectResults(m.results))
	box := StyleResultsBox
	if m.width > 4 {
		box = box.Width(m.width - 4)
	}
	b.WriteString(box.Render(strings.TrimRight(results.String(), "\n")) + "\n")

	switch {
	case m.analyzing:
		b.WriteString(m.spinner.View() + " Analyzing tasks...\n")
	case m.err != nil:
		b.WriteString(StyleError.Render("✗ "+m.err.Error()) + "\n")
	case m.status != "":
		b.WriteString(StyleSuccess.Render("✓ "+m.status) + "\n")
	}

	b.WriteString(StyleSubtle.Render(m.helpLine()) + "\n")
	return b.String()
}

func (m TaskModel) taskListView() string {
	v := ProjectTaskList(m.tasks, m.app.Today())
	title := StyleSectionTitle.Render(fmt.Sprintf("Tasks (%d)", len(v.Items)))
	if v.Empty() {
		return title + "\n " + StylePlaceholder.Render(v.Placeholder) + "\n"
	}

	var b strings.Builder
	b.WriteString(title + "\n")
	for i, item := range v.Items {
		cursor := "  "
		if i == m.cursor {
			cursor = StylePrimary.Render("▸ ")
		}
		check := "[ ]"
		if item.Completed {
			check = "[✓]"
		}
		line := fmt.Sprintf("%s %s  Due: %s  Importance: %s  Effort: %s",
			check, Truncate(item.Title, 40), item.DueDate, item.Importance, item.Effort)
		if item.Urgency != "" {
			line += "  (" + item.Urgency + ")"
		}
		b.WriteString(cursor + rowStyle(item).Render(line) + "\n")
	}
	return b.String()
}

func rowStyle(item TaskItem) lipgloss.Style {
	switch {
	case item.Completed:
		return StyleCompleted
	case item.Overdue:
		return StyleOverdue
	case item.Urgency != "" && item.DaysLeft <= 1:
		return StyleDueSoon
	}
	return StyleText
}

func (m TaskModel) formView() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("New task") + "\n")
	for i := range m.form {
		b.WriteString(m.form[i].View() + "\n")
	}
	return StyleInputBox.Render(strings.TrimRight(b.String(), "\n"))
}

func (m TaskModel) helpLine() string {
	switch m.mode {
	case modeAdd:
		return "tab next field • enter submit on last field • esc cancel"
	case modeImport:
		return "enter import • esc cancel"
	case modeConfirmDelete, modeConfirmClear:
		return "y confirm • any other key cancels"
	}
	return "↑/↓ move • a add • space toggle • d delete • C clear all • i import • r analyze • q quit"
}
