package task

import "fmt"

// Store is the ordered, in-memory collection of tasks for one session.
// It is not safe for concurrent use; app.TaskApp owns it and serializes access.
type Store struct {
	tasks []Task
}

// NewStore returns a store holding a copy of tasks. The tasks are admitted as-is
// (already persisted data is not re-validated).
func NewStore(tasks []Task) *Store {
	s := &Store{tasks: make([]Task, 0, len(tasks))}
	for _, t := range tasks {
		s.tasks = append(s.tasks, t.Clone())
	}
	return s
}

// Len returns the number of tasks.
func (s *Store) Len() int { return len(s.tasks) }

// List returns a copy of all tasks in insertion order.
func (s *Store) List() []Task {
	out := make([]Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Get returns the task with the given id.
func (s *Store) Get(id ID) (Task, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i].Clone(), true
	}
	return Task{}, false
}

// Clone returns an independent copy of the store.
func (s *Store) Clone() *Store {
	return NewStore(s.tasks)
}

// Add validates and appends a task.
func (s *Store) Add(t Task) error {
	t.Normalize()
	if err := t.Validate(-1); err != nil {
		return err
	}
	if s.indexOf(t.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, t.ID)
	}
	s.tasks = append(s.tasks, t.Clone())
	return nil
}

// ToggleComplete flips the completed flag. It reports false when id is unknown.
func (s *Store) ToggleComplete(id ID) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return true
}

// Remove deletes the task with the given id. It reports false when id is unknown.
func (s *Store) Remove(id ID) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return true
}

// Clear removes every task. Callers must have obtained confirmation first.
func (s *Store) Clear() {
	s.tasks = []Task{}
}

// ReplaceAll swaps the whole collection. Every element is validated first; the
// first failure is returned with its index and the store is left unchanged.
func (s *Store) ReplaceAll(tasks []Task) error {
	next := make([]Task, 0, len(tasks))
	seen := make(map[ID]struct{}, len(tasks))
	for i, t := range tasks {
		t.Normalize()
		if err := t.Validate(i); err != nil {
			return err
		}
		if _, dup := seen[t.ID]; dup {
			return &ValidationError{Index: i, Fields: []string{"id"}, Reason: fmt.Sprintf("duplicate id %s", t.ID)}
		}
		seen[t.ID] = struct{}{}
		next = append(next, t.Clone())
	}
	s.tasks = next
	return nil
}

func (s *Store) indexOf(id ID) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
