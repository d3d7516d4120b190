// Package domain contains the core domain models for task definitions, inputs and settings.
package domain

import (
	"iter"
	"strings"

	"go.trai.ch/zerr"
)

// TaskSet is the read-only collection of tasks and inputs loaded from a definition file.
// Declaration order is preserved so numeric indices match the file.
type TaskSet struct {
	tasks   []Task
	byLabel map[InternedString]int
	inputs  []Input
	byID    map[string]int
}

// NewTaskSet creates a new empty TaskSet.
func NewTaskSet() *TaskSet {
	return &TaskSet{
		byLabel: make(map[InternedString]int),
		byID:    make(map[string]int),
	}
}

// AddTask appends a task to the set.
// It returns an error if a task with the same label already exists.
func (s *TaskSet) AddTask(t *Task) error {
	if t.Label.String() == "" {
		return zerr.Wrap(ErrMissingTaskLabel, "cannot add task")
	}
	if _, exists := s.byLabel[t.Label]; exists {
		return zerr.With(zerr.Wrap(ErrDuplicateTaskLabel, "cannot add task"), "label", t.Label.String())
	}
	s.byLabel[t.Label] = len(s.tasks)
	s.tasks = append(s.tasks, *t)
	return nil
}

// AddInput appends an input to the set.
// It returns an error if an input with the same id already exists.
func (s *TaskSet) AddInput(in *Input) error {
	if _, exists := s.byID[in.ID]; exists {
		return zerr.With(zerr.Wrap(ErrDuplicateInputID, "cannot add input"), "id", in.ID)
	}
	s.byID[in.ID] = len(s.inputs)
	s.inputs = append(s.inputs, *in)
	return nil
}

// Task returns the task with the given label.
func (s *TaskSet) Task(label string) (Task, bool) {
	i, ok := s.byLabel[NewInternedString(label)]
	if !ok {
		return Task{}, false
	}
	return s.tasks[i], true
}

// TaskAt returns the task at the given declaration index.
func (s *TaskSet) TaskAt(index int) (Task, bool) {
	if index < 0 || index >= len(s.tasks) {
		return Task{}, false
	}
	return s.tasks[index], true
}

// Input returns the input with the given id.
func (s *TaskSet) Input(id string) (Input, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Input{}, false
	}
	return s.inputs[i], true
}

// Len returns the number of tasks.
func (s *TaskSet) Len() int {
	return len(s.tasks)
}

// Tasks returns an iterator over tasks in declaration order, with their index.
func (s *TaskSet) Tasks() iter.Seq2[int, Task] {
	return func(yield func(int, Task) bool) {
		for i, t := range s.tasks {
			if !yield(i, t) {
				return
			}
		}
	}
}

// Inputs returns an iterator over inputs in declaration order.
func (s *TaskSet) Inputs() iter.Seq[Input] {
	return func(yield func(Input) bool) {
		for _, in := range s.inputs {
			if !yield(in) {
				return
			}
		}
	}
}

// CycleError constructs an error with cycle path metadata.
// path is the active dependency stack and dep is the label that closes the cycle.
func CycleError(path []InternedString, dep InternedString) error {
	startIdx := 0
	for i, node := range path {
		if node == dep {
			startIdx = i
			break
		}
	}
	parts := make([]string, 0, len(path)-startIdx+1)
	for _, node := range path[startIdx:] {
		parts = append(parts, node.String())
	}
	parts = append(parts, dep.String())
	cyclePath := strings.Join(parts, " -> ")
	return zerr.With(zerr.Wrap(ErrDependencyCycle, "cannot run "+dep.String()), "cycle", cyclePath)
}
