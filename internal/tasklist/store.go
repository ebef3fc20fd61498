// Package tasklist implements the ordered task store.
//
// Positions [0, Len()) are always occupied; there are no gaps. Every
// operation either succeeds completely or leaves the store untouched.
package tasklist

import (
	"errors"
	"fmt"
	"strings"

	"ktask/internal/task"
)

// DefaultCapacity is the number of tasks a store holds unless configured otherwise.
const DefaultCapacity = 100

var (
	// ErrInvalidIndex is returned for positions outside [0, Len()).
	ErrInvalidIndex = errors.New("invalid task index")

	// ErrCapacityExceeded is returned when adding to a full store.
	ErrCapacityExceeded = errors.New("task list is full")
)

// Store is an ordered sequence of tasks with an optional capacity limit.
// A capacity of zero means the store grows without limit.
// Store is not safe for concurrent use; callers serialize access.
type Store struct {
	tasks    []task.Task
	capacity int
}

// New creates an empty store.
func New(capacity int) *Store {
	if capacity < 0 {
		capacity = 0
	}
	return &Store{capacity: capacity}
}

// FromTasks creates a store holding a copy of tasks, e.g. a persisted list.
// Fails with ErrCapacityExceeded if tasks does not fit.
func FromTasks(capacity int, tasks []task.Task) (*Store, error) {
	s := New(capacity)
	if s.capacity > 0 && len(tasks) > s.capacity {
		return nil, fmt.Errorf("%w: %d tasks loaded, capacity %d", ErrCapacityExceeded, len(tasks), s.capacity)
	}
	s.tasks = append(make([]task.Task, 0, len(tasks)), tasks...)
	return s, nil
}

// Len returns the logical length.
func (s *Store) Len() int { return len(s.tasks) }

// Cap returns the configured capacity, zero when unbounded.
func (s *Store) Cap() int { return s.capacity }

// IsEmpty reports whether the store holds no tasks.
func (s *Store) IsEmpty() bool { return len(s.tasks) == 0 }

func (s *Store) full() bool {
	return s.capacity > 0 && len(s.tasks) >= s.capacity
}

func (s *Store) checkIndex(i int) error {
	if i < 0 || i >= len(s.tasks) {
		return fmt.Errorf("%w: %d (have %d)", ErrInvalidIndex, i+1, len(s.tasks))
	}
	return nil
}

// Get returns the task at position i.
func (s *Store) Get(i int) (task.Task, error) {
	if err := s.checkIndex(i); err != nil {
		return task.Task{}, err
	}
	return s.tasks[i], nil
}

// Add appends t and returns the new length.
func (s *Store) Add(t task.Task) (int, error) {
	if s.full() {
		return len(s.tasks), fmt.Errorf("%w: capacity %d", ErrCapacityExceeded, s.capacity)
	}
	s.tasks = append(s.tasks, t)
	return len(s.tasks), nil
}

// Insert places t at position i, shifting later tasks up by one.
// i may equal Len(), which appends.
func (s *Store) Insert(i int, t task.Task) error {
	if i < 0 || i > len(s.tasks) {
		return fmt.Errorf("%w: %d (have %d)", ErrInvalidIndex, i+1, len(s.tasks))
	}
	if s.full() {
		return fmt.Errorf("%w: capacity %d", ErrCapacityExceeded, s.capacity)
	}
	s.tasks = append(s.tasks, task.Task{})
	copy(s.tasks[i+1:], s.tasks[i:])
	s.tasks[i] = t
	return nil
}

// Mark sets the task at i as done. It returns the updated task and
// whether it was already done before the call.
func (s *Store) Mark(i int) (task.Task, bool, error) {
	return s.setDone(i, true)
}

// Unmark sets the task at i as not done. It returns the updated task and
// whether it was done before the call.
func (s *Store) Unmark(i int) (task.Task, bool, error) {
	return s.setDone(i, false)
}

func (s *Store) setDone(i int, done bool) (task.Task, bool, error) {
	if err := s.checkIndex(i); err != nil {
		return task.Task{}, false, err
	}
	was := s.tasks[i].Done
	s.tasks[i] = s.tasks[i].WithDone(done)
	return s.tasks[i], was, nil
}

// Delete removes the task at i; every later task moves down by one.
func (s *Store) Delete(i int) (task.Task, error) {
	if err := s.checkIndex(i); err != nil {
		return task.Task{}, err
	}
	removed := s.tasks[i]
	copy(s.tasks[i:], s.tasks[i+1:])
	s.tasks[len(s.tasks)-1] = task.Task{}
	s.tasks = s.tasks[:len(s.tasks)-1]
	return removed, nil
}

// Tasks returns a copy of the tasks in order.
func (s *Store) Tasks() []task.Task {
	return append([]task.Task(nil), s.tasks...)
}

// Find returns, in order, the tasks whose description contains keyword.
// Matching is case-sensitive.
func (s *Store) Find(keyword string) []task.Task {
	var matches []task.Task
	for _, t := range s.tasks {
		if strings.Contains(t.Description, keyword) {
			matches = append(matches, t)
		}
	}
	return matches
}
