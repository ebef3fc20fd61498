// Package undo records the last reversible mutation of a task list and
// applies its inverse on request. Only one level of history is kept.
package undo

import (
	"errors"
	"fmt"

	"ktask/internal/task"
)

// ErrNothingToUndo is returned when no reversible command is recorded.
var ErrNothingToUndo = errors.New("nothing to undo")

// Store is the part of the task list the inverse operations need.
type Store interface {
	Delete(i int) (task.Task, error)
	Insert(i int, t task.Task) error
	Mark(i int) (task.Task, bool, error)
	Unmark(i int) (task.Task, bool, error)
}

// Command describes a mutation that can be reversed. The set of
// implementations is closed: Added, Deleted, Marked and Unmarked.
type Command interface {
	// Op names the operation in past tense, e.g. "added".
	Op() string
	invert(s Store) (task.Task, error)
}

// Added records a task appended at Index.
type Added struct {
	Index int
}

// Deleted records Task removed from Index.
type Deleted struct {
	Index int
	Task  task.Task
}

// Marked records a mark at Index; WasDone is the flag before the mark.
type Marked struct {
	Index   int
	WasDone bool
}

// Unmarked records an unmark at Index; WasDone is the flag before the unmark.
type Unmarked struct {
	Index   int
	WasDone bool
}

func (Added) Op() string    { return "added" }
func (Deleted) Op() string  { return "deleted" }
func (Marked) Op() string   { return "marked" }
func (Unmarked) Op() string { return "unmarked" }

func (c Added) invert(s Store) (task.Task, error) {
	return s.Delete(c.Index)
}

func (c Deleted) invert(s Store) (task.Task, error) {
	if err := s.Insert(c.Index, c.Task); err != nil {
		return task.Task{}, err
	}
	return c.Task, nil
}

func (c Marked) invert(s Store) (task.Task, error) {
	return restoreDone(s, c.Index, c.WasDone)
}

func (c Unmarked) invert(s Store) (task.Task, error) {
	return restoreDone(s, c.Index, c.WasDone)
}

func restoreDone(s Store, i int, done bool) (task.Task, error) {
	var (
		t   task.Task
		err error
	)
	if done {
		t, _, err = s.Mark(i)
	} else {
		t, _, err = s.Unmark(i)
	}
	return t, err
}

// Result describes a reversed command and the task it affected.
type Result struct {
	Op   string
	Task task.Task
}

// Coordinator holds at most one reversible command.
// It is not safe for concurrent use.
type Coordinator struct {
	last Command
}

// New creates a coordinator with no history.
func New() *Coordinator {
	return &Coordinator{}
}

// Record replaces the remembered command with cmd.
func (c *Coordinator) Record(cmd Command) {
	c.last = cmd
}

// Pending returns the remembered command, if any.
func (c *Coordinator) Pending() (Command, bool) {
	return c.last, c.last != nil
}

// Clear forgets the remembered command.
func (c *Coordinator) Clear() {
	c.last = nil
}

// Undo applies the inverse of the remembered command to s and forgets it.
// With no history it returns ErrNothingToUndo and leaves s untouched.
// If the inverse fails the command is still forgotten; s is unchanged
// because every store operation is atomic.
func (c *Coordinator) Undo(s Store) (Result, error) {
	cmd := c.last
	if cmd == nil {
		return Result{}, ErrNothingToUndo
	}
	c.last = nil

	t, err := cmd.invert(s)
	if err != nil {
		return Result{}, fmt.Errorf("undo %s: %w", cmd.Op(), err)
	}
	return Result{Op: cmd.Op(), Task: t}, nil
}
