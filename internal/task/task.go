// Package task defines the task record and its canonical text form.
package task

import (
	"fmt"
	"time"
)

// Kind identifies the variant of a task.
type Kind int

const (
	Todo Kind = iota
	Deadline
	Event
)

const (
	// DateLayout renders deadline dates, e.g. "Oct 15 2019".
	DateLayout = "Jan 2 2006"

	// DateTimeLayout renders event start and end times, e.g. "Oct 15 2019 18:00".
	DateTimeLayout = "Jan 2 2006 15:04"
)

// Marker returns the single-letter kind marker used in canonical text.
func (k Kind) Marker() string {
	switch k {
	case Todo:
		return "T"
	case Deadline:
		return "D"
	case Event:
		return "E"
	default:
		return "?"
	}
}

func (k Kind) String() string {
	switch k {
	case Todo:
		return "todo"
	case Deadline:
		return "deadline"
	case Event:
		return "event"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Task is a single task record. Due is set only for deadlines,
// Start and End only for events.
type Task struct {
	Kind        Kind
	Description string
	Done        bool
	Due         time.Time
	Start       time.Time
	End         time.Time
}

// NewTodo creates an open todo.
func NewTodo(desc string) Task {
	return Task{Kind: Todo, Description: desc}
}

// NewDeadline creates an open deadline due on the given day.
func NewDeadline(desc string, due time.Time) Task {
	return Task{Kind: Deadline, Description: desc, Due: due}
}

// NewEvent creates an open event spanning start to end.
func NewEvent(desc string, start, end time.Time) Task {
	return Task{Kind: Event, Description: desc, Start: start, End: end}
}

// WithDone returns a copy of t with the completion flag set to done.
func (t Task) WithDone(done bool) Task {
	t.Done = done
	return t
}

// String returns the canonical text, e.g. "[D][X] return book (by: Oct 15 2019)".
func (t Task) String() string {
	mark := " "
	if t.Done {
		mark = "X"
	}
	return fmt.Sprintf("[%s][%s] %s%s", t.Kind.Marker(), mark, t.Description, t.suffix())
}

func (t Task) suffix() string {
	switch t.Kind {
	case Deadline:
		return fmt.Sprintf(" (by: %s)", t.Due.Format(DateLayout))
	case Event:
		return fmt.Sprintf(" (from: %s to: %s)", t.Start.Format(DateTimeLayout), t.End.Format(DateTimeLayout))
	default:
		return ""
	}
}
