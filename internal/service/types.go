package service

import (
	"time"

	"ktask/internal/task"
)

// Task represents a single remote task item.
type Task struct {
	ID        string
	Title     string
	Notes     string
	Due       time.Time // zero if none
	Completed bool
}

// TaskList represents a remote task list.
type TaskList struct {
	ID    string
	Title string
}

// FromTask converts a local task into its remote form. The canonical text
// goes into the notes; deadlines carry their due day and events their end day.
func FromTask(t task.Task) Task {
	rt := Task{
		Title:     t.Description,
		Notes:     t.String(),
		Completed: t.Done,
	}
	switch t.Kind {
	case task.Deadline:
		rt.Due = t.Due
	case task.Event:
		rt.Due = t.End
	}
	return rt
}
