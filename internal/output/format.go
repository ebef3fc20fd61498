// Package output renders task list results as user-facing text.
package output

import (
	"errors"
	"fmt"
	"io"

	"ktask/internal/parser"
	"ktask/internal/task"
	"ktask/internal/tasklist"
	"ktask/internal/undo"
)

const (
	// Separator is printed after each reply in interactive mode.
	Separator = "_____________________________"

	ListHeader  = "Here are the tasks in your list:"
	FindHeader  = "WOOF! Here are the matching tasks in your list:"
	EmptyList   = "WOOF! You do not have any tasks in your task list!"
	NoMatches   = "Sorry boss! No task found!"
	CannotUndo  = "The last command cannot be undone!"
	UnknownText = "WOOF!!! I'm sorry boss, but I don't know what that means :-("
	ByeText     = "WOOF WOOF WOOF! Kyle is sad to see you leave!"
)

const logo = `  _  __      _
 | |/ /_   _| | ___
 | ' /| | | | |/ _ \
 | . \| |_| | |  __/
 |_|\_\\__, |_|\___|
       |___/
`

// Greeting writes the interactive welcome banner.
func Greeting(w io.Writer) {
	fmt.Fprint(w, logo)
	fmt.Fprintln(w, "WOOF! I'm Kyle, your task-tracking dog.")
	fmt.Fprintln(w, "What can I do for you?")
}

// FormatAdded writes the add confirmation.
func FormatAdded(w io.Writer, t task.Task, count int) {
	fmt.Fprintf(w, "Got it. I've added this task:\n%s\nNow you have %d tasks in the list\n", t, count)
}

// FormatRemoved writes the delete confirmation.
func FormatRemoved(w io.Writer, t task.Task, count int) {
	fmt.Fprintf(w, "Noted. I've removed this task:\n%s\nNow you have %d tasks in the list\n", t, count)
}

// FormatMarked writes the mark confirmation.
func FormatMarked(w io.Writer, t task.Task) {
	fmt.Fprintf(w, "OK, I've marked this task as done:\n%s\n", t)
}

// FormatUnmarked writes the unmark confirmation.
func FormatUnmarked(w io.Writer, t task.Task) {
	fmt.Fprintf(w, "OK, I've marked this task as not done yet:\n%s\n", t)
}

// FormatList writes the whole list as "<n>.<task>" lines, 1-based.
func FormatList(w io.Writer, tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, EmptyList)
		return
	}
	fmt.Fprintln(w, ListHeader)
	for i, t := range tasks {
		fmt.Fprintf(w, "%d.%s\n", i+1, t)
	}
}

// FormatMatches writes find results as "<n>. <task>" lines, numbered
// within the match set.
func FormatMatches(w io.Writer, matches []task.Task) {
	if len(matches) == 0 {
		fmt.Fprintln(w, NoMatches)
		return
	}
	fmt.Fprintln(w, FindHeader)
	for i, t := range matches {
		fmt.Fprintf(w, "%d. %s\n", i+1, t)
	}
}

// FormatUndone writes the undo confirmation.
func FormatUndone(w io.Writer, res undo.Result) {
	fmt.Fprintln(w, "WOOF! Got it! I will undo the last command!")
	fmt.Fprintf(w, "The following task has been un-%s:\n%s\n", res.Op, res.Task)
}

// ErrorText maps an error to the reply shown to the user.
func ErrorText(err error) string {
	switch {
	case errors.Is(err, parser.ErrMissingContent):
		return "OOPS! The content/detail cannot be empty!"
	case errors.Is(err, tasklist.ErrInvalidIndex):
		return "OOPS! There is no task with that number!"
	case errors.Is(err, parser.ErrDescriptionTooLong):
		return fmt.Sprintf("OOPS! Keep the description within %d characters!", parser.MaxDescriptionLength)
	case errors.Is(err, tasklist.ErrCapacityExceeded):
		return "OOPS! Your task list is full, delete something first!"
	case errors.Is(err, parser.ErrInvalidDeadlineDate):
		return "OOPS! A deadline needs a date: deadline <task> /by yyyy-mm-dd"
	case errors.Is(err, parser.ErrInvalidEventDateTime):
		return "OOPS! An event needs a time window: event <task> /from yyyy-mm-dd [HH:MM] /to yyyy-mm-dd [HH:MM]"
	case errors.Is(err, undo.ErrNothingToUndo):
		return CannotUndo
	default:
		return fmt.Sprintf("OOPS! %v", err)
	}
}

// FormatError writes ErrorText(err) followed by a newline.
func FormatError(w io.Writer, err error) {
	fmt.Fprintln(w, ErrorText(err))
}
