// Package service defines the backend-agnostic interface for mirroring
// the local task list to a remote task service.
package service

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a remote list or task does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous is returned when a list name matches more than one list.
	ErrAmbiguous = errors.New("ambiguous list name")

	// ErrAuth is returned when credentials are missing, unreadable or
	// rejected by the remote service.
	ErrAuth = errors.New("not authorized")
)

// Service defines the remote operations sync needs.
// All Google Tasks API calls go through this interface.
// Commands never import the Google SDK directly.
type Service interface {
	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns ErrNotFound or ErrAmbiguous.
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// CreateList creates a new task list.
	CreateList(ctx context.Context, name string) (TaskList, error)

	// ListTasks returns every task in a list, completed ones included,
	// in API order.
	ListTasks(ctx context.Context, listID string) ([]Task, error)

	// CreateTask creates a task at the end of the list.
	CreateTask(ctx context.Context, listID string, t Task) error

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, listID, taskID string) error
}
