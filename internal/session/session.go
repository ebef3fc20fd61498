// Package session owns the task list and undo history for one run of ktask.
package session

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"ktask/internal/task"
	"ktask/internal/tasklist"
	"ktask/internal/undo"
)

// Saver persists a snapshot of the task list after each mutation.
type Saver interface {
	Save(tasks []task.Task) error
}

// Added is the outcome of a successful add.
type Added struct {
	Task  task.Task
	Count int
}

// Removed is the outcome of a successful delete.
type Removed struct {
	Task  task.Task
	Count int
}

// Session serializes every operation on its store and undo history
// behind one mutex, so a mutation and its undo record are always seen together.
type Session struct {
	mu     sync.Mutex
	id     string
	store  *tasklist.Store
	undo   *undo.Coordinator
	saver  Saver
	logger *slog.Logger
	closed bool
}

// Option configures a Session.
type Option func(*Session)

// WithSaver persists the list after every successful mutation.
func WithSaver(s Saver) Option {
	return func(sess *Session) { sess.saver = s }
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(sess *Session) { sess.logger = l }
}

// New creates a session around store.
func New(store *tasklist.Store, opts ...Option) *Session {
	s := &Session{
		id:     uuid.NewString(),
		store:  store,
		undo:   undo.New(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("session", s.id)
	return s
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string { return s.id }

// Add appends t to the list.
func (s *Session) Add(t task.Task) (Added, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.store.Add(t)
	if err != nil {
		return Added{}, err
	}
	s.commit(undo.Added{Index: n - 1})
	return Added{Task: t, Count: n}, nil
}

// Mark marks the task at 0-based index i as done.
func (s *Session) Mark(i int) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, was, err := s.store.Mark(i)
	if err != nil {
		return task.Task{}, err
	}
	s.commit(undo.Marked{Index: i, WasDone: was})
	return t, nil
}

// Unmark marks the task at 0-based index i as not done.
func (s *Session) Unmark(i int) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, was, err := s.store.Unmark(i)
	if err != nil {
		return task.Task{}, err
	}
	s.commit(undo.Unmarked{Index: i, WasDone: was})
	return t, nil
}

// Delete removes the task at 0-based index i.
func (s *Session) Delete(i int) (Removed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.store.Delete(i)
	if err != nil {
		return Removed{}, err
	}
	s.commit(undo.Deleted{Index: i, Task: t})
	return Removed{Task: t, Count: s.store.Len()}, nil
}

// Undo reverses the last mutation. It returns undo.ErrNothingToUndo when
// there is none. Undo itself cannot be undone.
func (s *Session) Undo() (undo.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.undo.Undo(s.store)
	if err != nil {
		return undo.Result{}, err
	}
	s.logger.Debug("undone", "op", res.Op, "count", s.store.Len())
	s.save()
	return res, nil
}

// List returns the tasks in order.
func (s *Session) List() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Tasks()
}

// Find returns the tasks whose description contains keyword.
func (s *Session) Find(keyword string) []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Find(keyword)
}

// Len returns the number of tasks.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Len()
}

// Close ends the session. Commands arriving afterwards are still served;
// the input loop checks Closed to stop reading.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// Closed reports whether Close was called.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// commit records cmd for undo and persists the list. Caller holds mu.
func (s *Session) commit(cmd undo.Command) {
	s.undo.Record(cmd)
	s.logger.Debug("applied", "op", cmd.Op(), "count", s.store.Len())
	s.save()
}

// save hands a snapshot to the saver. Failures are logged; the in-memory
// list stays authoritative. Caller holds mu.
func (s *Session) save() {
	if s.saver == nil {
		return
	}
	if err := s.saver.Save(s.store.Tasks()); err != nil {
		s.logger.Warn("failed to save task list", "error", err)
	}
}
