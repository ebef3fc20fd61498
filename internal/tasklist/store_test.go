package tasklist

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ktask/internal/task"
)

func seeded(t *testing.T, descs ...string) *Store {
	t.Helper()
	s := New(DefaultCapacity)
	for _, d := range descs {
		_, err := s.Add(task.NewTodo(d))
		require.NoError(t, err)
	}
	return s
}

func descriptions(s *Store) []string {
	var out []string
	for _, t := range s.Tasks() {
		out = append(out, t.Description)
	}
	return out
}

func TestStore_AddAppendsAtEnd(t *testing.T) {
	s := seeded(t, "a", "b")

	n, err := s.Add(task.NewTodo("c"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, s.Len())

	last, err := s.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "c", last.Description)
}

func TestStore_AddWhenFull(t *testing.T) {
	s := New(2)
	_, err := s.Add(task.NewTodo("a"))
	require.NoError(t, err)
	_, err = s.Add(task.NewTodo("b"))
	require.NoError(t, err)

	n, err := s.Add(task.NewTodo("c"))
	require.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"a", "b"}, descriptions(s))
}

func TestStore_UnboundedCapacity(t *testing.T) {
	s := New(0)
	for i := 0; i < DefaultCapacity+5; i++ {
		_, err := s.Add(task.NewTodo("x"))
		require.NoError(t, err)
	}
	assert.Equal(t, DefaultCapacity+5, s.Len())
	assert.Equal(t, 0, s.Cap())
}

func TestStore_MarkThenUnmarkRestores(t *testing.T) {
	s := New(DefaultCapacity)
	_, err := s.Add(task.NewDeadline("return book", time.Date(2019, time.October, 15, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	before, err := s.Get(0)
	require.NoError(t, err)

	marked, was, err := s.Mark(0)
	require.NoError(t, err)
	assert.False(t, was)
	assert.Equal(t, "[D][X] return book (by: Oct 15 2019)", marked.String())

	unmarked, was, err := s.Unmark(0)
	require.NoError(t, err)
	assert.True(t, was)
	assert.Equal(t, before, unmarked)
	assert.Equal(t, before.String(), unmarked.String())
}

func TestStore_DeleteShiftsDown(t *testing.T) {
	for i, want := range [][]string{
		{"b", "c", "d", "e"},
		{"a", "c", "d", "e"},
		{"a", "b", "d", "e"},
		{"a", "b", "c", "e"},
		{"a", "b", "c", "d"},
	} {
		s := seeded(t, "a", "b", "c", "d", "e")
		removed, err := s.Delete(i)
		require.NoError(t, err)
		assert.Equal(t, string(rune('a'+i)), removed.Description)
		assert.Equal(t, 4, s.Len())
		assert.Equal(t, want, descriptions(s))
	}
}

func TestStore_DeleteLastLeavesEmpty(t *testing.T) {
	s := seeded(t, "read book")
	_, err := s.Delete(0)
	require.NoError(t, err)
	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.Len())
}

func TestStore_InvalidIndexLeavesStoreUnchanged(t *testing.T) {
	s := seeded(t, "a", "b")
	_, _, err := s.Mark(0)
	require.NoError(t, err)
	snapshot := s.Tasks()

	for _, i := range []int{-1, 2, 100} {
		_, _, err := s.Mark(i)
		assert.True(t, errors.Is(err, ErrInvalidIndex), "Mark(%d)", i)
		_, _, err = s.Unmark(i)
		assert.True(t, errors.Is(err, ErrInvalidIndex), "Unmark(%d)", i)
		_, err = s.Delete(i)
		assert.True(t, errors.Is(err, ErrInvalidIndex), "Delete(%d)", i)
		_, err = s.Get(i)
		assert.True(t, errors.Is(err, ErrInvalidIndex), "Get(%d)", i)
	}
	assert.Equal(t, snapshot, s.Tasks())
}

func TestStore_InvalidIndexOnEmpty(t *testing.T) {
	s := New(DefaultCapacity)
	_, _, err := s.Mark(0)
	assert.ErrorIs(t, err, ErrInvalidIndex)
	_, err = s.Delete(0)
	assert.ErrorIs(t, err, ErrInvalidIndex)
}

func TestStore_InsertReversesDelete(t *testing.T) {
	s := seeded(t, "a", "b", "c")
	removed, err := s.Delete(1)
	require.NoError(t, err)

	require.NoError(t, s.Insert(1, removed))
	assert.Equal(t, []string{"a", "b", "c"}, descriptions(s))

	require.NoError(t, s.Insert(3, task.NewTodo("d")))
	assert.Equal(t, []string{"a", "b", "c", "d"}, descriptions(s))

	assert.ErrorIs(t, s.Insert(5, task.NewTodo("x")), ErrInvalidIndex)
	assert.ErrorIs(t, s.Insert(-1, task.NewTodo("x")), ErrInvalidIndex)
}

func TestStore_InsertWhenFull(t *testing.T) {
	s := New(1)
	_, err := s.Add(task.NewTodo("a"))
	require.NoError(t, err)
	assert.ErrorIs(t, s.Insert(0, task.NewTodo("b")), ErrCapacityExceeded)
	assert.Equal(t, []string{"a"}, descriptions(s))
}

func TestStore_Find(t *testing.T) {
	s := seeded(t, "read book", "buy milk", "return Book", "book club")

	got := s.Find("book")
	require.Len(t, got, 2)
	assert.Equal(t, "read book", got[0].Description)
	assert.Equal(t, "book club", got[1].Description)

	assert.Empty(t, s.Find("nothing"))
}

func TestStore_TasksIsACopy(t *testing.T) {
	s := seeded(t, "a")
	tasks := s.Tasks()
	tasks[0].Description = "changed"

	got, err := s.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Description)
}

func TestFromTasks(t *testing.T) {
	loaded := []task.Task{task.NewTodo("a"), task.NewTodo("b")}
	s, err := FromTasks(DefaultCapacity, loaded)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())

	loaded[0].Description = "changed"
	got, err := s.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Description)

	_, err = FromTasks(1, []task.Task{task.NewTodo("a"), task.NewTodo("b")})
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}
