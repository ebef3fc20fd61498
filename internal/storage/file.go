// Package storage persists task lists as files of canonical task lines.
package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"ktask/internal/task"
)

// ErrMultilineTask is returned by Save for a task whose canonical text
// would span more than one line.
var ErrMultilineTask = errors.New("task text contains a line break")

// File stores one canonical task line per task at Path.
type File struct {
	Path string
}

// NewFile returns a File stored at path.
func NewFile(path string) *File {
	return &File{Path: path}
}

// Load reads the task list. A missing file is an empty list; blank lines
// are skipped.
func (f *File) Load() ([]task.Task, error) {
	file, err := os.Open(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open task file: %w", err)
	}
	defer file.Close()

	// bufio.Reader has no line length limit, unlike bufio.Scanner.
	var tasks []task.Task
	r := bufio.NewReader(file)
	for lineNo := 1; ; lineNo++ {
		line, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read task file: %w", err)
		}
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) != "" {
			t, perr := task.Parse(line)
			if perr != nil {
				return nil, fmt.Errorf("%s:%d: %w", f.Path, lineNo, perr)
			}
			tasks = append(tasks, t)
		}
		if err != nil {
			return tasks, nil
		}
	}
}

// Save writes tasks, replacing the file atomically via a temp file in
// the same directory. Nothing is written if any task would not fit on
// one line.
func (f *File) Save(tasks []task.Task) error {
	lines := make([]string, len(tasks))
	for i, t := range tasks {
		lines[i] = t.String()
		if strings.ContainsAny(lines[i], "\r\n") {
			return fmt.Errorf("%w: task %d", ErrMultilineTask, i+1)
		}
	}

	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("write task file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close task file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("replace task file: %w", err)
	}
	return nil
}
