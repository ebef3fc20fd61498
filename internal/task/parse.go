package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMalformedLine is returned by Parse for text that is not a canonical task line.
var ErrMalformedLine = errors.New("malformed task line")

const prefixLen = len("[T][ ] ")

// Parse decodes one canonical task line as produced by Task.String.
// It exists for loading persisted lists; records already in memory are
// never rebuilt from their rendered text.
func Parse(line string) (Task, error) {
	line = strings.TrimRight(line, "\r\n")
	if len(line) < prefixLen || line[0] != '[' || line[2] != ']' || line[3] != '[' || line[5] != ']' || line[6] != ' ' {
		return Task{}, fmt.Errorf("%w: %q", ErrMalformedLine, line)
	}

	var t Task
	switch line[4] {
	case 'X':
		t.Done = true
	case ' ':
	default:
		return Task{}, fmt.Errorf("%w: bad completion marker in %q", ErrMalformedLine, line)
	}

	body := line[prefixLen:]
	switch line[1] {
	case 'T':
		t.Kind = Todo
		t.Description = body
	case 'D':
		t.Kind = Deadline
		desc, inner, ok := cutSuffix(body, " (by: ")
		if !ok {
			return Task{}, fmt.Errorf("%w: missing due date in %q", ErrMalformedLine, line)
		}
		due, err := time.Parse(DateLayout, inner)
		if err != nil {
			return Task{}, fmt.Errorf("%w: %v", ErrMalformedLine, err)
		}
		t.Description, t.Due = desc, due
	case 'E':
		t.Kind = Event
		desc, inner, ok := cutSuffix(body, " (from: ")
		if !ok {
			return Task{}, fmt.Errorf("%w: missing event window in %q", ErrMalformedLine, line)
		}
		from, to, ok := strings.Cut(inner, " to: ")
		if !ok {
			return Task{}, fmt.Errorf("%w: missing event end in %q", ErrMalformedLine, line)
		}
		start, err := time.Parse(DateTimeLayout, from)
		if err != nil {
			return Task{}, fmt.Errorf("%w: %v", ErrMalformedLine, err)
		}
		end, err := time.Parse(DateTimeLayout, to)
		if err != nil {
			return Task{}, fmt.Errorf("%w: %v", ErrMalformedLine, err)
		}
		t.Description, t.Start, t.End = desc, start, end
	default:
		return Task{}, fmt.Errorf("%w: unknown kind marker in %q", ErrMalformedLine, line)
	}
	return t, nil
}

// cutSuffix splits "desc<open>inner)" at the last occurrence of open.
func cutSuffix(body, open string) (desc, inner string, ok bool) {
	i := strings.LastIndex(body, open)
	if i < 0 || !strings.HasSuffix(body, ")") {
		return "", "", false
	}
	return body[:i], body[i+len(open) : len(body)-1], true
}
