// Package parser extracts arguments from tokenized command lines.
package parser

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrMissingContent indicates a required argument is absent or unusable.
	ErrMissingContent = errors.New("content cannot be empty")

	// ErrInvalidDeadlineDate indicates a missing or malformed /by date.
	ErrInvalidDeadlineDate = errors.New("invalid deadline date")

	// ErrInvalidEventDateTime indicates a missing or malformed /from or /to value.
	ErrInvalidEventDateTime = errors.New("invalid event date/time")

	// ErrDescriptionTooLong indicates a description over MaxDescriptionLength bytes.
	ErrDescriptionTooLong = errors.New("description too long")
)

const (
	ByMarker   = "/by"
	FromMarker = "/from"
	ToMarker   = "/to"

	// DateLayout is the accepted input format for dates.
	DateLayout = "2006-01-02"

	// MaxDescriptionLength bounds descriptions so every task fits on one
	// reasonably sized line of the task file.
	MaxDescriptionLength = 1024
)

// dateTimeLayouts are tried in order for event times.
var dateTimeLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 1504",
	DateLayout,
}

// Index parses the 1-based task number in args[0] and returns it 0-based.
// A missing or non-numeric token yields ErrMissingContent. Range checks are
// left to the task list, which knows its length.
func Index(args []string) (int, error) {
	args = words(args)
	if len(args) == 0 {
		return 0, ErrMissingContent
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: task number %q", ErrMissingContent, args[0])
	}
	return n - 1, nil
}

// Detail joins args into a single description. Runs of whitespace,
// newlines included, collapse to one space.
func Detail(args []string) (string, error) {
	detail := strings.Join(words(args), " ")
	if detail == "" {
		return "", ErrMissingContent
	}
	if len(detail) > MaxDescriptionLength {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrDescriptionTooLong, len(detail), MaxDescriptionLength)
	}
	return detail, nil
}

// words re-splits args on any whitespace. Command-line arguments arrive
// unsplit, so one argument may hold several words or a newline.
func words(args []string) []string {
	return strings.Fields(strings.Join(args, " "))
}

// Keyword returns the search keyword for find.
func Keyword(args []string) (string, error) {
	return Detail(args)
}

// Deadline parses "<description> /by yyyy-mm-dd".
func Deadline(args []string) (string, time.Time, error) {
	args = words(args)
	by := slices.Index(args, ByMarker)
	descArgs := args
	if by >= 0 {
		descArgs = args[:by]
	}
	desc, err := Detail(descArgs)
	if err != nil {
		return "", time.Time{}, err
	}
	if by < 0 {
		return "", time.Time{}, fmt.Errorf("%w: missing %s", ErrInvalidDeadlineDate, ByMarker)
	}

	raw := strings.TrimSpace(strings.Join(args[by+1:], " "))
	due, err := time.Parse(DateLayout, raw)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDeadlineDate, raw)
	}
	return desc, due, nil
}

// Event parses "<description> /from <date> [time] /to <date> [time]".
func Event(args []string) (desc string, start, end time.Time, err error) {
	args = words(args)
	from := slices.Index(args, FromMarker)
	to := slices.Index(args, ToMarker)

	cut := len(args)
	for _, i := range []int{from, to} {
		if i >= 0 && i < cut {
			cut = i
		}
	}
	desc, err = Detail(args[:cut])
	if err != nil {
		return "", time.Time{}, time.Time{}, err
	}
	if from < 0 || to < 0 || to < from {
		return "", time.Time{}, time.Time{}, fmt.Errorf("%w: expected %s ... %s ...", ErrInvalidEventDateTime, FromMarker, ToMarker)
	}

	start, err = dateTime(args[from+1 : to])
	if err != nil {
		return "", time.Time{}, time.Time{}, err
	}
	end, err = dateTime(args[to+1:])
	if err != nil {
		return "", time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return "", time.Time{}, time.Time{}, fmt.Errorf("%w: end is before start", ErrInvalidEventDateTime)
	}
	return desc, start, end, nil
}

func dateTime(tokens []string) (time.Time, error) {
	raw := strings.TrimSpace(strings.Join(tokens, " "))
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidEventDateTime, raw)
}
