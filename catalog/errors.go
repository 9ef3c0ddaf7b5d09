package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound        = errors.New("post not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidData     = errors.New("invalid post data")
)

// DateError describes a post whose date or timestamp could not be parsed.
type DateError struct {
	ID    string
	Field string // "date" or "timestamp"
	Value string
}

func (e DateError) Error() string {
	return fmt.Sprintf("post %q: unparseable %s %q", e.ID, e.Field, e.Value)
}

// DataError collects every DateError found while building a catalog.
// The catalog is still usable when New returns one.
type DataError struct {
	Items []DateError
}

func (e DataError) Error() string {
	if len(e.Items) == 0 {
		return "invalid post data"
	}
	var b strings.Builder
	b.WriteString("invalid post data:\n")
	for _, item := range e.Items {
		b.WriteString(" - ")
		b.WriteString(item.Error())
		b.WriteString("\n")
	}
	return b.String()
}

func (e *DataError) add(item DateError) {
	e.Items = append(e.Items, item)
}

func (e DataError) Is(target error) bool {
	return target == ErrInvalidData
}

func (e DataError) HasAny() bool {
	return len(e.Items) > 0
}
