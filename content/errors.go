package content

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEntry marks front-matter that does not satisfy its schema.
	ErrInvalidEntry = errors.New("invalid entry")
	// ErrNotFound is returned when a requested entry does not exist.
	ErrNotFound = errors.New("entry not found")
)

// EntryError reports the content file that failed to load.
type EntryError struct {
	Path string
	Err  error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}
