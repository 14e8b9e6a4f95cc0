package selection

import (
	"errors"
	"io/fs"
)

var (
	ErrNoInput     = errors.New("no paths provided")
	ErrInvalidPath = errors.New("path is not absolute")
	ErrNotFound    = errors.New("path does not exist")
	ErrNotAFile    = errors.New("path is not a regular file")
)

// PathError reports the first entry that failed validation.
// Kind is one of the Err* sentinels, Cause is the underlying os error if any.
type PathError struct {
	Index int
	Path  string
	Kind  error
	Cause error
}

func (e *PathError) Error() string {
	if e.Cause != nil && !errors.Is(e.Cause, fs.ErrNotExist) {
		return e.Kind.Error() + ": " + e.Path + ": " + e.Cause.Error()
	}
	return e.Kind.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}
