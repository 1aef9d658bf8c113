package repositories

import "errors"

var (
	// ErrNotFound covers both genuinely absent records and, for activities,
	// records owned by someone else. Callers must not be able to tell the
	// two apart for private resources.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate indicates a uniqueness violation (username taken,
	// activity already liked).
	ErrDuplicate = errors.New("record already exists")
	// ErrNotAuthor is returned when a caller tries to delete a comment
	// written by someone else. Comments deliberately expose this as a
	// distinct condition rather than folding it into ErrNotFound.
	ErrNotAuthor = errors.New("caller is not the author")
)
