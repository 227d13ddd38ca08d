package errors

import "errors"

var (
	ErrEmptyRootDirectory = errors.New("empty root directory")
	ErrNotDirectory       = errors.New("not a directory")
	ErrOutsideRoot        = errors.New("path outside of the root directory")
	ErrInvalidPath        = errors.New("invalid path")
	ErrShortCopy          = errors.New("short copy")
	ErrNoIndexFile        = errors.New("no index file")
)
