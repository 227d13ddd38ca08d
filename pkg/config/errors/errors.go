package errors

import "errors"

var (
	ErrUndecodedKeys    = errors.New("undecoded keys")
	ErrInvalidPort      = errors.New("invalid port")
	ErrEmptyDirectory   = errors.New("empty directory")
	ErrTooManyArguments = errors.New("too many arguments")
	ErrInvalidTimeout   = errors.New("invalid shutdown timeout")
	ErrInvalidIndexFile = errors.New("invalid index file name")
)
