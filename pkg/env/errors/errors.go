package errors

import "errors"

var ErrMalformed = errors.New("malformed environment variable")
