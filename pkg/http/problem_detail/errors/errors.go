package errors

import "errors"

var (
	ErrNilProblemDetail = errors.New("nil problem detail")
	ErrEmptyStatus      = errors.New("empty status")
)
