package errors

import (
	"errors"
)

var (
	ErrNilHttpRequest              = errors.New("nil http request")
	ErrNilHttpRequestUrl           = errors.New("nil http request url")
	ErrNilResponseWriter           = errors.New("nil response writer")
	ErrNilHandler                  = errors.New("nil handler")
	ErrUnusableResponseError       = errors.New("unusable response error")
	ErrMultipleResponseErrorErrors = errors.New("multiple response error errors")
	ErrEmptyResponseErrorErrors    = errors.New("empty response error errors")
	ErrUnexpectedResponseErrorType = errors.New("unexpected response error type")
)
