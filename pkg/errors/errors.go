package errors

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

func CollectWrappedErrors(err error) []error {
	var results []error

	queue := []error{err}

	for len(queue) > 0 {
		poppedErr := queue[0]
		queue = queue[1:]

		if poppedErr == nil {
			continue
		}

		if poppedErr != err {
			results = append(results, poppedErr)
		}

		switch typedErr := poppedErr.(type) {
		case interface{ Unwrap() error }:
			unwrappedErr := typedErr.Unwrap()
			if unwrappedErr == nil {
				continue
			}

			queue = append(queue, unwrappedErr)
		case interface{ Unwrap() []error }:
			for _, unwrappedErr := range typedErr.Unwrap() {
				if unwrappedErr == nil {
					continue
				}

				queue = append(queue, unwrappedErr)
			}
		}
	}

	return results
}

func removeFunctionFromStackTrace(stackTrace, funcName string) string {
	lines := strings.Split(stackTrace, "\n")
	filtered := make([]string, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		// A frame is two lines: the function signature and then the file/line info.
		if strings.HasPrefix(lines[i], funcName+"(") {
			i++
		} else {
			filtered = append(filtered, lines[i])
		}
	}
	return strings.Join(filtered, "\n")
}

func getFunctionName(f any) string {
	return runtime.FuncForPC(reflect.ValueOf(f).Pointer()).Name()
}

func CaptureStackTrace() string {
	buf := make([]byte, 64<<10)
	return strings.TrimSpace(
		removeFunctionFromStackTrace(string(buf[:runtime.Stack(buf, false)]), getFunctionName(CaptureStackTrace)),
	)
}

type IdErrorI interface {
	Error() string
	GetId() string
}

type StackTraceErrorI interface {
	Error() string
	GetStackTrace() string
}

type InputErrorI interface {
	Error() string
	GetInput() any
}

// Error decorates a wrapped error with the input that caused it, an optional id correlating it with a response,
// and an optional stack trace. The decorations are picked up by the log error extractor.
type Error struct {
	error
	Input      any
	Id         string
	StackTrace string
}

func (err *Error) GetInput() any {
	return err.Input
}

func (err *Error) GetId() string {
	return err.Id
}

func (err *Error) GetStackTrace() string {
	return err.StackTrace
}

func (err *Error) Unwrap() error {
	return err.error
}

func makeError(e any, input ...any) *Error {
	var err error

	// Expecting `e` to be an `error` or a string. If not, make it a string.
	switch typedE := e.(type) {
	case error:
		err = typedE
	case string:
		err = errors.New(typedE)
	default:
		err = fmt.Errorf("%v", typedE)
	}

	var errInput any = input
	switch len(input) {
	case 0:
		errInput = nil
	case 1:
		errInput = input[0]
	}

	return &Error{error: err, Input: errInput}
}

func New(e any, input ...any) *Error {
	return makeError(e, input...)
}

func NewWithTrace(e any, input ...any) *Error {
	err := makeError(e, input...)
	err.StackTrace = removeFunctionFromStackTrace(CaptureStackTrace(), getFunctionName(NewWithTrace))

	return err
}
