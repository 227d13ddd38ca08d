// Package cmp holds test helpers for comparing the errors returned by this module.
package cmp

import (
	"errors"
	"testing"

	bundleServerErrors "github.com/Motmedel/bundle_server/pkg/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// CompareSentinel fails the test unless got matches want with errors.Is. A nil want expects no error.
func CompareSentinel(t *testing.T, got error, want error) {
	t.Helper()

	if want == nil {
		if got != nil {
			t.Fatalf("expected no error, got %T: %v", got, got)
		}
		return
	}

	if !errors.Is(got, want) {
		t.Fatalf("expected error %v, got %v", want, got)
	}
}

// CompareError finds the outermost *errors.Error in got and compares its input and id with want. Stack traces are
// not compared, only whether one was captured.
func CompareError(t *testing.T, got error, want *bundleServerErrors.Error, opts ...cmp.Option) {
	t.Helper()

	if want == nil {
		if got != nil {
			t.Fatalf("expected no error, got %T: %v", got, got)
		}
		return
	}

	var typedGot *bundleServerErrors.Error
	if !errors.As(got, &typedGot) {
		t.Fatalf("expected an error wrapping %T, got %T: %v", want, got, got)
	}

	if (want.StackTrace != "") != (typedGot.StackTrace != "") {
		t.Errorf("stack trace presence mismatch: expected %t, got %t", want.StackTrace != "", typedGot.StackTrace != "")
	}

	opts = append(
		[]cmp.Option{
			cmpopts.IgnoreUnexported(bundleServerErrors.Error{}),
			cmpopts.IgnoreFields(bundleServerErrors.Error{}, "StackTrace"),
		},
		opts...,
	)
	if diff := cmp.Diff(want, typedGot, opts...); diff != "" {
		t.Errorf("error mismatch (-expected +got):\n%s", diff)
	}
}
