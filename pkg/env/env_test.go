package env

import (
	"errors"
	"testing"

	bundleServerEnvErrors "github.com/Motmedel/bundle_server/pkg/env/errors"
	"github.com/google/go-cmp/cmp"
)

const testVariable = "BUNDLE_SERVER_ENV_TEST"

func TestLookupInt(t *testing.T) {
	testCases := []struct {
		name          string
		value         string
		expected      int
		expectedFound bool
		wantErr       error
	}{
		{name: "unset", value: ""},
		{name: "set", value: "8080", expected: 8080, expectedFound: true},
		{name: "malformed", value: "eighty", expectedFound: true, wantErr: bundleServerEnvErrors.ErrMalformed},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Setenv(testVariable, testCase.value)

			value, found, err := LookupInt(testVariable)
			if !errors.Is(err, testCase.wantErr) {
				t.Fatalf("expected error %v, got %v", testCase.wantErr, err)
			}
			if diff := cmp.Diff(testCase.expected, value); diff != "" {
				t.Errorf("value mismatch (-expected +got):\n%s", diff)
			}
			if diff := cmp.Diff(testCase.expectedFound, found); diff != "" {
				t.Errorf("found mismatch (-expected +got):\n%s", diff)
			}
		})
	}
}

func TestLookupBool(t *testing.T) {
	testCases := []struct {
		name          string
		value         string
		expected      bool
		expectedFound bool
		wantErr       error
	}{
		{name: "unset", value: ""},
		{name: "false", value: "false", expectedFound: true},
		{name: "one", value: "1", expected: true, expectedFound: true},
		{name: "malformed", value: "maybe", expectedFound: true, wantErr: bundleServerEnvErrors.ErrMalformed},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Setenv(testVariable, testCase.value)

			value, found, err := LookupBool(testVariable)
			if !errors.Is(err, testCase.wantErr) {
				t.Fatalf("expected error %v, got %v", testCase.wantErr, err)
			}
			if diff := cmp.Diff(testCase.expected, value); diff != "" {
				t.Errorf("value mismatch (-expected +got):\n%s", diff)
			}
			if diff := cmp.Diff(testCase.expectedFound, found); diff != "" {
				t.Errorf("found mismatch (-expected +got):\n%s", diff)
			}
		})
	}
}

func TestGetEnvWithDefault(t *testing.T) {
	t.Setenv(testVariable, "")
	if diff := cmp.Diff("fallback", GetEnvWithDefault(testVariable, "fallback")); diff != "" {
		t.Errorf("value mismatch (-expected +got):\n%s", diff)
	}

	t.Setenv(testVariable, "value")
	if diff := cmp.Diff("value", GetEnvWithDefault(testVariable, "fallback")); diff != "" {
		t.Errorf("value mismatch (-expected +got):\n%s", diff)
	}
}
