package caching

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestIfModifiedSinceCacheHit(t *testing.T) {
	t.Parallel()

	lastModified := time.Date(2024, time.January, 2, 3, 4, 5, 600_000_000, time.UTC)

	testCases := []struct {
		name         string
		value        string
		lastModified time.Time
		expected     bool
		wantErr      bool
	}{
		{name: "empty", value: "", lastModified: lastModified, expected: false},
		{name: "same second", value: "Tue, 02 Jan 2024 03:04:05 GMT", lastModified: lastModified, expected: true},
		{name: "later", value: "Wed, 03 Jan 2024 00:00:00 GMT", lastModified: lastModified, expected: true},
		{name: "earlier", value: "Tue, 02 Jan 2024 03:04:04 GMT", lastModified: lastModified, expected: false},
		{name: "rfc 850", value: "Tuesday, 02-Jan-24 03:04:05 GMT", lastModified: lastModified, expected: true},
		{name: "zero modification time", value: "Tue, 02 Jan 2024 03:04:05 GMT", expected: false},
		{name: "malformed", value: "yesterday", lastModified: lastModified, expected: false, wantErr: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			isHit, err := IfModifiedSinceCacheHit(testCase.value, testCase.lastModified)
			if (err != nil) != testCase.wantErr {
				t.Fatalf("expected error %t, got %v", testCase.wantErr, err)
			}
			if diff := cmp.Diff(testCase.expected, isHit); diff != "" {
				t.Errorf("cache hit mismatch (-expected +got):\n%s", diff)
			}
		})
	}
}

func TestFormatLastModified(t *testing.T) {
	t.Parallel()

	location := time.FixedZone("CET", 3600)
	formatted := FormatLastModified(time.Date(2024, time.January, 2, 4, 4, 5, 0, location))
	if diff := cmp.Diff("Tue, 02 Jan 2024 03:04:05 GMT", formatted); diff != "" {
		t.Errorf("formatted mismatch (-expected +got):\n%s", diff)
	}

	if _, err := http.ParseTime(formatted); err != nil {
		t.Errorf("http parse time: %v", err)
	}
}
