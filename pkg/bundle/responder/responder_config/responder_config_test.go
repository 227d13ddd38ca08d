package responder_config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNew(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		options  []Option
		expected *Config
	}{
		{
			name: "defaults",
			expected: &Config{
				DirectoryListing: true,
				IndexFiles:       DefaultIndexFiles,
				CopyBufferSize:   DefaultCopyBufferSize,
			},
		},
		{
			name: "options",
			options: []Option{
				WithDirectoryListing(false),
				WithIndexFiles("main.html"),
				WithCopyBufferSize(1024),
				nil,
			},
			expected: &Config{
				IndexFiles:     []string{"main.html"},
				CopyBufferSize: 1024,
			},
		},
		{
			name:    "non-positive buffer size",
			options: []Option{WithCopyBufferSize(0)},
			expected: &Config{
				DirectoryListing: true,
				IndexFiles:       DefaultIndexFiles,
				CopyBufferSize:   DefaultCopyBufferSize,
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(testCase.expected, New(testCase.options...)); diff != "" {
				t.Errorf("config mismatch (-expected +got):\n%s", diff)
			}
		})
	}
}
