package banner

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
)

func TestPrint(t *testing.T) {
	previousNoColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = previousNoColor })

	var buffer bytes.Buffer
	if err := Print(&buffer, "Build", "http://localhost:8000"); err != nil {
		t.Fatalf("print: %v", err)
	}

	expected := strings.Join(Lines("Build", "http://localhost:8000"), "\n") + "\n"
	if diff := cmp.Diff(expected, buffer.String()); diff != "" {
		t.Errorf("banner mismatch (-expected +got):\n%s", diff)
	}
}

func TestLines(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		directory string
	}{
		{name: "short", directory: "Build"},
		{name: "long", directory: strings.Repeat("very/long/path/", 10)},
		{name: "non-ascii", directory: "Bygge/åäö"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			lines := Lines(testCase.directory, "http://localhost:8000")
			width := utf8.RuneCountInString(lines[0])
			for _, line := range lines {
				if diff := cmp.Diff(width, utf8.RuneCountInString(line)); diff != "" {
					t.Errorf("line %q width mismatch (-expected +got):\n%s", line, diff)
				}
			}

			if !strings.Contains(lines[3], "Serving from: ") {
				t.Errorf("expected the directory row, got %q", lines[3])
			}
		})
	}
}
