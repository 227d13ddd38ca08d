package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	bundleServerContext "github.com/Motmedel/bundle_server/pkg/context"
	bundleServerErrors "github.com/Motmedel/bundle_server/pkg/errors"
	"github.com/google/go-cmp/cmp"
)

var errTest = errors.New("test error")

func logJson(t *testing.T, ctx context.Context, extractors ...ContextExtractor) map[string]any {
	t.Helper()

	var buffer bytes.Buffer
	handler, err := NewHandler(&buffer, FormatJson, slog.LevelDebug)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	New(handler, extractors...).InfoContext(ctx, "message")

	var record map[string]any
	if err := json.Unmarshal(buffer.Bytes(), &record); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	return record
}

func TestErrorContextExtractor(t *testing.T) {
	t.Parallel()

	err := bundleServerErrors.New(fmt.Errorf("open: %w", errTest), "/srv/x.wasm")
	err.Id = "id"

	record := logJson(
		t,
		bundleServerContext.WithError(context.Background(), err),
		&ErrorContextExtractor{SkipStackTrace: true},
	)

	expected := map[string]any{
		"message": "open: test error",
		"id":      "id",
		"input":   map[string]any{"value": "/srv/x.wasm", "type": "string"},
		"cause":   map[string]any{"message": "test error"},
	}
	if diff := cmp.Diff(expected, record["error"]); diff != "" {
		t.Errorf("error attributes mismatch (-expected +got):\n%s", diff)
	}
}

func TestErrorContextExtractorStackTrace(t *testing.T) {
	t.Parallel()

	record := logJson(
		t,
		bundleServerContext.WithError(context.Background(), bundleServerErrors.NewWithTrace(errTest)),
		&ErrorContextExtractor{},
	)

	errorAttrs, ok := record["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected an error group, got %v", record["error"])
	}
	stackTrace, _ := errorAttrs["stack_trace"].(string)
	if !strings.Contains(stackTrace, "TestErrorContextExtractorStackTrace") {
		t.Errorf("expected the stack trace to contain the test function, got %q", stackTrace)
	}
}

func TestContextHandlerWithoutError(t *testing.T) {
	t.Parallel()

	record := logJson(t, context.Background(), &ErrorContextExtractor{}, nil)
	if _, ok := record["error"]; ok {
		t.Errorf("expected no error group, got %v", record["error"])
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		format   string
		expected string
		wantErr  error
	}{
		{format: "", expected: FormatText},
		{format: "TEXT", expected: FormatText},
		{format: "json", expected: FormatJson},
		{format: "xml", wantErr: ErrUnknownFormat},
	}

	for _, testCase := range testCases {
		t.Run(testCase.format, func(t *testing.T) {
			t.Parallel()

			format, err := ParseFormat(testCase.format)
			if !errors.Is(err, testCase.wantErr) {
				t.Fatalf("expected error %v, got %v", testCase.wantErr, err)
			}
			if diff := cmp.Diff(testCase.expected, format); diff != "" {
				t.Errorf("format mismatch (-expected +got):\n%s", diff)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	level, err := ParseLevel("warn")
	if err != nil {
		t.Fatalf("parse level: %v", err)
	}
	if diff := cmp.Diff(slog.LevelWarn, level); diff != "" {
		t.Errorf("level mismatch (-expected +got):\n%s", diff)
	}

	if _, err := ParseLevel("loud"); err == nil {
		t.Errorf("expected an error for an unknown level")
	}
}
