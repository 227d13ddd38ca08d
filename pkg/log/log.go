package log

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"

	bundleServerContext "github.com/Motmedel/bundle_server/pkg/context"
	bundleServerErrors "github.com/Motmedel/bundle_server/pkg/errors"
	bundleServerStrings "github.com/Motmedel/bundle_server/pkg/strings"
)

var ErrUnknownFormat = errors.New("unknown log format")

type ContextExtractor interface {
	Handle(context.Context, *slog.Record) error
}

type ContextExtractorFunction func(context.Context, *slog.Record) error

func (cef ContextExtractorFunction) Handle(ctx context.Context, record *slog.Record) error {
	return cef(ctx, record)
}

// ContextHandler lets each extractor add attributes derived from the context to a record before it is passed on.
type ContextHandler struct {
	Next       slog.Handler
	Extractors []ContextExtractor
}

func (contextHandler *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return contextHandler.Next.Enabled(ctx, level)
}

func (contextHandler *ContextHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, extractor := range contextHandler.Extractors {
		if extractor != nil {
			if err := extractor.Handle(ctx, &record); err != nil {
				return fmt.Errorf("extractor handle: %w", err)
			}
		}
	}
	return contextHandler.Next.Handle(ctx, record)
}

func (contextHandler *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{Next: contextHandler.Next.WithAttrs(attrs), Extractors: contextHandler.Extractors}
}

func (contextHandler *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{Next: contextHandler.Next.WithGroup(name), Extractors: contextHandler.Extractors}
}

type ErrorContextExtractor struct {
	SkipCause      bool
	SkipInput      bool
	SkipStackTrace bool
}

func (extractor *ErrorContextExtractor) MakeErrorAttrs(err error) []any {
	if err == nil {
		return nil
	}

	errorMessage := err.Error()
	errType := reflect.TypeOf(err).String()

	var attrs []any

	switch err.(type) {
	case *bundleServerErrors.Error:
		break
	default:
		switch errType {
		case "*errors.errorString", "*fmt.wrapError":
			break
		default:
			attrs = append(attrs, slog.String("type", errType))
		}
	}

	if inputError, ok := err.(bundleServerErrors.InputErrorI); ok && !extractor.SkipInput {
		if input := inputError.GetInput(); input != nil {
			inputTextualRepresentation, err := bundleServerStrings.MakeTextualRepresentation(input)
			if err != nil {
				attrs = append(attrs, slog.Group("input", slog.String("error", err.Error())))
			} else {
				var typeName string
				if t := reflect.TypeOf(input); t != nil {
					typeName = t.String()
				}

				attrs = append(
					attrs,
					slog.Group(
						"input",
						slog.String("value", inputTextualRepresentation),
						slog.String("type", typeName),
					),
				)
			}
		}
	}

	if !extractor.SkipCause {
		wrappedErrors := bundleServerErrors.CollectWrappedErrors(err)
		var lastWrappedErrorAttrs []any

		for i := len(wrappedErrors) - 1; i >= 0; i-- {
			wrappedError := wrappedErrors[i]
			if wrappedError == nil {
				continue
			}

			switch reflect.TypeOf(wrappedError).String() {
			case "*errors.joinError", "*fmt.wrapError":
				continue
			}

			wrappedErrorAttrs := (&ErrorContextExtractor{
				SkipCause:      true,
				SkipInput:      extractor.SkipInput,
				SkipStackTrace: extractor.SkipStackTrace,
			}).MakeErrorAttrs(wrappedError)

			if lastWrappedErrorAttrs != nil {
				wrappedErrorAttrs = append(
					wrappedErrorAttrs,
					slog.Group("cause", lastWrappedErrorAttrs...),
				)
			}

			lastWrappedErrorAttrs = wrappedErrorAttrs
		}

		if lastWrappedErrorAttrs != nil {
			attrs = append(attrs, slog.Group("cause", lastWrappedErrorAttrs...))
		}
	}

	if idError, ok := err.(bundleServerErrors.IdErrorI); ok {
		if id := idError.GetId(); id != "" {
			attrs = append(attrs, slog.String("id", id))
		}
	}

	if stackTraceError, ok := err.(bundleServerErrors.StackTraceErrorI); ok && !extractor.SkipStackTrace {
		if stackTrace := stackTraceError.GetStackTrace(); stackTrace != "" {
			attrs = append(attrs, slog.String("stack_trace", stackTrace))
		}
	}

	if errorMessage != "" {
		attrs = append(attrs, slog.String("message", errorMessage))
	}

	return attrs
}

func (extractor *ErrorContextExtractor) Handle(ctx context.Context, record *slog.Record) error {
	if record == nil {
		return nil
	}

	if logErr, ok := ctx.Value(bundleServerContext.ErrorContextKey).(error); ok && logErr != nil {
		record.Add(slog.Group("error", extractor.MakeErrorAttrs(logErr)...))
	}

	return nil
}

func ParseLevel(value string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return level, bundleServerErrors.New(fmt.Errorf("level unmarshal text: %w", err), value)
	}
	return level, nil
}

const (
	FormatText = "text"
	FormatJson = "json"
)

// ParseFormat normalizes an output format name; the empty name is the text format.
func ParseFormat(format string) (string, error) {
	switch normalized := strings.ToLower(format); normalized {
	case "", FormatText:
		return FormatText, nil
	case FormatJson:
		return FormatJson, nil
	default:
		return "", bundleServerErrors.NewWithTrace(fmt.Errorf("%w: %q", ErrUnknownFormat, format), format)
	}
}

// NewHandler makes the output handler for the format name "text" or "json".
func NewHandler(writer io.Writer, format string, level slog.Leveler) (slog.Handler, error) {
	parsedFormat, err := ParseFormat(format)
	if err != nil {
		return nil, fmt.Errorf("parse format: %w", err)
	}

	options := &slog.HandlerOptions{Level: level}
	if parsedFormat == FormatJson {
		return slog.NewJSONHandler(writer, options), nil
	}
	return slog.NewTextHandler(writer, options), nil
}

func New(handler slog.Handler, extractors ...ContextExtractor) *slog.Logger {
	return slog.New(&ContextHandler{Next: handler, Extractors: extractors})
}
