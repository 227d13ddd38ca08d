package middleware

import (
	"log/slog"
	"net/http"
	"time"

	bundleServerHttpContext "github.com/Motmedel/bundle_server/pkg/http/context"
	bundleServerHttpTypes "github.com/Motmedel/bundle_server/pkg/http/types"
	"github.com/Motmedel/bundle_server/pkg/http/types/response_writer"
	"github.com/google/uuid"
)

// AccessLog registers a request id and an HttpContext for each request, so that everything logged while handling
// it carries them, and logs the outcome once the next handler returns.
type AccessLog struct {
	Next   http.Handler
	Logger *slog.Logger
}

func (accessLog *AccessLog) ServeHTTP(responseWriter http.ResponseWriter, request *http.Request) {
	logger := accessLog.Logger
	if logger == nil {
		logger = slog.Default()
	}

	next := accessLog.Next
	if next == nil {
		next = http.NotFoundHandler()
	}

	httpContext := &bundleServerHttpTypes.HttpContext{Request: request}
	ctx := bundleServerHttpContext.WithHttpContext(
		bundleServerHttpContext.WithRequestId(request.Context(), uuid.NewString()),
		httpContext,
	)

	recordingResponseWriter := &response_writer.ResponseWriter{ResponseWriter: responseWriter}

	startTime := time.Now()
	next.ServeHTTP(recordingResponseWriter, request.WithContext(ctx))
	duration := time.Since(startTime)

	statusCode := recordingResponseWriter.WrittenStatusCode
	if !recordingResponseWriter.WriteHeaderCalled {
		statusCode = http.StatusOK
	}
	httpContext.StatusCode = statusCode
	httpContext.BodyBytes = recordingResponseWriter.WrittenBodyBytes

	logger.InfoContext(
		ctx,
		"A request was handled.",
		slog.Group("event", slog.Int64("duration", duration.Nanoseconds())),
	)
}

func New(next http.Handler, logger *slog.Logger) *AccessLog {
	return &AccessLog{Next: next, Logger: logger}
}
