package log

import (
	"context"
	"log/slog"

	bundleServerHttpContext "github.com/Motmedel/bundle_server/pkg/http/context"
)

// HttpContextExtractor adds the attributes of the exchange being handled, in a layout close to the Elastic Common
// Schema (http.request, http.response, url).
type HttpContextExtractor struct {
	SkipResponse bool
}

func (httpContextExtractor *HttpContextExtractor) Handle(ctx context.Context, record *slog.Record) error {
	if record == nil {
		return nil
	}

	var requestAttrs []any
	if requestId, ok := ctx.Value(bundleServerHttpContext.RequestIdContextKey).(string); ok && requestId != "" {
		requestAttrs = append(requestAttrs, slog.String("id", requestId))
	}

	httpContext := bundleServerHttpContext.GetHttpContext(ctx)
	if httpContext == nil {
		if len(requestAttrs) != 0 {
			record.Add(slog.Group("http", slog.Group("request", requestAttrs...)))
		}
		return nil
	}

	var attrs []any

	if request := httpContext.Request; request != nil {
		requestAttrs = append(requestAttrs, slog.String("method", request.Method))
		if referrer := request.Referer(); referrer != "" {
			requestAttrs = append(requestAttrs, slog.String("referrer", referrer))
		}

		if requestUrl := request.URL; requestUrl != nil {
			urlAttrs := []any{slog.String("path", requestUrl.Path)}
			if requestUrl.RawQuery != "" {
				urlAttrs = append(urlAttrs, slog.String("query", requestUrl.RawQuery))
			}
			attrs = append(attrs, slog.Group("url", urlAttrs...))
		}

		if remoteAddr := request.RemoteAddr; remoteAddr != "" {
			attrs = append(attrs, slog.Group("client", slog.String("address", remoteAddr)))
		}

		if userAgent := request.UserAgent(); userAgent != "" {
			attrs = append(attrs, slog.Group("user_agent", slog.String("original", userAgent)))
		}
	}

	httpAttrs := []any{slog.Group("request", requestAttrs...)}

	if !httpContextExtractor.SkipResponse && httpContext.StatusCode != 0 {
		responseAttrs := []any{
			slog.Int("status_code", httpContext.StatusCode),
			slog.Group("body", slog.Int64("bytes", httpContext.BodyBytes)),
		}
		if contentType := httpContext.ContentType; contentType != "" {
			responseAttrs = append(responseAttrs, slog.String("mime_type", contentType))
		}
		if contentEncoding := httpContext.ContentEncoding; contentEncoding != "" {
			responseAttrs = append(responseAttrs, slog.String("content_encoding", contentEncoding))
		}
		httpAttrs = append(httpAttrs, slog.Group("response", responseAttrs...))
	}

	attrs = append(attrs, slog.Group("http", httpAttrs...))

	if filePath := httpContext.FilePath; filePath != "" {
		attrs = append(attrs, slog.Group("file", slog.String("path", filePath)))
	}

	record.Add(attrs...)

	return nil
}
