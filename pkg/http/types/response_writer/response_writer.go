package response_writer

import (
	"fmt"
	"net/http"
	"strconv"

	bundleServerErrors "github.com/Motmedel/bundle_server/pkg/errors"
	bundleServerHttpErrors "github.com/Motmedel/bundle_server/pkg/http/errors"
	"github.com/Motmedel/bundle_server/pkg/http/types/response"
)

// DefaultHeaders are the cross-origin headers a bundle needs for shared-memory WebAssembly.
var DefaultHeaders = []*response.HeaderEntry{
	{Name: "Access-Control-Allow-Origin", Value: "*"},
	{Name: "Access-Control-Allow-Methods", Value: "GET, OPTIONS"},
	{Name: "Access-Control-Allow-Headers", Value: "Content-Type"},
	{Name: "Cross-Origin-Opener-Policy", Value: "same-origin"},
	{Name: "Cross-Origin-Embedder-Policy", Value: "require-corp"},
}

// ResponseWriter sets its default headers on whatever response is written through it and records what was written.
type ResponseWriter struct {
	http.ResponseWriter
	IsHeadRequest     bool
	WriteHeaderCalled bool

	WrittenStatusCode int
	WrittenBodyBytes  int64

	DefaultHeaders []*response.HeaderEntry
}

func (responseWriter *ResponseWriter) WriteHeader(statusCode int) {
	if responseWriter.WriteHeaderCalled {
		return
	}

	responseWriterHeader := responseWriter.Header()
	for _, header := range responseWriter.DefaultHeaders {
		if header == nil || header.Name == "" {
			continue
		}
		responseWriterHeader.Set(header.Name, header.Value)
	}

	responseWriter.WriteHeaderCalled = true
	responseWriter.WrittenStatusCode = statusCode
	responseWriter.ResponseWriter.WriteHeader(statusCode)
}

func (responseWriter *ResponseWriter) Write(data []byte) (int, error) {
	if !responseWriter.WriteHeaderCalled {
		responseWriter.WriteHeader(http.StatusOK)
	}

	if responseWriter.IsHeadRequest || len(data) == 0 {
		return len(data), nil
	}

	n, err := responseWriter.ResponseWriter.Write(data)
	responseWriter.WrittenBodyBytes += int64(n)
	if err != nil {
		return n, fmt.Errorf("http response writer write: %w", err)
	}

	return n, nil
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (responseWriter *ResponseWriter) Unwrap() http.ResponseWriter {
	return responseWriter.ResponseWriter
}

func (responseWriter *ResponseWriter) WriteResponse(response *response.Response) error {
	if response == nil {
		return nil
	}

	if responseWriter == nil {
		return bundleServerErrors.NewWithTrace(bundleServerHttpErrors.ErrNilResponseWriter)
	}

	responseWriterHeader := responseWriter.Header()
	for _, header := range response.Headers {
		if header == nil || header.Name == "" {
			continue
		}
		responseWriterHeader.Set(header.Name, header.Value)
	}

	body := response.Body
	if responseWriterHeader.Get("Content-Length") == "" {
		responseWriterHeader.Set("Content-Length", strconv.Itoa(len(body)))
	}

	statusCode := response.StatusCode
	if statusCode == 0 {
		statusCode = http.StatusOK
	}
	responseWriter.WriteHeader(statusCode)

	if len(body) != 0 {
		if _, err := responseWriter.Write(body); err != nil {
			return fmt.Errorf("response writer write: %w", err)
		}
	}

	return nil
}
