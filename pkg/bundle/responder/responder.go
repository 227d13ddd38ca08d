package responder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/Motmedel/bundle_server/pkg/bundle/asset_path"
	"github.com/Motmedel/bundle_server/pkg/bundle/content_encoding"
	bundleErrors "github.com/Motmedel/bundle_server/pkg/bundle/errors"
	"github.com/Motmedel/bundle_server/pkg/bundle/mime_type"
	"github.com/Motmedel/bundle_server/pkg/bundle/responder/responder_config"
	bundleServerContext "github.com/Motmedel/bundle_server/pkg/context"
	bundleServerErrors "github.com/Motmedel/bundle_server/pkg/errors"
	"github.com/Motmedel/bundle_server/pkg/http/caching"
	bundleServerHttpContext "github.com/Motmedel/bundle_server/pkg/http/context"
	bundleServerHttpErrors "github.com/Motmedel/bundle_server/pkg/http/errors"
	"github.com/Motmedel/bundle_server/pkg/http/problem_detail"
	"github.com/Motmedel/bundle_server/pkg/http/problem_detail/problem_detail_config"
	"github.com/Motmedel/bundle_server/pkg/http/response_error_handler"
	"github.com/Motmedel/bundle_server/pkg/http/types/response"
	"github.com/Motmedel/bundle_server/pkg/http/types/response_error"
	"github.com/Motmedel/bundle_server/pkg/http/types/response_writer"
	"go.uber.org/multierr"
)

const AllowedMethods = "GET, HEAD, OPTIONS"

// Responder serves the files below a root directory with the media types, content codings and cross-origin headers
// that precompiled web bundles need. It holds no mutable state; one value serves any number of concurrent requests.
type Responder struct {
	RootDirectory string
	Config        *responder_config.Config
}

func New(rootDirectory string, options ...responder_config.Option) (*Responder, error) {
	if rootDirectory == "" {
		return nil, bundleServerErrors.NewWithTrace(bundleErrors.ErrEmptyRootDirectory)
	}

	absoluteRootDirectory, err := filepath.Abs(rootDirectory)
	if err != nil {
		return nil, bundleServerErrors.NewWithTrace(fmt.Errorf("filepath abs: %w", err), rootDirectory)
	}

	realRootDirectory, err := filepath.EvalSymlinks(absoluteRootDirectory)
	if err != nil {
		return nil, bundleServerErrors.NewWithTrace(
			fmt.Errorf("filepath eval symlinks: %w", err),
			absoluteRootDirectory,
		)
	}

	info, err := os.Stat(realRootDirectory)
	if err != nil {
		return nil, bundleServerErrors.NewWithTrace(fmt.Errorf("os stat: %w", err), realRootDirectory)
	}
	if !info.IsDir() {
		return nil, bundleServerErrors.NewWithTrace(bundleErrors.ErrNotDirectory, realRootDirectory)
	}

	return &Responder{RootDirectory: realRootDirectory, Config: responder_config.New(options...)}, nil
}

func (responder *Responder) config() *responder_config.Config {
	if config := responder.Config; config != nil {
		return config
	}
	return responder_config.New()
}

func (responder *Responder) ServeHTTP(originalResponseWriter http.ResponseWriter, request *http.Request) {
	ctx := context.Background()
	if request != nil {
		ctx = request.Context()
	}

	responseWriter := &response_writer.ResponseWriter{
		ResponseWriter: originalResponseWriter,
		IsHeadRequest:  request != nil && request.Method == http.MethodHead,
		DefaultHeaders: response_writer.DefaultHeaders,
	}

	if responseError := responder.respond(ctx, responseWriter, request); responseError != nil {
		response_error_handler.DefaultResponseErrorHandler(ctx, responseError, responseWriter)
	}
}

func makeFileResponseError(err error) *response_error.ResponseError {
	switch {
	case errors.Is(err, bundleErrors.ErrOutsideRoot):
		return &response_error.ResponseError{
			ClientError:   err,
			ProblemDetail: problem_detail.New(http.StatusForbidden),
		}
	case errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission),
		errors.Is(err, syscall.ENOTDIR),
		errors.Is(err, syscall.ENAMETOOLONG),
		errors.Is(err, bundleErrors.ErrInvalidPath):
		return &response_error.ResponseError{
			ClientError:   err,
			ProblemDetail: problem_detail.New(http.StatusNotFound),
		}
	default:
		return &response_error.ResponseError{ServerError: err}
	}
}

func (responder *Responder) respond(
	ctx context.Context,
	responseWriter *response_writer.ResponseWriter,
	request *http.Request,
) *response_error.ResponseError {
	if request == nil {
		return &response_error.ResponseError{
			ServerError: bundleServerErrors.NewWithTrace(bundleServerHttpErrors.ErrNilHttpRequest),
		}
	}

	allowHeaders := []*response.HeaderEntry{{Name: "Allow", Value: AllowedMethods}}

	switch method := request.Method; method {
	// "For client requests, an empty string means GET."
	case http.MethodGet, http.MethodHead, "":
	case http.MethodOptions:
		if err := responseWriter.WriteResponse(
			&response.Response{StatusCode: http.StatusOK, Headers: allowHeaders},
		); err != nil {
			return &response_error.ResponseError{ServerError: fmt.Errorf("write response: %w", err)}
		}
		return nil
	default:
		return &response_error.ResponseError{
			ProblemDetail: problem_detail.New(
				http.StatusMethodNotAllowed,
				problem_detail_config.WithDetail(fmt.Sprintf("Expected %s; observed %q.", AllowedMethods, method)),
			),
			Headers: allowHeaders,
		}
	}

	requestUrl := request.URL
	if requestUrl == nil {
		return &response_error.ResponseError{
			ServerError: bundleServerErrors.NewWithTrace(bundleServerHttpErrors.ErrNilHttpRequestUrl),
		}
	}
	requestPath := requestUrl.Path

	resolvedPath, err := asset_path.Resolve(responder.RootDirectory, requestPath)
	if err != nil {
		return makeFileResponseError(fmt.Errorf("asset path resolve: %w", err))
	}

	realPath, err := asset_path.ResolveReal(responder.RootDirectory, resolvedPath)
	if err != nil {
		return makeFileResponseError(fmt.Errorf("asset path resolve real: %w", err))
	}

	info, err := os.Stat(realPath)
	if err != nil {
		return makeFileResponseError(bundleServerErrors.New(fmt.Errorf("os stat: %w", err), realPath))
	}

	config := responder.config()

	if !info.IsDir() && strings.HasSuffix(requestPath, "/") {
		return makeFileResponseError(
			bundleServerErrors.NewWithTrace(fmt.Errorf("%w: trailing slash", syscall.ENOTDIR), requestPath),
		)
	}

	if info.IsDir() {
		if !strings.HasSuffix(requestPath, "/") {
			return responder.redirectToDirectory(responseWriter, requestUrl.Path, requestUrl.RawQuery)
		}

		indexPath, ok := responder.findIndexFile(realPath)
		if !ok {
			if !config.DirectoryListing {
				return &response_error.ResponseError{
					ClientError:   bundleServerErrors.NewWithTrace(bundleErrors.ErrNoIndexFile, requestPath),
					ProblemDetail: problem_detail.New(http.StatusNotFound),
				}
			}
			return responder.serveDirectoryListing(ctx, responseWriter, requestPath, realPath)
		}
		realPath = indexPath
	}

	return responder.serveFile(ctx, responseWriter, request, realPath)
}

// redirectToDirectory sends a relative redirect to the slash-terminated form of a directory path, against which a
// browser resolves the relative URLs of an index document.
func (responder *Responder) redirectToDirectory(
	responseWriter *response_writer.ResponseWriter,
	requestPath string,
	rawQuery string,
) *response_error.ResponseError {
	location := "./" + url.PathEscape(path.Base(requestPath)) + "/"
	if rawQuery != "" {
		location += "?" + rawQuery
	}

	err := responseWriter.WriteResponse(
		&response.Response{
			StatusCode: http.StatusMovedPermanently,
			Headers:    []*response.HeaderEntry{{Name: "Location", Value: location}},
		},
	)
	if err != nil {
		return &response_error.ResponseError{ServerError: fmt.Errorf("write response: %w", err)}
	}

	return nil
}

func (responder *Responder) findIndexFile(directoryPath string) (string, bool) {
	for _, indexFile := range responder.config().IndexFiles {
		if indexFile == "" {
			continue
		}

		indexPath := filepath.Join(directoryPath, indexFile)
		realIndexPath, err := asset_path.ResolveReal(responder.RootDirectory, indexPath)
		if err != nil {
			continue
		}

		if info, err := os.Stat(realIndexPath); err == nil && info.Mode().IsRegular() {
			return realIndexPath, true
		}
	}

	return "", false
}

func (responder *Responder) serveFile(
	ctx context.Context,
	responseWriter *response_writer.ResponseWriter,
	request *http.Request,
	filePath string,
) *response_error.ResponseError {
	file, err := os.Open(filePath)
	if err != nil {
		return makeFileResponseError(bundleServerErrors.New(fmt.Errorf("os open: %w", err), filePath))
	}

	if err := responder.writeFile(ctx, responseWriter, request, file); err != nil {
		if ctx.Err() != nil {
			// The client went away mid-stream; nothing is wrong with the server.
			return &response_error.ResponseError{ClientError: err}
		}
		return makeFileResponseError(err)
	}

	return nil
}

func (responder *Responder) writeFile(
	ctx context.Context,
	responseWriter *response_writer.ResponseWriter,
	request *http.Request,
	file *os.File,
) (err error) {
	defer multierr.AppendInvoke(&err, multierr.Close(file))

	filePath := file.Name()

	info, err := file.Stat()
	if err != nil {
		return bundleServerErrors.New(fmt.Errorf("file stat: %w", err), filePath)
	}
	if !info.Mode().IsRegular() {
		return bundleServerErrors.NewWithTrace(fmt.Errorf("%w: not a regular file", fs.ErrNotExist), filePath)
	}

	contentType := mime_type.Get(filePath)
	contentEncoding := content_encoding.FromPath(filePath)

	if httpContext := bundleServerHttpContext.GetHttpContext(ctx); httpContext != nil {
		httpContext.FilePath = filePath
		httpContext.ContentType = contentType
		httpContext.ContentEncoding = contentEncoding
	}

	if contentEncoding != "" && !content_encoding.Accepts(request.Header.Values("Accept-Encoding"), contentEncoding) {
		slog.WarnContext(
			ctx,
			"The client has not declared support for the content encoding of the file; it is served as stored.",
			slog.String("content_encoding", contentEncoding),
		)
	}

	header := responseWriter.Header()

	lastModified := info.ModTime()
	if !lastModified.IsZero() && lastModified.Unix() != 0 {
		header.Set("Last-Modified", caching.FormatLastModified(lastModified))
	}

	ifModifiedSince := request.Header.Get("If-Modified-Since")
	isCached, cacheErr := caching.IfModifiedSinceCacheHit(ifModifiedSince, lastModified)
	if cacheErr != nil {
		slog.DebugContext(
			bundleServerContext.WithError(ctx, cacheErr),
			"An unusable If-Modified-Since value was ignored.",
		)
	}
	if isCached {
		responseWriter.WriteHeader(http.StatusNotModified)
		return nil
	}

	size := info.Size()

	header.Set("Content-Type", contentType)
	if contentEncoding != "" {
		header.Set("Content-Encoding", contentEncoding)
	}
	header.Set("Content-Length", strconv.FormatInt(size, 10))
	responseWriter.WriteHeader(http.StatusOK)

	if responseWriter.IsHeadRequest {
		return nil
	}

	// The limit hides the file's WriterTo, so the copy goes through the bounded buffer, and keeps a growing file
	// from overrunning the announced Content-Length.
	buffer := make([]byte, responder.config().CopyBufferSize)
	written, err := io.CopyBuffer(responseWriter, io.LimitReader(file, size), buffer)
	if err != nil {
		return bundleServerErrors.New(fmt.Errorf("io copy buffer: %w", err), filePath)
	}
	if written != size {
		return bundleServerErrors.NewWithTrace(
			fmt.Errorf("%w: wrote %d of %d bytes", bundleErrors.ErrShortCopy, written, size),
			filePath,
		)
	}

	return nil
}
