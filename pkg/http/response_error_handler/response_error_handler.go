package response_error_handler

import (
	"context"
	"fmt"
	"log/slog"

	bundleServerContext "github.com/Motmedel/bundle_server/pkg/context"
	bundleServerErrors "github.com/Motmedel/bundle_server/pkg/errors"
	bundleServerHttpContext "github.com/Motmedel/bundle_server/pkg/http/context"
	bundleServerHttpErrors "github.com/Motmedel/bundle_server/pkg/http/errors"
	"github.com/Motmedel/bundle_server/pkg/http/problem_detail"
	"github.com/Motmedel/bundle_server/pkg/http/types/response_error"
	"github.com/Motmedel/bundle_server/pkg/http/types/response_writer"
)

// DefaultResponseErrorHandler logs the response error and, unless a response has already been started, writes its
// problem detail. The problem detail instance doubles as the id of the logged error.
func DefaultResponseErrorHandler(
	ctx context.Context,
	responseError *response_error.ResponseError,
	responseWriter *response_writer.ResponseWriter,
) {
	if responseError == nil {
		return
	}

	if responseWriter == nil {
		slog.ErrorContext(
			bundleServerContext.WithError(
				ctx,
				bundleServerErrors.NewWithTrace(bundleServerHttpErrors.ErrNilResponseWriter),
			),
			"The response writer is nil.",
		)
		return
	}

	var errorId string
	var statusCode int

	switch responseErrorType := responseError.Type(); responseErrorType {
	case response_error.ResponseErrorType_ClientError:
		defer func() {
			logCtx := ctx
			if cause := responseError.ClientError; cause != nil {
				clientError := bundleServerErrors.New(cause)
				clientError.Id = errorId
				logCtx = bundleServerContext.WithError(ctx, clientError)
			}
			slog.WarnContext(logCtx, "A client error occurred.", slog.Int("status_code", statusCode))
		}()
	case response_error.ResponseErrorType_ServerError:
		defer func() {
			logCtx := ctx
			if cause := responseError.ServerError; cause != nil {
				serverError := bundleServerErrors.New(cause)
				serverError.Id = errorId
				logCtx = bundleServerContext.WithError(ctx, serverError)
			}
			slog.ErrorContext(logCtx, "A server error occurred.", slog.Int("status_code", statusCode))
		}()
	case response_error.ResponseErrorType_Invalid:
		slog.ErrorContext(
			bundleServerContext.WithError(
				ctx,
				bundleServerErrors.NewWithTrace(bundleServerHttpErrors.ErrUnusableResponseError, responseError),
			),
			"An invalid response error type was encountered.",
		)
		return
	default:
		slog.ErrorContext(
			bundleServerContext.WithError(
				ctx,
				bundleServerErrors.NewWithTrace(
					fmt.Errorf("%w: %v", bundleServerHttpErrors.ErrUnexpectedResponseErrorType, responseErrorType),
				),
			),
			"An unexpected response error type was encountered.",
		)
		return
	}

	if responseWriter.WriteHeaderCalled {
		statusCode = responseWriter.WrittenStatusCode
		return
	}

	problemDetail, err := responseError.GetEffectiveProblemDetail()
	if err != nil {
		slog.ErrorContext(
			bundleServerContext.WithError(
				ctx,
				bundleServerErrors.New(
					fmt.Errorf("response error get effective problem detail: %w", err),
					responseError,
				),
			),
			"An error occurred when obtaining the effective response error problem detail.",
		)
		return
	}
	responseError.ProblemDetail = problemDetail
	errorId = problemDetail.Instance
	statusCode = problemDetail.Status

	response, err := responseError.MakeResponse()
	if err != nil {
		slog.ErrorContext(
			bundleServerContext.WithError(
				ctx,
				bundleServerErrors.New(fmt.Errorf("make response error response: %w", err), responseError),
			),
			"An error occurred when making a response from a response error.",
		)
		return
	}

	if err := responseWriter.WriteResponse(response); err != nil {
		slog.WarnContext(
			bundleServerContext.WithError(
				ctx,
				bundleServerErrors.New(fmt.Errorf("write response: %w", err), responseError),
			),
			"An error occurred when writing an error response.",
		)
		return
	}

	if httpContext := bundleServerHttpContext.GetHttpContext(ctx); httpContext != nil {
		httpContext.ContentType = problem_detail.ContentType
	}
}
