package response_error

import (
	"fmt"
	"net/http"
	"strconv"

	bundleServerErrors "github.com/Motmedel/bundle_server/pkg/errors"
	bundleServerHttpErrors "github.com/Motmedel/bundle_server/pkg/http/errors"
	"github.com/Motmedel/bundle_server/pkg/http/problem_detail"
	problemDetailErrors "github.com/Motmedel/bundle_server/pkg/http/problem_detail/errors"
	"github.com/Motmedel/bundle_server/pkg/http/types/response"
)

type ResponseErrorType int

const (
	ResponseErrorType_Invalid ResponseErrorType = iota
	ResponseErrorType_ClientError
	ResponseErrorType_ServerError
)

type ResponseError struct {
	ProblemDetail *problem_detail.Detail
	Headers       []*response.HeaderEntry
	ClientError   error
	ServerError   error
}

func (responseError *ResponseError) Type() ResponseErrorType {
	if responseError.ServerError != nil {
		return ResponseErrorType_ServerError
	} else if responseError.ClientError != nil {
		return ResponseErrorType_ClientError
	} else if problemDetail := responseError.ProblemDetail; problemDetail != nil {
		statusCode := problemDetail.Status
		if statusCode >= 400 && statusCode < 500 {
			return ResponseErrorType_ClientError
		} else if statusCode >= 500 && statusCode < 600 {
			return ResponseErrorType_ServerError
		}
	}

	return ResponseErrorType_Invalid
}

func (responseError *ResponseError) GetEffectiveProblemDetail() (*problem_detail.Detail, error) {
	if problemDetail := responseError.ProblemDetail; problemDetail != nil {
		return problemDetail, nil
	}

	if responseError.ClientError != nil && responseError.ServerError != nil {
		return nil, bundleServerErrors.NewWithTrace(bundleServerHttpErrors.ErrMultipleResponseErrorErrors)
	}

	if responseError.ServerError != nil {
		return problem_detail.New(http.StatusInternalServerError), nil
	}

	if responseError.ClientError != nil {
		return problem_detail.New(http.StatusBadRequest), nil
	}

	return nil, bundleServerErrors.NewWithTrace(
		fmt.Errorf(
			"%w: %w, %w",
			bundleServerHttpErrors.ErrUnusableResponseError,
			problemDetailErrors.ErrNilProblemDetail,
			bundleServerHttpErrors.ErrEmptyResponseErrorErrors,
		),
	)
}

// MakeResponse renders the problem detail as an application/problem+json response, keeping the extra headers but
// never letting them override Content-Type or Content-Length.
func (responseError *ResponseError) MakeResponse() (*response.Response, error) {
	problemDetail := responseError.ProblemDetail
	if problemDetail == nil {
		return nil, bundleServerErrors.NewWithTrace(
			fmt.Errorf(
				"%w: %w",
				bundleServerHttpErrors.ErrUnusableResponseError,
				problemDetailErrors.ErrNilProblemDetail,
			),
		)
	}

	statusCode := problemDetail.Status
	if statusCode == 0 {
		return nil, bundleServerErrors.NewWithTrace(
			fmt.Errorf(
				"%w: problem detail: %w",
				bundleServerHttpErrors.ErrUnusableResponseError,
				problemDetailErrors.ErrEmptyStatus,
			),
		)
	}

	var headers []*response.HeaderEntry
	for _, header := range responseError.Headers {
		if header == nil || header.Name == "" {
			continue
		}

		switch http.CanonicalHeaderKey(header.Name) {
		case "Content-Type", "Content-Length":
			continue
		}
		headers = append(headers, header)
	}

	body, err := problemDetail.Bytes()
	if err != nil {
		return nil, bundleServerErrors.New(fmt.Errorf("problem detail bytes: %w", err), problemDetail)
	}

	headers = append(
		headers,
		&response.HeaderEntry{Name: "Content-Type", Value: problem_detail.ContentType},
		&response.HeaderEntry{Name: "Content-Length", Value: strconv.Itoa(len(body))},
	)

	return &response.Response{StatusCode: statusCode, Body: body, Headers: headers}, nil
}
