package testing

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/Motmedel/bundle_server/pkg/http/problem_detail"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type Args struct {
	Method                string
	Path                  string
	Headers               [][2]string
	Body                  []byte
	ExpectedStatusCode    int
	ExpectedHeaders       [][2]string
	ExpectedAbsentHeaders []string
	ExpectedBody          []byte
	ExpectedProblemDetail *problem_detail.Detail
	ExpectedClientDoError error
}

// NoRedirectClient returns redirect responses as they are instead of following them, and leaves the content coding
// of response bodies alone.
var NoRedirectClient = &http.Client{
	Transport: &http.Transport{DisableCompression: true},
	CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

// TestArgs performs the request described by args against the server and checks the response. The response is
// returned, with its body already read and closed, for any further checks.
func TestArgs(t *testing.T, args *Args, serverUrl string) (*http.Response, []byte) {
	t.Helper()

	if args == nil {
		t.Fatalf("args is nil")
	}

	if serverUrl == "" {
		t.Fatalf("server url is empty")
	}

	var requestBody io.Reader
	if testCaseBody := args.Body; len(testCaseBody) != 0 {
		requestBody = bytes.NewReader(testCaseBody)
	}

	request, err := http.NewRequest(args.Method, serverUrl+args.Path, requestBody)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}

	for _, header := range args.Headers {
		request.Header.Set(header[0], header[1])
	}

	response, err := NoRedirectClient.Do(request)
	if err != nil {
		if args.ExpectedClientDoError != nil && errors.Is(err, args.ExpectedClientDoError) {
			return nil, nil
		}
		t.Fatalf("http client do: %v", err)
	}
	if response == nil {
		t.Fatalf("http client do returned nil response")
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("io read all response body: %v", err)
	}

	if response.StatusCode != args.ExpectedStatusCode {
		t.Errorf("got status code %d, expected %d", response.StatusCode, args.ExpectedStatusCode)
	}

	responseHeader := response.Header
	for _, header := range args.ExpectedHeaders {
		headerValue := responseHeader.Get(header[0])
		if headerValue != header[1] {
			t.Errorf("got %q, expected header %q to be %q", headerValue, header[0], header[1])
		}
	}

	for _, name := range args.ExpectedAbsentHeaders {
		if values := responseHeader.Values(name); len(values) != 0 {
			t.Errorf("got %q, expected header %q to be absent", values, name)
		}
	}

	if expectedProblemDetail := args.ExpectedProblemDetail; expectedProblemDetail != nil {
		var problemDetail *problem_detail.Detail
		if err := json.Unmarshal(responseBody, &problemDetail); err != nil {
			t.Fatalf("json unmarshal response body: %v", err)
		}

		opts := []cmp.Option{
			cmpopts.IgnoreFields(problem_detail.Detail{}, "Type"),
			cmpopts.IgnoreFields(problem_detail.Detail{}, "Instance"),
			cmpopts.EquateEmpty(),
		}

		expectedStatusCode := args.ExpectedStatusCode
		expected := *expectedProblemDetail
		expected.Title = http.StatusText(expectedStatusCode)
		expected.Status = expectedStatusCode

		if diff := cmp.Diff(&expected, problemDetail, opts...); diff != "" {
			t.Errorf("problem detail mismatch (-expected +got):\n%s", diff)
		}
	} else if !bytes.Equal(responseBody, args.ExpectedBody) {
		t.Errorf("got response body %q, expected response body %q", responseBody, args.ExpectedBody)
	}

	return response, responseBody
}
