package responder

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"slices"
	"strings"

	bundleServerErrors "github.com/Motmedel/bundle_server/pkg/errors"
	bundleServerHttpContext "github.com/Motmedel/bundle_server/pkg/http/context"
	"github.com/Motmedel/bundle_server/pkg/http/types/response"
	"github.com/Motmedel/bundle_server/pkg/http/types/response_error"
	"github.com/Motmedel/bundle_server/pkg/http/types/response_writer"
)

const listingContentType = "text/html; charset=utf-8"

//go:embed templates/listing.html
var templatesFs embed.FS

var listingTemplate = template.Must(template.ParseFS(templatesFs, "templates/listing.html"))

type ListingEntry struct {
	Href        string
	DisplayName string
}

type listingData struct {
	Path    string
	Entries []*ListingEntry
}

// MakeListingEntries lists the entries of a directory sorted case-insensitively by name. Directories are marked with
// a trailing slash and symbolic links with a trailing "@" in their display names.
func MakeListingEntries(directoryPath string) ([]*ListingEntry, error) {
	dirEntries, err := os.ReadDir(directoryPath)
	if err != nil {
		return nil, bundleServerErrors.New(fmt.Errorf("os read dir: %w", err), directoryPath)
	}

	slices.SortStableFunc(dirEntries, func(a, b fs.DirEntry) int {
		return strings.Compare(strings.ToLower(a.Name()), strings.ToLower(b.Name()))
	})

	entries := make([]*ListingEntry, 0, len(dirEntries))
	for _, dirEntry := range dirEntries {
		name := dirEntry.Name()
		displayName := name
		href := url.PathEscape(name)

		if dirEntry.IsDir() {
			displayName += "/"
			href += "/"
		}
		if dirEntry.Type()&fs.ModeSymlink != 0 {
			displayName += "@"
		}

		entries = append(entries, &ListingEntry{Href: href, DisplayName: displayName})
	}

	return entries, nil
}

func (responder *Responder) serveDirectoryListing(
	ctx context.Context,
	responseWriter *response_writer.ResponseWriter,
	requestPath string,
	directoryPath string,
) *response_error.ResponseError {
	entries, err := MakeListingEntries(directoryPath)
	if err != nil {
		return makeFileResponseError(fmt.Errorf("make listing entries: %w", err))
	}

	var buffer bytes.Buffer
	if err := listingTemplate.Execute(&buffer, &listingData{Path: requestPath, Entries: entries}); err != nil {
		return &response_error.ResponseError{
			ServerError: bundleServerErrors.NewWithTrace(fmt.Errorf("template execute: %w", err), requestPath),
		}
	}

	if httpContext := bundleServerHttpContext.GetHttpContext(ctx); httpContext != nil {
		httpContext.FilePath = directoryPath
		httpContext.ContentType = listingContentType
	}

	err = responseWriter.WriteResponse(
		&response.Response{
			StatusCode: http.StatusOK,
			Headers:    []*response.HeaderEntry{{Name: "Content-Type", Value: listingContentType}},
			Body:       buffer.Bytes(),
		},
	)
	if err != nil {
		return &response_error.ResponseError{ServerError: fmt.Errorf("write response: %w", err)}
	}

	return nil
}
