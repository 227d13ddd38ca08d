package caching

import (
	"fmt"
	"net/http"
	"time"

	bundleServerErrors "github.com/Motmedel/bundle_server/pkg/errors"
)

// IfModifiedSinceCacheHit reports whether a resource last modified at lastModified is unchanged since the
// If-Modified-Since value. HTTP dates have a one-second resolution, so lastModified is truncated before comparing.
func IfModifiedSinceCacheHit(ifModifiedSinceValue string, lastModified time.Time) (bool, error) {
	if ifModifiedSinceValue == "" || lastModified.IsZero() || lastModified.Unix() == 0 {
		return false, nil
	}

	ifModifiedSinceTimestamp, err := http.ParseTime(ifModifiedSinceValue)
	if err != nil {
		return false, bundleServerErrors.New(
			fmt.Errorf("http parse time (If-Modified-Since): %w", err),
			ifModifiedSinceValue,
		)
	}

	return !lastModified.Truncate(time.Second).After(ifModifiedSinceTimestamp), nil
}

func FormatLastModified(lastModified time.Time) string {
	return lastModified.UTC().Format(http.TimeFormat)
}
