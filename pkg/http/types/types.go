package types

import "net/http"

// HttpContext collects what is known about an exchange while it is handled, for logging once it completes.
type HttpContext struct {
	Request         *http.Request
	StatusCode      int
	BodyBytes       int64
	FilePath        string
	ContentType     string
	ContentEncoding string
}
