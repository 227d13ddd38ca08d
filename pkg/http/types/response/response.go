package response

type HeaderEntry struct {
	Name  string
	Value string
}

type Response struct {
	StatusCode int
	Headers    []*HeaderEntry
	Body       []byte
}
