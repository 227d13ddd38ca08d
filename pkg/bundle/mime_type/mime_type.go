package mime_type

import (
	"cmp"
	"mime"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Motmedel/bundle_server/pkg/bundle/content_encoding"
)

const DefaultMediaType = "application/octet-stream"

type Override struct {
	Suffix    string
	MediaType string
}

// Overrides are the media types of Unity WebGL build outputs, which the standard extension table either lacks or
// gets wrong for their compressed variants.
var Overrides = []*Override{
	{Suffix: ".unityweb", MediaType: "application/octet-stream"},
	{Suffix: ".wasm", MediaType: "application/wasm"},
	{Suffix: ".wasm.gz", MediaType: "application/wasm"},
	{Suffix: ".wasm.br", MediaType: "application/wasm"},
	{Suffix: ".js.gz", MediaType: "application/javascript"},
	{Suffix: ".js.br", MediaType: "application/javascript"},
	{Suffix: ".data", MediaType: "application/octet-stream"},
	{Suffix: ".data.gz", MediaType: "application/octet-stream"},
	{Suffix: ".data.br", MediaType: "application/octet-stream"},
	{Suffix: ".symbols.json", MediaType: "application/json"},
	{Suffix: ".symbols.json.gz", MediaType: "application/json"},
	{Suffix: ".symbols.json.br", MediaType: "application/json"},
}

// Longest suffix first, so that a compound suffix wins over any shorter entry it ends with.
var orderedOverrides = func() []*Override {
	ordered := slices.Clone(Overrides)
	slices.SortStableFunc(ordered, func(a, b *Override) int {
		return cmp.Compare(len(b.Suffix), len(a.Suffix))
	})
	return ordered
}()

// Lookup matches the path against the override table only.
func Lookup(path string) (string, bool) {
	lowerPath := strings.ToLower(path)
	for _, override := range orderedOverrides {
		if strings.HasSuffix(lowerPath, override.Suffix) {
			return override.MediaType, true
		}
	}
	return "", false
}

func guess(path string) string {
	extension := strings.ToLower(filepath.Ext(path))
	if extension == "" {
		return ""
	}
	return mime.TypeByExtension(extension)
}

// Get determines the Content-Type of a file: the override table, then the standard extension table (on the name
// without its content coding suffix for precompressed files), then DefaultMediaType.
func Get(path string) string {
	if mediaType, ok := Lookup(path); ok {
		return mediaType
	}

	if mediaType := guess(content_encoding.TrimSuffix(path)); mediaType != "" {
		return mediaType
	}

	return DefaultMediaType
}
