package content_encoding

import (
	"strconv"
	"strings"
)

const (
	Gzip   = "gzip"
	Brotli = "br"
)

type SuffixEncoding struct {
	Suffix string
	Coding string
}

// SuffixEncodings maps the suffix of a precompressed file onto its content coding.
var SuffixEncodings = []*SuffixEncoding{
	{Suffix: ".gz", Coding: Gzip},
	{Suffix: ".br", Coding: Brotli},
}

func match(path string) *SuffixEncoding {
	lowerPath := strings.ToLower(path)
	for _, suffixEncoding := range SuffixEncodings {
		if strings.HasSuffix(lowerPath, suffixEncoding.Suffix) {
			return suffixEncoding
		}
	}
	return nil
}

// FromPath returns the content coding implied by the file name, or the empty string for a file stored as-is.
func FromPath(path string) string {
	if suffixEncoding := match(path); suffixEncoding != nil {
		return suffixEncoding.Coding
	}
	return ""
}

// TrimSuffix removes the content coding suffix from the file name, if there is one.
func TrimSuffix(path string) string {
	if suffixEncoding := match(path); suffixEncoding != nil {
		return path[:len(path)-len(suffixEncoding.Suffix)]
	}
	return path
}

func normalizeCoding(coding string) string {
	coding = strings.ToLower(strings.TrimSpace(coding))
	switch coding {
	case "x-gzip":
		return Gzip
	}
	return coding
}

// Accepts reports whether the Accept-Encoding field values admit the coding. No field at all means any coding is
// acceptable; an empty field means only the identity coding is.
func Accepts(acceptEncodingValues []string, coding string) bool {
	if acceptEncodingValues == nil {
		return true
	}

	coding = normalizeCoding(coding)

	var wildcardQualityValue *float64
	for _, acceptEncodingValue := range acceptEncodingValues {
		for _, element := range strings.Split(acceptEncodingValue, ",") {
			parts := strings.Split(element, ";")
			elementCoding := normalizeCoding(parts[0])
			if elementCoding == "" {
				continue
			}

			qualityValue := 1.0
			for _, parameter := range parts[1:] {
				key, value, found := strings.Cut(strings.TrimSpace(parameter), "=")
				if !found || !strings.EqualFold(strings.TrimSpace(key), "q") {
					continue
				}
				if parsedQualityValue, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
					qualityValue = parsedQualityValue
				}
			}

			switch elementCoding {
			case coding:
				return qualityValue > 0
			case "*":
				wildcardQualityValue = &qualityValue
			}
		}
	}

	return wildcardQualityValue != nil && *wildcardQualityValue > 0
}
