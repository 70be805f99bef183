package mediagate

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	defaultQuality = 80
	minQuality     = 30
	maxQuality     = 90
)

// TransformRequest is the normalized form of the gateway's query parameters.
// Width 0 means no resize was requested.
type TransformRequest struct {
	SourceURL string
	Width     int
	Format    OutputFormat
	Quality   int
}

// parseTransformRequest validates the source URL and normalizes the width,
// format, and quality strings taken from the query string. It is a pure
// function: bad optional parameters degrade to defaults, only the source
// URL itself can make it fail.
func parseTransformRequest(rawURL, rawWidth, rawFormat, rawQuality string) (TransformRequest, error) {
	if rawURL == "" {
		return TransformRequest{}, ErrMissingURL
	}
	if !isHTTPURL(rawURL) {
		return TransformRequest{}, fmt.Errorf("%w: %q", ErrInvalidScheme, rawURL)
	}

	return TransformRequest{
		SourceURL: rawURL,
		Width:     parseWidth(rawWidth),
		Format:    ParseOutputFormat(rawFormat),
		Quality:   parseQuality(rawQuality),
	}, nil
}

// isHTTPURL reports whether s is an absolute http:// or https:// URL,
// case-insensitive on the scheme.
func isHTTPURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// parseWidth returns the requested width, or 0 (no resize) when the value
// is absent, unparseable, or not a positive integer.
func parseWidth(s string) int {
	if s == "" {
		return 0
	}
	w, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || w <= 0 {
		return 0
	}
	return w
}

// parseQuality returns the encoder quality clamped into [30,90], defaulting
// to 80 when the value is absent or unparseable.
func parseQuality(s string) int {
	if s == "" {
		return defaultQuality
	}
	q, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return defaultQuality
	}
	return clamp(q, minQuality, maxQuality)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
