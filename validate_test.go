package mediagate

import (
	"errors"
	"testing"
)

func TestParseTransformRequestMissingURL(t *testing.T) {
	_, err := parseTransformRequest("", "300", "webp", "50")
	if !errors.Is(err, ErrMissingURL) {
		t.Fatalf("expected ErrMissingURL, got %v", err)
	}
}

func TestParseTransformRequestRejectsNonHTTPSchemes(t *testing.T) {
	for _, raw := range []string{
		"ftp://host/img.png",
		"javascript:alert(1)",
		"file:///etc/passwd",
		"//host/img.png",
		"example.com/img.png",
	} {
		_, err := parseTransformRequest(raw, "", "", "")
		if !errors.Is(err, ErrInvalidScheme) {
			t.Errorf("url %q: expected ErrInvalidScheme, got %v", raw, err)
		}
	}
}

func TestParseTransformRequestSchemeIsCaseInsensitive(t *testing.T) {
	for _, raw := range []string{
		"http://example.com/a.jpg",
		"HTTPS://example.com/a.jpg",
		"HttP://example.com/a.jpg",
	} {
		if _, err := parseTransformRequest(raw, "", "", ""); err != nil {
			t.Errorf("url %q: unexpected error %v", raw, err)
		}
	}
}

func TestParseTransformRequestWidth(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 0},
		{"300", 300},
		{"0", 0},
		{"-5", 0},
		{"abc", 0},
		{"12.5", 0},
		{" 480 ", 480},
	}
	for _, tt := range tests {
		req, err := parseTransformRequest("https://example.com/a.jpg", tt.raw, "", "")
		if err != nil {
			t.Fatalf("width %q: unexpected error %v", tt.raw, err)
		}
		if req.Width != tt.want {
			t.Errorf("width %q = %d, want %d", tt.raw, req.Width, tt.want)
		}
	}
}

func TestParseTransformRequestQualityClamping(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 80},
		{"abc", 80},
		{"50", 50},
		{"10", 30},
		{"30", 30},
		{"90", 90},
		{"95", 90},
		{"-1", 30},
	}
	for _, tt := range tests {
		req, err := parseTransformRequest("https://example.com/a.jpg", "", "", tt.raw)
		if err != nil {
			t.Fatalf("quality %q: unexpected error %v", tt.raw, err)
		}
		if req.Quality != tt.want {
			t.Errorf("quality %q = %d, want %d", tt.raw, req.Quality, tt.want)
		}
	}
}

func TestParseTransformRequestFormatFallback(t *testing.T) {
	tests := []struct {
		raw  string
		want OutputFormat
	}{
		{"", FormatJpeg},
		{"jpeg", FormatJpeg},
		{"WEBP", FormatWebp},
		{"avif", FormatAvif},
		{"png", FormatPng},
		{"gif", FormatJpeg},
		{"bmp", FormatJpeg},
	}
	for _, tt := range tests {
		req, err := parseTransformRequest("https://example.com/a.jpg", "", tt.raw, "")
		if err != nil {
			t.Fatalf("format %q: unexpected error %v", tt.raw, err)
		}
		if req.Format != tt.want {
			t.Errorf("format %q = %v, want %v", tt.raw, req.Format, tt.want)
		}
	}
}

func TestOutputFormatMIME(t *testing.T) {
	tests := []struct {
		format OutputFormat
		want   string
	}{
		{FormatJpeg, "image/jpeg"},
		{FormatWebp, "image/webp"},
		{FormatAvif, "image/avif"},
		{FormatPng, "image/png"},
	}
	for _, tt := range tests {
		if got := tt.format.MIME(); got != tt.want {
			t.Errorf("%s.MIME() = %q, want %q", tt.format, got, tt.want)
		}
	}
}
