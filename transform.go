package mediagate

import (
	"fmt"
	"strings"
)

// OutputFormat is the closed set of raster formats the gateway can encode.
type OutputFormat int

const (
	FormatJpeg OutputFormat = iota
	FormatWebp
	FormatAvif
	FormatPng
)

// ParseOutputFormat maps a query-string value to an OutputFormat.
// Unknown or empty values fall back to JPEG.
func ParseOutputFormat(s string) OutputFormat {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "webp":
		return FormatWebp
	case "avif":
		return FormatAvif
	case "png":
		return FormatPng
	default:
		return FormatJpeg
	}
}

// String returns the query-string value for the format.
func (f OutputFormat) String() string {
	switch f {
	case FormatWebp:
		return "webp"
	case FormatAvif:
		return "avif"
	case FormatPng:
		return "png"
	default:
		return "jpeg"
	}
}

// MIME returns the Content-Type for the format.
func (f OutputFormat) MIME() string {
	switch f {
	case FormatWebp:
		return "image/webp"
	case FormatAvif:
		return "image/avif"
	case FormatPng:
		return "image/png"
	default:
		return "image/jpeg"
	}
}

// OutputImage is the result of one transform, consumed immediately by the
// response composer and never cached server-side.
type OutputImage struct {
	Bytes       []byte
	ContentType string
}

// transformImage decodes src, resizes it to the requested width without ever
// enlarging past the source's natural width, and encodes it per req.Format.
// PNG output is lossless; quality is ignored for it by the codec.
func transformImage(codec ImageCodec, src []byte, req TransformRequest) (OutputImage, error) {
	img, err := codec.Decode(src)
	if err != nil {
		return OutputImage{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer func() { img.Close() }()

	if req.Width > 0 && req.Width < img.Width() {
		// Resize consumes img; the returned raster is closed by the deferred
		// call above.
		resized, err := codec.Resize(img, req.Width)
		if err != nil {
			return OutputImage{}, fmt.Errorf("%w: resize: %v", ErrEncode, err)
		}
		img = resized
	}

	data, err := codec.Encode(img, req.Format, req.Quality)
	if err != nil {
		return OutputImage{}, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	return OutputImage{Bytes: data, ContentType: req.Format.MIME()}, nil
}
