package mediagate

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	_ "image/gif" // register GIF decoder

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Raster is a decoded image held by a codec between the decode, resize, and
// encode steps. Callers must Close the final raster; Resize consumes its
// input.
type Raster interface {
	Width() int
	Height() int
	Close()
}

// ImageCodec decodes, resizes, and encodes raster images. One codec is
// selected at process startup and injected into the App, so the transform
// engine never touches a concrete image library directly.
type ImageCodec interface {
	Decode(data []byte) (Raster, error)
	Resize(r Raster, width int) (Raster, error)
	Encode(r Raster, format OutputFormat, quality int) ([]byte, error)
}

// stdCodec is the pure-Go codec: stdlib decoders (plus x/image WebP) and
// Lanczos resampling via the imaging package. It cannot encode WebP or
// AVIF — there is no pure-Go encoder for either — so those formats fail
// with ErrEncode. Production deployments use the vips codec instead.
type stdCodec struct{}

// NewStdCodec returns the pure-Go codec.
func NewStdCodec() ImageCodec {
	return stdCodec{}
}

type stdRaster struct {
	img image.Image
}

func (r stdRaster) Width() int  { return r.img.Bounds().Dx() }
func (r stdRaster) Height() int { return r.img.Bounds().Dy() }
func (r stdRaster) Close()      {}

func (stdCodec) Decode(data []byte) (Raster, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return stdRaster{img: img}, nil
}

func (stdCodec) Resize(r Raster, width int) (Raster, error) {
	sr, ok := r.(stdRaster)
	if !ok {
		return nil, fmt.Errorf("raster is not from this codec")
	}
	// Height 0 preserves the aspect ratio.
	return stdRaster{img: imaging.Resize(sr.img, width, 0, imaging.Lanczos)}, nil
}

func (stdCodec) Encode(r Raster, format OutputFormat, quality int) ([]byte, error) {
	sr, ok := r.(stdRaster)
	if !ok {
		return nil, fmt.Errorf("raster is not from this codec")
	}
	var buf bytes.Buffer
	switch format {
	case FormatJpeg:
		if err := jpeg.Encode(&buf, sr.img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, err
		}
	case FormatPng:
		if err := png.Encode(&buf, sr.img); err != nil {
			return nil, err
		}
	case FormatWebp, FormatAvif:
		return nil, fmt.Errorf("%s encoding requires the vips codec", format)
	default:
		return nil, fmt.Errorf("unknown output format %d", format)
	}
	return buf.Bytes(), nil
}
