package mediagate

import (
	"fmt"

	"github.com/davidbyttow/govips/v2/vips"
)

// StartupVips initialises the libvips runtime. Call once at application
// start before serving requests with the vips codec. concurrency controls
// the libvips worker threads (0 = auto).
func StartupVips(concurrency int) {
	vips.LoggingSettings(nil, vips.LogLevelWarning)
	vips.Startup(&vips.Config{
		ConcurrencyLevel: concurrency,
		MaxCacheSize:     100,
		MaxCacheMem:      50 * 1024 * 1024, // 50MB
	})
}

// ShutdownVips releases libvips resources at application shutdown.
func ShutdownVips() {
	vips.Shutdown()
}

// vipsCodec backs the ImageCodec interface with libvips. It is the default
// codec: the only one that encodes all four output formats.
type vipsCodec struct{}

// NewVipsCodec returns the libvips-backed codec. StartupVips must have been
// called first.
func NewVipsCodec() ImageCodec {
	return vipsCodec{}
}

type vipsRaster struct {
	ref *vips.ImageRef
}

func (r vipsRaster) Width() int  { return r.ref.Width() }
func (r vipsRaster) Height() int { return r.ref.Height() }
func (r vipsRaster) Close()      { r.ref.Close() }

func (vipsCodec) Decode(data []byte) (Raster, error) {
	ref, err := vips.NewImageFromBuffer(data)
	if err != nil {
		return nil, err
	}
	return vipsRaster{ref: ref}, nil
}

func (vipsCodec) Resize(r Raster, width int) (Raster, error) {
	vr, ok := r.(vipsRaster)
	if !ok {
		return nil, fmt.Errorf("raster is not from this codec")
	}
	scale := float64(width) / float64(vr.ref.Width())
	if err := vr.ref.Resize(scale, vips.KernelLanczos3); err != nil {
		return nil, err
	}
	return vr, nil
}

func (vipsCodec) Encode(r Raster, format OutputFormat, quality int) ([]byte, error) {
	vr, ok := r.(vipsRaster)
	if !ok {
		return nil, fmt.Errorf("raster is not from this codec")
	}
	switch format {
	case FormatJpeg:
		params := vips.NewJpegExportParams()
		params.Quality = quality
		params.StripMetadata = true
		buf, _, err := vr.ref.ExportJpeg(params)
		return buf, err
	case FormatWebp:
		params := vips.NewWebpExportParams()
		params.Quality = quality
		params.Lossless = false
		params.StripMetadata = true
		buf, _, err := vr.ref.ExportWebp(params)
		return buf, err
	case FormatAvif:
		params := vips.NewAvifExportParams()
		params.Quality = quality
		params.Lossless = false
		buf, _, err := vr.ref.ExportAvif(params)
		return buf, err
	case FormatPng:
		buf, _, err := vr.ref.ExportPng(vips.NewPngExportParams())
		return buf, err
	default:
		return nil, fmt.Errorf("unknown output format %d", format)
	}
}
