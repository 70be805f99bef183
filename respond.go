package mediagate

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

const gatewayCacheControl = "public, max-age=86400"

// respondImage writes a successful transform result: exact Content-Type and
// Content-Length, plus a day-long public cache header so browsers and CDNs
// do the caching the gateway itself never does.
func respondImage(c echo.Context, out OutputImage) error {
	h := c.Response().Header()
	h.Set("Cache-Control", gatewayCacheControl)
	h.Set(echo.HeaderContentLength, strconv.Itoa(len(out.Bytes)))
	return c.Blob(http.StatusOK, out.ContentType, out.Bytes)
}

// respondPipelineError maps a pipeline failure to its HTTP status and short
// plain-text body. Full detail is logged server-side; the caller only sees
// the generic message for the failure kind.
func respondPipelineError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, ErrMissingURL):
		return c.String(http.StatusBadRequest, "Missing url")
	case errors.Is(err, ErrInvalidScheme):
		return c.String(http.StatusBadRequest, "Invalid url")
	case errors.Is(err, ErrUpstream):
		c.Logger().Errorf("image gateway: %v", err)
		return c.String(http.StatusBadGateway, "Failed to fetch image")
	default:
		c.Logger().Errorf("image gateway: %v", err)
		return c.String(http.StatusInternalServerError, "Error proxying image")
	}
}

// httpErrorHandler keeps server errors in the gateway's plain-text contract.
// Panics recovered by the middleware arrive here as generic errors, so a
// crash anywhere in the pipeline still answers with the same short body the
// composer uses, never echo's default JSON.
func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		path := c.Request().URL.Path
		switch {
		case strings.HasPrefix(path, "/api/image"):
			_ = c.String(code, "Error proxying image")
		case strings.HasPrefix(path, "/publicacion/") || strings.HasPrefix(path, "/api/preview"):
			_ = c.String(code, "Error generando vista previa")
		default:
			_ = c.String(code, "Internal Server Error")
		}
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
