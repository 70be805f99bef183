package mediagate

import (
	"github.com/labstack/echo/v4"
)

// handleImage runs the four-stage transform pipeline for one request:
// validate the query parameters, fetch the source bytes, decode/resize/
// encode them, and compose the HTTP response. Nothing outlives the request.
func (a *App) handleImage(c echo.Context) error {
	req, err := parseTransformRequest(
		c.QueryParam("url"),
		c.QueryParam("w"),
		c.QueryParam("fmt"),
		c.QueryParam("q"),
	)
	if err != nil {
		return respondPipelineError(c, err)
	}

	upstream, err := a.fetcher.Fetch(c.Request().Context(), req.SourceURL)
	if err != nil {
		return respondPipelineError(c, err)
	}

	// The declared upstream content type is informational only; the codec
	// decides decodability from the bytes.
	out, err := transformImage(a.Codec, upstream.data, req)
	if err != nil {
		return respondPipelineError(c, err)
	}

	return respondImage(c, out)
}
