package mediagate

import (
	"errors"
	"hash/fnv"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/avisolocal/mediagate/views"
)

const (
	previewImageWidth   = 1200
	previewCacheControl = "public, max-age=300"
	defaultProductImage = "/img/default-product.jpg"
)

// handlePreview builds the crawler-facing preview document for one
// publication: Open Graph and Twitter Card metadata pointing at a gateway
// URL for the publication's display image, plus a client-side redirect to
// the canonical page.
func (a *App) handlePreview(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		id = c.QueryParam("id")
	}
	if id == "" {
		return c.String(http.StatusBadRequest, "Falta el id de la publicación")
	}
	if a.publications == nil {
		c.Logger().Error("preview: no publication source configured")
		return c.String(http.StatusInternalServerError, "Error generando vista previa")
	}

	pub, err := a.publications.GetPublication(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrPublicationNotFound) {
			return c.String(http.StatusNotFound, "Publicación no encontrada")
		}
		c.Logger().Errorf("preview %s: %v", id, err)
		return c.String(http.StatusInternalServerError, "Error generando vista previa")
	}

	source := a.resolveDisplayImage(pub)
	// Cache-bust token derived from the publication id, so a share always
	// addresses a distinct gateway URL per publication.
	imageURL := a.Gateway.URLFor(source, previewImageWidth, FormatJpeg, 0) + "&v=" + cacheBustToken(pub.ID)
	canonical := a.Config.PublicBaseURL + "/publicacion/" + id

	c.Response().Header().Set("Cache-Control", previewCacheControl)
	return Render(c, views.PreviewPage(views.PreviewData{
		SiteName:    a.Config.SiteName,
		Title:       pub.Title,
		Description: pub.Description,
		ImageURL:    imageURL,
		ImageWidth:  strconv.Itoa(previewImageWidth),
		Canonical:   canonical,
	}))
}

// resolveDisplayImage picks the publication's display image: the first
// non-empty candidate field wins; absolute http(s) URLs pass through,
// relative storage paths resolve against the backend base (frontend base
// when no backend is configured), and a publication with no image at all
// falls back to the static default product image.
func (a *App) resolveDisplayImage(pub Publication) string {
	for _, candidate := range pub.candidateImages() {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		if isHTTPURL(candidate) {
			return candidate
		}
		base := a.Config.BackendBaseURL
		if base == "" {
			base = a.Config.PublicBaseURL
		}
		return base + "/" + strings.TrimPrefix(candidate, "/")
	}
	return a.Config.PublicBaseURL + defaultProductImage
}

// cacheBustToken derives a stable short token from a publication id.
func cacheBustToken(id string) string {
	h := fnv.New32a()
	h.Write([]byte(id))
	return strconv.FormatUint(uint64(h.Sum32()), 16)
}
