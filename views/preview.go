// Package views holds the HTML components mediagate renders. The only
// document in scope is the crawler-facing social preview page; everything
// a human sees lives in the marketplace frontend.
package views

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// PreviewData carries everything the preview document embeds. All text
// fields are escaped at render time; URLs are expected to be well-formed
// already (the gateway client builds the image URL, the handler builds the
// canonical URL).
type PreviewData struct {
	SiteName    string
	Title       string
	Description string
	ImageURL    string // gateway URL for the publication's display image
	ImageWidth  string // declared og:image:width, e.g. "1200"
	Canonical   string // canonical publication page URL
}

// PreviewPage renders the minimal HTML document social crawlers consume:
// Open Graph and Twitter Card metadata plus a client-side redirect to the
// canonical publication page for any human who follows the link.
func PreviewPage(d PreviewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		e := templ.EscapeString[string]

		b.WriteString("<!DOCTYPE html>\n<html lang=\"es\">\n<head>\n")
		b.WriteString("<meta charset=\"utf-8\">\n")
		b.WriteString("<title>" + e(d.Title) + "</title>\n")
		b.WriteString("<meta name=\"description\" content=\"" + e(d.Description) + "\">\n")

		b.WriteString("<meta property=\"og:type\" content=\"website\">\n")
		b.WriteString("<meta property=\"og:site_name\" content=\"" + e(d.SiteName) + "\">\n")
		b.WriteString("<meta property=\"og:title\" content=\"" + e(d.Title) + "\">\n")
		b.WriteString("<meta property=\"og:description\" content=\"" + e(d.Description) + "\">\n")
		b.WriteString("<meta property=\"og:image\" content=\"" + e(d.ImageURL) + "\">\n")
		if d.ImageWidth != "" {
			b.WriteString("<meta property=\"og:image:width\" content=\"" + e(d.ImageWidth) + "\">\n")
		}
		b.WriteString("<meta property=\"og:url\" content=\"" + e(d.Canonical) + "\">\n")

		b.WriteString("<meta name=\"twitter:card\" content=\"summary_large_image\">\n")
		b.WriteString("<meta name=\"twitter:title\" content=\"" + e(d.Title) + "\">\n")
		b.WriteString("<meta name=\"twitter:description\" content=\"" + e(d.Description) + "\">\n")
		b.WriteString("<meta name=\"twitter:image\" content=\"" + e(d.ImageURL) + "\">\n")

		b.WriteString("<link rel=\"canonical\" href=\"" + e(d.Canonical) + "\">\n")
		b.WriteString("<meta http-equiv=\"refresh\" content=\"0;url=" + e(d.Canonical) + "\">\n")
		b.WriteString("</head>\n<body>\n")
		b.WriteString("<p>Redirigiendo a <a href=\"" + e(d.Canonical) + "\">" + e(d.Title) + "</a>&hellip;</p>\n")
		// Reads the canonical link instead of embedding the URL in a JS
		// string, so no script-context escaping is needed.
		b.WriteString("<script>location.replace(document.querySelector(\"link[rel=canonical]\").href);</script>\n")
		b.WriteString("</body>\n</html>\n")

		_, err := io.WriteString(w, b.String())
		return err
	})
}
