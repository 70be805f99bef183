package mediagate

import (
	"fmt"
	"net/url"
	"strings"
)

// srcSetWidths is the fixed breakpoint ladder for responsive images.
var srcSetWidths = [...]int{480, 768, 1024, 1366, 1920}

// GatewayClient builds URLs against the gateway's query contract. Both the
// responsive descriptor and the preview renderer go through it, so the two
// can never drift apart on parameter names.
type GatewayClient struct {
	// Base is the public base URL the gateway is reachable under, without
	// a trailing slash, e.g. "https://avisolocal.example".
	Base string
}

// URLFor returns one gateway URL for the given source image. Width 0 omits
// the resize parameter; quality 0 omits the quality parameter (gateway
// default applies).
func (g GatewayClient) URLFor(source string, width int, format OutputFormat, quality int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s/api/image?url=%s", g.Base, url.QueryEscape(source))
	if width > 0 {
		fmt.Fprintf(&b, "&w=%d", width)
	}
	fmt.Fprintf(&b, "&fmt=%s", format)
	if quality > 0 {
		fmt.Fprintf(&b, "&q=%d", quality)
	}
	return b.String()
}

// BuildSrcSet expands a source image URL into the fixed WebP breakpoint
// ladder for an HTML srcset attribute. It returns "" when source is empty.
// No validation happens here: a malformed source passes through untouched
// and is rejected by the gateway's own validator.
func (g GatewayClient) BuildSrcSet(source string) string {
	if source == "" {
		return ""
	}
	entries := make([]string, 0, len(srcSetWidths))
	for _, w := range srcSetWidths {
		entries = append(entries, fmt.Sprintf("%s %dw", g.URLFor(source, w, FormatWebp, 0), w))
	}
	return strings.Join(entries, ", ")
}

// BuildSrc returns one WebP gateway URL at the desired width for an HTML
// src attribute, or "" if either argument is absent.
func (g GatewayClient) BuildSrc(source string, width int) string {
	if source == "" || width <= 0 {
		return ""
	}
	return g.URLFor(source, width, FormatWebp, 0)
}
