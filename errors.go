package mediagate

import "errors"

// Pipeline failure kinds. Each stage wraps one of these sentinels so the
// response composer can map a failure to its status code with errors.Is
// instead of inspecting error strings.
var (
	// ErrMissingURL means the url query parameter was absent or empty.
	ErrMissingURL = errors.New("missing source url")

	// ErrInvalidScheme means the source URL is not an absolute http(s) URL.
	ErrInvalidScheme = errors.New("source url is not http or https")

	// ErrUpstream means the upstream fetch failed at the network level or
	// the upstream answered with a non-2xx status.
	ErrUpstream = errors.New("upstream fetch failed")

	// ErrDecode means the fetched bytes are not a decodable raster image.
	ErrDecode = errors.New("image decode failed")

	// ErrEncode means encoding to the requested output format failed.
	ErrEncode = errors.New("image encode failed")

	// ErrPublicationNotFound is returned by a PublicationSource when no
	// publication exists for the requested id.
	ErrPublicationNotFound = errors.New("publication not found")
)
