package mediagate

import (
	"log"
	"os"
	"strings"
	"time"
)

// Config holds all configuration for the mediagate service.
type Config struct {
	Addr string // Listen address (default ":3000")

	// PublicBaseURL is the public-facing frontend base URL. The gateway is
	// reachable under it, preview pages link back into it, and the default
	// product image lives under it.
	PublicBaseURL string

	// BackendBaseURL is the marketplace backend base URL used to resolve
	// relative storage paths and to look up publications. Optional; when
	// empty, relative image paths resolve against PublicBaseURL and a
	// PublicationSource must be injected.
	BackendBaseURL string

	SiteName string // og:site_name on preview pages (default "AvisoLocal")

	FetchTimeout   time.Duration // upstream fetch timeout (default 10s)
	MaxSourceBytes int64         // upstream response cap (default 20MB)

	PublicationCacheTTL time.Duration // preview lookup cache TTL (default 5min)
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.PublicBaseURL == "" {
		c.PublicBaseURL = "http://localhost:3000"
	}
	c.PublicBaseURL = strings.TrimSuffix(c.PublicBaseURL, "/")
	c.BackendBaseURL = strings.TrimSuffix(c.BackendBaseURL, "/")
	if c.SiteName == "" {
		c.SiteName = "AvisoLocal"
	}
	if c.FetchTimeout == 0 {
		c.FetchTimeout = defaultFetchTimeout
	}
	if c.MaxSourceBytes == 0 {
		c.MaxSourceBytes = defaultMaxSourceSize
	}
	if c.PublicationCacheTTL == 0 {
		c.PublicationCacheTTL = 5 * time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCodec injects the ImageCodec the transform engine uses. The default
// is the libvips codec; tests and pure-Go builds pass NewStdCodec() or a
// stub.
func WithCodec(codec ImageCodec) Option {
	return func(a *App) {
		a.Codec = codec
	}
}

// WithPublicationSource injects the publication lookup collaborator for
// preview rendering. The default is the backend API when BackendBaseURL is
// set.
func WithPublicationSource(source PublicationSource) Option {
	return func(a *App) {
		a.publications = source
	}
}

// WithCustomRoutes registers additional routes on the Echo instance before
// the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("mediagate: required environment variable %s is not set", key)
	}
	return v
}
