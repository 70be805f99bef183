// Package mediagate is the on-demand media transformation gateway of the
// AvisoLocal classifieds marketplace, built with Go, Echo, and libvips.
// It fetches remote source images, resizes and transcodes them on the fly,
// builds responsive srcset URLs against its own contract, and renders the
// crawler-facing social preview pages for publications.
package mediagate

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// App is the central mediagate application. It wires together the codec,
// the upstream fetcher, the publication source, middleware, and routes.
type App struct {
	Config  Config
	Echo    *echo.Echo
	Codec   ImageCodec
	Gateway GatewayClient

	fetcher      *fetcher
	publications PublicationSource
	customRoutes []func(*App)
}

// New creates a fully wired App. The returned App's Echo instance already
// carries all middleware and routes, so tests can drive it directly with
// httptest; Start only binds the listener.
func New(cfg Config, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.Codec == nil {
		a.Codec = NewVipsCodec()
	}
	a.Gateway = GatewayClient{Base: cfg.PublicBaseURL}
	a.fetcher = newFetcher(cfg.FetchTimeout, cfg.MaxSourceBytes)

	if a.publications == nil && cfg.BackendBaseURL != "" {
		a.publications = NewAPIPublicationSource(cfg.BackendBaseURL, cfg.FetchTimeout)
	}
	if a.publications != nil {
		a.publications = NewPublicationCache(a.publications, cfg.PublicationCacheTTL)
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	return a
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/healthz", handleHealthz)

	// The gateway endpoint. Stateless: every request runs its own
	// validate -> fetch -> transform -> respond pipeline.
	e.GET("/api/image", a.handleImage)

	// Crawler-facing preview pages.
	e.GET("/publicacion/:id", a.handlePreview)
	e.GET("/api/preview", a.handlePreview)
}

// Start runs the HTTP server until it is shut down.
func (a *App) Start() error {
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func handleHealthz(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
