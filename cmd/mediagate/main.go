package main

import (
	"log"
	"strconv"
	"time"

	"github.com/avisolocal/mediagate"
)

func main() {
	cfg := mediagate.Config{
		Addr:           mediagate.EnvOr("ADDR", ":3000"),
		PublicBaseURL:  mediagate.MustEnv("PUBLIC_BASE_URL"),
		BackendBaseURL: mediagate.EnvOr("BACKEND_BASE_URL", ""),
		SiteName:       mediagate.EnvOr("SITE_NAME", "AvisoLocal"),
		FetchTimeout:   durationEnv("FETCH_TIMEOUT", 10*time.Second),
		MaxSourceBytes: int64Env("MAX_SOURCE_BYTES", 20<<20),
	}

	opts := []mediagate.Option{}

	// Codec selected once at startup. vips is the default and the only
	// backend that encodes all four output formats; std is the pure-Go
	// fallback for environments without libvips.
	switch mediagate.EnvOr("IMAGE_CODEC", "vips") {
	case "std":
		opts = append(opts, mediagate.WithCodec(mediagate.NewStdCodec()))
	default:
		mediagate.StartupVips(0)
		defer mediagate.ShutdownVips()
		opts = append(opts, mediagate.WithCodec(mediagate.NewVipsCodec()))
	}

	// Without a backend API, publications come from the local sqlite store.
	if cfg.BackendBaseURL == "" {
		store, err := mediagate.NewPublicationStore(mediagate.EnvOr("PUBLICATIONS_DB", "data/publications.db"))
		if err != nil {
			log.Fatal(err)
		}
		defer store.Close()
		opts = append(opts, mediagate.WithPublicationSource(store))
	}

	app := mediagate.New(cfg, opts...)
	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	v := mediagate.EnvOr(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("mediagate: invalid %s: %v", key, err)
	}
	return d
}

func int64Env(key string, fallback int64) int64 {
	v := mediagate.EnvOr(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Fatalf("mediagate: invalid %s: %v", key, err)
	}
	return n
}
