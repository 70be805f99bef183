package mediagate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultFetchTimeout  = 10 * time.Second
	defaultMaxSourceSize = 20 << 20 // 20MB
)

// upstreamImage is the raw upstream response, owned by the pipeline for the
// duration of one request and never persisted.
type upstreamImage struct {
	data        []byte
	contentType string // declared by upstream, informational only
}

// fetcher retrieves source images over HTTP. A single shared client is used
// for every request; redirects follow the client's default policy.
type fetcher struct {
	client   *http.Client
	maxBytes int64
}

func newFetcher(timeout time.Duration, maxBytes int64) *fetcher {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	if maxBytes <= 0 {
		maxBytes = defaultMaxSourceSize
	}
	return &fetcher{
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
	}
}

// Fetch issues a single GET for the validated source URL and returns the
// full response body. Any transport failure or non-2xx status is terminal;
// no retries are attempted.
func (f *fetcher) Fetch(ctx context.Context, sourceURL string) (upstreamImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return upstreamImage{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Accept", "image/*,*/*")

	resp, err := f.client.Do(req)
	if err != nil {
		return upstreamImage{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return upstreamImage{}, fmt.Errorf("%w: upstream status %d", ErrUpstream, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return upstreamImage{}, fmt.Errorf("%w: read body: %v", ErrUpstream, err)
	}
	if int64(len(data)) > f.maxBytes {
		return upstreamImage{}, fmt.Errorf("%w: source larger than %d bytes", ErrUpstream, f.maxBytes)
	}

	return upstreamImage{
		data:        data,
		contentType: resp.Header.Get("Content-Type"),
	}, nil
}
