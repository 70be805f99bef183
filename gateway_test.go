package mediagate

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func newTestApp(t *testing.T, opts ...Option) *App {
	t.Helper()
	opts = append([]Option{WithCodec(NewStdCodec())}, opts...)
	return New(Config{PublicBaseURL: "https://avisolocal.example"}, opts...)
}

func doRequest(t *testing.T, a *App, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func TestGatewayTransformsUpstreamImage(t *testing.T) {
	var payload []byte
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(payload)
	}))
	defer upstream.Close()

	a := newTestApp(t)
	payload = testPNG(t, 1000, 800)

	rec := doRequest(t, a, "/api/image?url="+url.QueryEscape(upstream.URL+"/photo.png")+"&w=300&fmt=jpeg&q=50")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %q)", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("Content-Type = %q, want image/jpeg", ct)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "public, max-age=86400" {
		t.Errorf("Cache-Control = %q, want public, max-age=86400", cc)
	}
	if cl := rec.Header().Get("Content-Length"); cl == "" || cl == "0" {
		t.Errorf("Content-Length = %q, want exact byte length", cl)
	}
	w, _ := decodeDims(t, rec.Body.Bytes())
	if w != 300 {
		t.Errorf("output width = %d, want 300", w)
	}
}

func TestGatewayMissingURL(t *testing.T) {
	a := newTestApp(t)
	rec := doRequest(t, a, "/api/image")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if rec.Body.String() != "Missing url" {
		t.Errorf("body = %q, want Missing url", rec.Body.String())
	}
}

func TestGatewayInvalidScheme(t *testing.T) {
	a := newTestApp(t)
	for _, raw := range []string{"ftp://host/img.png", "javascript:alert(1)"} {
		rec := doRequest(t, a, "/api/image?url="+url.QueryEscape(raw))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("url %q: status = %d, want 400", raw, rec.Code)
		}
		if rec.Body.String() != "Invalid url" {
			t.Errorf("url %q: body = %q, want Invalid url", raw, rec.Body.String())
		}
	}
}

func TestGatewayUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer upstream.Close()

	a := newTestApp(t)
	rec := doRequest(t, a, "/api/image?url="+url.QueryEscape(upstream.URL+"/missing.jpg"))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if rec.Body.String() != "Failed to fetch image" {
		t.Errorf("body = %q, want Failed to fetch image", rec.Body.String())
	}
}

func TestGatewayUndecodableUpstreamBytes(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("<html>definitely not an image</html>"))
	}))
	defer upstream.Close()

	a := newTestApp(t)
	rec := doRequest(t, a, "/api/image?url="+url.QueryEscape(upstream.URL+"/fake.jpg"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if rec.Body.String() != "Error proxying image" {
		t.Errorf("body = %q, want Error proxying image", rec.Body.String())
	}
}

func TestGatewayNoUpscaleEndToEnd(t *testing.T) {
	var payload []byte
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer upstream.Close()

	a := newTestApp(t)
	payload = testPNG(t, 400, 300)

	rec := doRequest(t, a, "/api/image?url="+url.QueryEscape(upstream.URL+"/small.png")+"&w=1920&fmt=png")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	w, h := decodeDims(t, rec.Body.Bytes())
	if w != 400 || h != 300 {
		t.Errorf("output = %dx%d, want unchanged 400x300", w, h)
	}
}

// crashingCodec panics on every operation, standing in for an unanticipated
// failure deep inside a codec backend.
type crashingCodec struct{}

func (crashingCodec) Decode([]byte) (Raster, error)                    { panic("codec crash") }
func (crashingCodec) Resize(Raster, int) (Raster, error)               { panic("codec crash") }
func (crashingCodec) Encode(Raster, OutputFormat, int) ([]byte, error) { panic("codec crash") }

func TestGatewayPanicKeepsPlainTextContract(t *testing.T) {
	var payload []byte
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer upstream.Close()

	a := New(Config{PublicBaseURL: "https://avisolocal.example"}, WithCodec(crashingCodec{}))
	payload = testPNG(t, 100, 100)

	rec := doRequest(t, a, "/api/image?url="+url.QueryEscape(upstream.URL+"/photo.png"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if rec.Body.String() != "Error proxying image" {
		t.Errorf("body = %q, want Error proxying image", rec.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	a := newTestApp(t)
	rec := doRequest(t, a, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
