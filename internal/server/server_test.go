package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/creativeforge/pkg/cache"
	"github.com/matzehuels/creativeforge/pkg/observability"
	"github.com/matzehuels/creativeforge/pkg/pipeline"
	"github.com/matzehuels/creativeforge/pkg/scene"
)

func newTestServer(t *testing.T, opts Options) (*Server, *cache.MemoryCache) {
	t.Helper()
	c, err := cache.NewMemoryCache(64)
	if err != nil {
		t.Fatal(err)
	}
	runner := pipeline.NewRunner(c, nil, log.New(io.Discard))
	if opts.Ingestor == nil {
		opts.Ingestor = pipeline.NewCacheIngestor(c, nil)
	}
	return New(runner, opts), c
}

func squareScene() scene.Scene {
	s := scene.New(1080, 1080)
	s.Background = "#ffffff"
	return s.With(
		scene.NewImage("packshot", "asset://abc", scene.RoleProduct, 390, 390, 300, 300),
		scene.NewImage("logo", "asset://logo", scene.RoleLogo, 40, 40, 120, 60),
		scene.NewText("headline", "Summer Sale", "#1a73e8", 100, 80, 600, 80),
	)
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, Options{})
	rec := do(t, srv.Handler(), http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	got := decode[healthResponse](t, rec)
	if got.Status != "healthy" || got.Service != ServiceName {
		t.Errorf("health = %+v", got)
	}
}

func TestFormats(t *testing.T) {
	srv, _ := newTestServer(t, Options{})
	rec := do(t, srv.Handler(), http.MethodGet, "/api/formats", nil)
	got := decode[formatsResponse](t, rec)
	if len(got.Formats) != 5 {
		t.Fatalf("len(formats) = %d, want 5", len(got.Formats))
	}
	if got.Formats[0].Key != "facebook_feed" {
		t.Errorf("first format = %q, want facebook_feed", got.Formats[0].Key)
	}
}

func TestValidate(t *testing.T) {
	srv, _ := newTestServer(t, Options{})
	h := srv.Handler()

	for _, path := range []string{"/api/compliance/validate", "/api/creative/validate-compliance"} {
		t.Run(path, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, path, map[string]any{"canvasState": squareScene()})
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
			}
			got := decode[validateResponse](t, rec)
			if !got.Success || got.Compliance.Score != 100 || !got.Compliance.IsCompliant {
				t.Errorf("response = %+v", got)
			}
			if got.SceneHash == "" {
				t.Error("sceneHash is empty")
			}
		})
	}
}

func TestValidateCachesReports(t *testing.T) {
	srv, _ := newTestServer(t, Options{})
	h := srv.Handler()
	body := map[string]any{"scene": squareScene()}

	first := decode[validateResponse](t, do(t, h, http.MethodPost, "/api/compliance/validate", body))
	second := decode[validateResponse](t, do(t, h, http.MethodPost, "/api/compliance/validate", body))
	if first.Cached || !second.Cached {
		t.Errorf("cached = %v then %v, want false then true", first.Cached, second.Cached)
	}
}

func TestValidateGuidelines(t *testing.T) {
	srv, _ := newTestServer(t, Options{})
	body := map[string]any{
		"scene":      squareScene(),
		"guidelines": map[string]any{"minContrastRatio": 7},
	}
	rec := do(t, srv.Handler(), http.MethodPost, "/api/compliance/validate", body)
	got := decode[validateResponse](t, rec)
	if len(got.Compliance.Recommendations) != 1 {
		t.Errorf("recommendations = %+v, want one contrast recommendation", got.Compliance.Recommendations)
	}
}

func TestValidateErrors(t *testing.T) {
	srv, _ := newTestServer(t, Options{})
	h := srv.Handler()

	bad := squareScene()
	bad.Width = 0

	tests := []struct {
		name     string
		body     any
		wantCode string
	}{
		{"malformed json", `{"scene": `, "INVALID_INPUT"},
		{"no scene", map[string]any{}, "INVALID_INPUT"},
		{"invalid scene", map[string]any{"scene": bad}, "INVALID_SCENE"},
		{"invalid guidelines", map[string]any{"scene": squareScene(), "guidelines": map[string]any{"minLogoAreaPx2": -1}}, "INVALID_GUIDELINES"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/compliance/validate", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			got := decode[errorResponse](t, rec)
			if got.Success || got.Code != tt.wantCode || got.Error == "" {
				t.Errorf("error = %+v, want code %s", got, tt.wantCode)
			}
		})
	}
}

func TestBodyTooLarge(t *testing.T) {
	srv, _ := newTestServer(t, Options{MaxBodyBytes: 16})
	rec := do(t, srv.Handler(), http.MethodPost, "/api/compliance/validate", map[string]any{"scene": squareScene()})
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestAdapt(t *testing.T) {
	srv, _ := newTestServer(t, Options{})
	body := map[string]any{"scene": squareScene(), "formats": []string{"instagram_story", "facebook_feed"}}
	rec := do(t, srv.Handler(), http.MethodPost, "/api/creative/adapt", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	got := decode[adaptResponse](t, rec)
	if len(got.Variants) != 2 {
		t.Fatalf("len(variants) = %d, want 2", len(got.Variants))
	}

	// Registry order, not request order.
	feed := got.Variants[0]
	if feed.Format.Key != "facebook_feed" {
		t.Fatalf("variants[0] = %s, want facebook_feed", feed.Format.Key)
	}
	if feed.Scene.Width != 1080 || feed.Scene.Height != 567 {
		t.Errorf("feed canvas = %vx%v, want 1080x567", feed.Scene.Width, feed.Scene.Height)
	}
	p, _ := feed.Scene.Find("packshot")
	if p.X != 390 || p.Y != 133.5 {
		t.Errorf("packshot = (%v, %v), want (390, 133.5)", p.X, p.Y)
	}
	if feed.Report.Score != 100 {
		t.Errorf("feed score = %d, want 100", feed.Report.Score)
	}
}

func TestAdaptErrors(t *testing.T) {
	srv, _ := newTestServer(t, Options{})
	h := srv.Handler()

	rec := do(t, h, http.MethodPost, "/api/creative/adapt", map[string]any{"scene": squareScene(), "formats": []string{"tiktok"}})
	if rec.Code != http.StatusBadRequest || decode[errorResponse](t, rec).Code != "INVALID_FORMAT" {
		t.Errorf("unknown format: status %d", rec.Code)
	}
	rec = do(t, h, http.MethodPost, "/api/creative/adapt", map[string]any{"formats": []string{"linkedin"}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing scene: status %d, want 400", rec.Code)
	}
}

func multipartUpload(t *testing.T, field, filename string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = fw.Write(data)
	_ = mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/api/creative/upload-image", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestUpload(t *testing.T) {
	srv, c := newTestServer(t, Options{})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, multipartUpload(t, "image", "packshot.png", pngBytes(t, 32, 24)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	got := decode[uploadResponse](t, rec)
	if !strings.HasPrefix(got.SourceRef, pipeline.AssetScheme) {
		t.Errorf("sourceRef = %q", got.SourceRef)
	}
	if got.Width != 32 || got.Height != 24 || got.Format != "png" || got.Filename != "packshot.png" {
		t.Errorf("upload = %+v", got)
	}
	if c.Len() != 1 {
		t.Errorf("cache entries = %d, want 1", c.Len())
	}
}

func TestUploadErrors(t *testing.T) {
	srv, _ := newTestServer(t, Options{})
	h := srv.Handler()

	tests := []struct {
		name   string
		req    *http.Request
		status int
	}{
		{"wrong field", multipartUpload(t, "file", "a.png", pngBytes(t, 2, 2)), http.StatusBadRequest},
		{"not an image", multipartUpload(t, "image", "a.txt", []byte("hello")), http.StatusUnsupportedMediaType},
		{"not multipart", httptest.NewRequest(http.MethodPost, "/api/creative/upload-image", strings.NewReader("x")), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, tt.req)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body)
			}
		})
	}
}

func TestUploadTooLarge(t *testing.T) {
	srv, _ := newTestServer(t, Options{MaxUploadBytes: 64})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, multipartUpload(t, "image", "big.png", bytes.Repeat([]byte{1}, 200)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t, Options{})
	req := httptest.NewRequest(http.MethodOptions, "/api/compliance/validate", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Allow-Origin = %q", got)
	}
}

func TestNotFound(t *testing.T) {
	srv, _ := newTestServer(t, Options{})
	rec := do(t, srv.Handler(), http.MethodGet, "/api/unknown", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu        sync.Mutex
	requested []string
	routes    []string
	status    []int
}

func (h *recordingHTTPHooks) OnRequest(_ context.Context, _, route string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.requested = append(h.requested, route)
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, route)
	h.status = append(h.status, status)
}

func TestObserveReportsRoutePattern(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	srv, _ := newTestServer(t, Options{})
	h := srv.Handler()
	do(t, h, http.MethodPost, "/api/compliance/validate", map[string]any{"scene": squareScene()})
	do(t, h, http.MethodGet, "/health", nil)
	do(t, h, http.MethodGet, "/api/designs/42", nil)

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	want := []string{"/api/compliance/validate", "/health", "unmatched"}
	if !reflect.DeepEqual(hooks.routes, want) {
		t.Errorf("OnResponse routes = %v, want %v", hooks.routes, want)
	}
	if !reflect.DeepEqual(hooks.requested, want) {
		t.Errorf("OnRequest routes = %v, want %v", hooks.requested, want)
	}
	if hooks.status[0] != http.StatusOK || hooks.status[2] != http.StatusNotFound {
		t.Errorf("status = %v, want [200 200 404]", hooks.status)
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	srv, _ := newTestServer(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe() did not return after cancel")
	}
}
