package api

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mosaic/pkg/cache"
	"github.com/matzehuels/mosaic/pkg/observability"
	"github.com/matzehuels/mosaic/pkg/pipeline"
	"github.com/matzehuels/mosaic/pkg/scene"
)

const treemapBody = `{
  "items": [
    {"id": "a", "weight": 40},
    {"id": "b", "weight": 30},
    {"id": "c", "weight": 20},
    {"id": "d", "weight": 10}
  ],
  "options": {"width": 100, "height": 100}
}`

const mosaicBody = `{
  "items": [
    {"id": "p1", "width": 400, "height": 300},
    {"id": "p2", "width": 300, "height": 300},
    {"id": "p3", "width": 500, "height": 200}
  ],
  "options": {"width": 900}
}`

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
	Code   string          `json:"code"`
}

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(NewServer(NewRunner(c, logger), logger, opts...).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, data
}

func decodeLayout(t *testing.T, body []byte) LayoutResponse {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode envelope: %v\n%s", err, body)
	}
	if env.Status != "success" {
		t.Fatalf("status = %q, error = %q", env.Status, env.Error)
	}
	var out LayoutResponse
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	return out
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatal(err)
	}
	var health HealthResponse
	if err := json.Unmarshal(env.Data, &health); err != nil {
		t.Fatal(err)
	}
	if health.Status != "ok" || health.Build.Version == "" {
		t.Errorf("health = %+v", health)
	}
}

func TestTreemapJSON(t *testing.T) {
	srv := newTestServer(t)
	resp, body := post(t, srv, "/v1/treemap", treemapBody)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	out := decodeLayout(t, body)
	if out.ID == "" || out.ID != out.Layout.ID {
		t.Errorf("ID = %q, layout ID = %q", out.ID, out.Layout.ID)
	}
	if out.RequestID == "" {
		t.Error("request ID missing")
	}
	if out.Cached {
		t.Error("first request reported cached")
	}
	if out.Layout.Kind != scene.KindTreemap || len(out.Layout.Tiles) != 4 {
		t.Fatalf("layout = %+v", out.Layout)
	}

	a := out.Layout.Tiles[0]
	if a.ID != "a" || a.X != 0 || a.Y != 0 || math.Abs(a.Width-400.0/7) > 1e-9 || math.Abs(a.Height-70) > 1e-9 {
		t.Errorf("tile a = %+v", a)
	}
}

func TestTreemapCached(t *testing.T) {
	srv := newTestServer(t)
	_, first := post(t, srv, "/v1/treemap", treemapBody)
	_, second := post(t, srv, "/v1/treemap", treemapBody)

	a, b := decodeLayout(t, first), decodeLayout(t, second)
	if !b.Cached {
		t.Error("second identical request should hit the cache")
	}
	if a.ID != b.ID {
		t.Errorf("layout IDs differ: %s vs %s", a.ID, b.ID)
	}
}

func TestMosaicSVG(t *testing.T) {
	srv := newTestServer(t)
	resp, body := post(t, srv, "/v1/mosaic?format=svg", mosaicBody)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if resp.Header.Get("X-Layout-Id") == "" {
		t.Error("X-Layout-Id header missing")
	}
	if !strings.HasPrefix(string(body), "<svg") {
		t.Errorf("body = %.60q", body)
	}
	if !strings.Contains(string(body), `viewBox="0 0 900.0 162.5"`) {
		t.Errorf("svg does not carry the justified height: %.200s", body)
	}
}

func TestMosaicJSON(t *testing.T) {
	srv := newTestServer(t)
	_, body := post(t, srv, "/v1/mosaic", mosaicBody)
	out := decodeLayout(t, body)
	if out.Layout.Kind != scene.KindMosaic || len(out.Layout.Rows) != 1 {
		t.Fatalf("layout = %+v", out.Layout)
	}
	if math.Abs(out.Layout.Height-162.5) > 1e-9 {
		t.Errorf("height = %v, want 162.5", out.Layout.Height)
	}
}

func TestLayoutErrors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"malformed json", "/v1/treemap", `{"items": [`, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown field", "/v1/treemap", `{"itemz": []}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"negative width", "/v1/treemap", `{"items": [], "options": {"width": -1}}`, http.StatusBadRequest, "INVALID_SIZE"},
		{"bad algorithm", "/v1/treemap", `{"items": [], "options": {"algorithm": "spiral"}}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"zero natural size", "/v1/mosaic", `{"items": [{"width": 0, "height": 10}]}`, http.StatusBadRequest, "INVALID_SIZE"},
		{"traversal source", "/v1/mosaic", `{"items": [{"width": 1, "height": 1, "source": "../../etc/passwd"}]}`, http.StatusBadRequest, "INVALID_PATH"},
		{"bad format", "/v1/mosaic?format=png", mosaicBody, http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad style", "/v1/treemap", `{"items": [], "options": {"style": "neon"}}`, http.StatusBadRequest, "INVALID_STYLE"},
	}

	srv := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := post(t, srv, tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d: %s", resp.StatusCode, tt.status, body)
			}
			var env envelope
			if err := json.Unmarshal(body, &env); err != nil {
				t.Fatal(err)
			}
			if env.Status != "error" || env.Code != tt.code || env.Error == "" {
				t.Errorf("envelope = %+v, want code %s", env, tt.code)
			}
		})
	}
}

func TestBodyTooLarge(t *testing.T) {
	srv := newTestServer(t, WithMaxBodyBytes(32))
	resp, body := post(t, srv, "/v1/treemap", treemapBody)
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413: %s", resp.StatusCode, body)
	}
}

func TestEmptyItemsIsNoop(t *testing.T) {
	srv := newTestServer(t)
	_, body := post(t, srv, "/v1/treemap", `{"items": []}`)
	out := decodeLayout(t, body)
	if len(out.Layout.Tiles) != 0 {
		t.Errorf("tiles = %d, want 0", len(out.Layout.Tiles))
	}
}

func TestDefaultsApplied(t *testing.T) {
	srv := newTestServer(t, WithDefaults(pipeline.Options{Width: 320, Height: 200, Style: "outline"}))
	_, body := post(t, srv, "/v1/treemap", `{"items": [{"id": "x", "weight": 1}]}`)
	out := decodeLayout(t, body)
	if out.Layout.Width != 320 || out.Layout.Height != 200 {
		t.Errorf("container = %vx%v, want 320x200", out.Layout.Width, out.Layout.Height)
	}
	if out.Layout.Style != "outline" {
		t.Errorf("style = %q, want outline", out.Layout.Style)
	}
}

func TestRenderRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	_, body := post(t, srv, "/v1/treemap", treemapBody)

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatal(err)
	}
	var data struct {
		Layout json.RawMessage `json:"layout"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}

	req := `{"layout": ` + string(data.Layout) + `, "options": {"style": "outline"}}`
	resp, svg := post(t, srv, "/v1/render?format=svg", req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, svg)
	}
	if !strings.HasPrefix(string(svg), "<svg") {
		t.Errorf("body = %.60q", svg)
	}

	resp, doc := post(t, srv, "/v1/render", `{"layout": `+string(data.Layout)+`}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, doc)
	}
	l, err := scene.Unmarshal(doc)
	if err != nil {
		t.Fatalf("render json: %v", err)
	}
	if len(l.Tiles) != 4 {
		t.Errorf("tiles = %d", len(l.Tiles))
	}
}

func TestRenderErrors(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name string
		body string
		code string
	}{
		{"missing layout", `{}`, "INVALID_INPUT"},
		{"bad kind", `{"layout": {"kind": "tower", "width": 1, "height": 1, "tiles": []}}`, "INVALID_KIND"},
		{"traversal", `{"layout": {"kind": "mosaic", "width": 1, "height": 1, "tiles": [{"id": "a", "x": 0, "y": 0, "width": 1, "height": 1, "source": "../x.png"}]}}`, "INVALID_PATH"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := post(t, srv, "/v1/render", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d: %s", resp.StatusCode, body)
			}
			var env envelope
			_ = json.Unmarshal(body, &env)
			if env.Code != tt.code {
				t.Errorf("code = %q, want %q", env.Code, tt.code)
			}
		})
	}
}

func TestRequestIDEchoed(t *testing.T) {
	srv := newTestServer(t)
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set("X-Request-Id", "trace-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("X-Request-Id"); got != "trace-123" {
		t.Errorf("X-Request-Id = %q", got)
	}

	resp, err = http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("X-Request-Id"); len(got) != 36 {
		t.Errorf("generated request ID = %q, want a UUID", got)
	}
}

func TestNotFound(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/v1/spiral")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound && resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

type httpRecorder struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	statuses []int
}

func (h *httpRecorder) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	h.statuses = append(h.statuses, status)
	h.mu.Unlock()
}

func TestHTTPHooks(t *testing.T) {
	rec := &httpRecorder{}
	observability.SetHTTPHooks(rec)
	defer observability.Reset()

	srv := newTestServer(t)
	post(t, srv, "/v1/treemap", `{"items": [`)
	post(t, srv, "/v1/treemap", treemapBody)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.statuses) != 2 || rec.statuses[0] != 400 || rec.statuses[1] != 200 {
		t.Errorf("statuses = %v, want [400 200]", rec.statuses)
	}
}
