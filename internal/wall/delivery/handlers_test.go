package delivery

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"

	"zhurnal/internal/config"
	"zhurnal/internal/journal"
	"zhurnal/internal/source"
	"zhurnal/internal/wall"
)

const sampleDoc = `{"journals":[{"Nature":"21206"},{"Science":"23571"}]}`

func newTestServer(upstreamURL string) *Server {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	cfg := &config.Config{}
	cfg.ApplyDefaults()
	cfg.Source.URL = upstreamURL
	cfg.Source.TimeoutSec = 2

	links := journal.NewLinks(cfg.Ranking)
	return &Server{
		Log:      log,
		Source:   source.New(cfg.Source, log),
		Renderer: wall.NewRenderer(links),
		Links:    links,
	}
}

func upstream(status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Mux().ServeHTTP(rec, req)
	return rec
}

func TestWallPage(t *testing.T) {
	up := upstream(http.StatusOK, sampleDoc)
	defer up.Close()

	rec := get(t, newTestServer(up.URL), "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	out := rec.Body.String()
	mustContain(t, out, "q=21206")
	mustContain(t, out, "q=23571")
	mustContain(t, out, `alt="Nature"`)
	if i, j := strings.Index(out, "q=21206"), strings.Index(out, "q=23571"); i > j {
		t.Errorf("tiles out of document order")
	}
}

func TestWallPageFilter(t *testing.T) {
	up := upstream(http.StatusOK, sampleDoc)
	defer up.Close()

	out := get(t, newTestServer(up.URL), "/?q=nature").Body.String()
	mustContain(t, out, "q=21206")
	if strings.Contains(out, "q=23571") {
		t.Errorf("filter leaked non-matching journal")
	}
}

func TestWallPageEmptyDocument(t *testing.T) {
	up := upstream(http.StatusOK, `{"journals":[]}`)
	defer up.Close()

	out := get(t, newTestServer(up.URL), "/").Body.String()
	mustContain(t, out, "No journals found.")
}

func TestWallPageUpstream404(t *testing.T) {
	up := upstream(http.StatusNotFound, "nope")
	defer up.Close()

	rec := get(t, newTestServer(up.URL), "/")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	out := rec.Body.String()
	mustContain(t, out, "HTTP 404")
	mustContain(t, out, `<div id="loading" style="display:none"`)
}

func TestWallPageUnreachable(t *testing.T) {
	up := upstream(http.StatusOK, sampleDoc)
	addr := up.URL
	up.Close()

	out := get(t, newTestServer(addr), "/").Body.String()
	mustContain(t, out, "Could not reach the journals source")
}

func TestWallPageBadFormat(t *testing.T) {
	up := upstream(http.StatusOK, `{}`)
	defer up.Close()

	out := get(t, newTestServer(up.URL), "/").Body.String()
	mustContain(t, out, "malformed")
}

func TestWallIgnoresUnmatchedPaths(t *testing.T) {
	var hits int32
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(sampleDoc))
	}))
	defer up.Close()

	rec := get(t, newTestServer(up.URL), "/favicon.ico")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if n := atomic.LoadInt32(&hits); n != 0 {
		t.Errorf("unmatched path must not hit the upstream, got %d fetches", n)
	}
}

func TestAPIJournals(t *testing.T) {
	up := upstream(http.StatusOK, sampleDoc)
	defer up.Close()

	rec := get(t, newTestServer(up.URL), "/api/journals")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Total    int `json:"total"`
		Journals []struct {
			Name      string `json:"name"`
			Code      string `json:"code"`
			SearchURL string `json:"search_url"`
			ThumbURL  string `json:"thumb_url"`
		} `json:"journals"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if resp.Total != 2 || len(resp.Journals) != 2 {
		t.Fatalf("expected 2 journals, got %+v", resp)
	}
	mustContain(t, resp.Journals[0].SearchURL, "q=21206")
	mustContain(t, resp.Journals[0].ThumbURL, "id=21206")
}

func TestAPIJournalsUpstreamError(t *testing.T) {
	up := upstream(http.StatusInternalServerError, "boom")
	defer up.Close()

	rec := get(t, newTestServer(up.URL), "/api/journals")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	mustContain(t, rec.Body.String(), `"upstream_status"`)
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer("http://localhost:0"), "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	mustContain(t, rec.Body.String(), `"ok":true`)
}

func TestShapeEmptyIsArray(t *testing.T) {
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	out, err := ShapeJournals([]journal.Record{}, journal.NewLinks(cfg.Ranking))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mustContain(t, string(out), `"journals": []`)
}

func mustContain(t *testing.T, s, sub string) {
	t.Helper()
	if !strings.Contains(s, sub) {
		t.Fatalf("expected substring %q in:\n%s", sub, s)
	}
}
