package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wikirace/wikirace/internal/engine"
	"github.com/wikirace/wikirace/internal/fetcher"
	"github.com/wikirace/wikirace/internal/similarity"
	"github.com/wikirace/wikirace/internal/wikiurl"
)

// fakeFetcher serves a fixed adjacency list keyed by title, mirroring the
// fake used in the engine's own tests so the HTTP layer can be exercised
// without real network access.
type fakeFetcher struct {
	graph map[string][]string
}

func (f *fakeFetcher) Fetch(_ context.Context, pageURL string) *fetcher.Result {
	title := wikiurl.TitleFromURL(pageURL)
	links := f.graph[title]
	urls := make([]string, len(links))
	for i, t := range links {
		urls[i] = wikiurl.BuildURL(t)
	}
	return &fetcher.Result{PageURL: pageURL, Links: urls}
}

func chainGraph() map[string][]string {
	return map[string][]string{
		"A": {"B"},
		"B": {"C"},
		"C": {},
	}
}

func newTestServer() *Server {
	eng := engine.New(
		&fakeFetcher{graph: chainGraph()},
		similarity.NewLexical(),
		engine.Config{Timeout: time.Second, MaxDepth: 10},
	)
	cfg := DefaultConfig
	cfg.RateLimit = 100000 // effectively unlimited for tests
	cfg.RateBurst = 100000
	return New(eng, nil, nil, cfg)
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("Status = %q, want healthy", resp.Status)
	}
}

func TestHandleFindPath_GET_Success(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/path?start=A&finish=C&strategy=bfs", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp PathResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Found {
		t.Fatalf("Found = false, resp = %+v", resp)
	}
	want := []string{"A", "B", "C"}
	if len(resp.Path) != len(want) {
		t.Fatalf("Path = %v, want %v", resp.Path, want)
	}
	for i := range want {
		if resp.Path[i] != want[i] {
			t.Errorf("Path[%d] = %q, want %q", i, resp.Path[i], want[i])
		}
	}
}

func TestHandleFindPath_POST_Success(t *testing.T) {
	s := newTestServer()
	body := []byte(`{"start":"A","finish":"C","strategy":"bfs"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/path", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestHandleFindPath_MissingStart(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/path?finish=C", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleFindPath_UnknownStrategy(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/path?start=A&finish=C&strategy=quantum", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleFindPath_NotFound(t *testing.T) {
	eng := engine.New(
		&fakeFetcher{graph: map[string][]string{"A": {}, "Z": {}}},
		similarity.NewLexical(),
		engine.Config{Timeout: time.Second, MaxDepth: 10},
	)
	cfg := DefaultConfig
	cfg.RateLimit = 100000
	cfg.RateBurst = 100000
	s := New(eng, nil, nil, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/path?start=A&finish=Z", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	var resp PathResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Found {
		t.Fatal("Found = true, want false")
	}
	if resp.Kind != "not_found" {
		t.Errorf("Kind = %q, want not_found", resp.Kind)
	}
}

func TestHandleCacheStats_Unconfigured(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cache/stats", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}
