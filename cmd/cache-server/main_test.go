package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Sternrassler/cachekit/pkg/cache/memory"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	manager, err := memory.NewManager[string, []byte](memory.DefaultConfig())
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}
	return cacheHandler(manager, zerolog.Nop())
}

func TestHealthEndpoint(t *testing.T) {
	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	healthHandler(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("expected OK body, got %q", w.Body.String())
	}
}

func TestCacheHandler_PutGet(t *testing.T) {
	h := newTestHandler(t)

	put := httptest.NewRequest("PUT", "/cache/sessions/user:42", strings.NewReader("payload"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, put)
	if w.Code != http.StatusNoContent {
		t.Fatalf("PUT: expected 204, got %d", w.Code)
	}

	get := httptest.NewRequest("GET", "/cache/sessions/user:42", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, get)
	if w.Code != http.StatusOK {
		t.Fatalf("GET: expected 200, got %d", w.Code)
	}
	if w.Body.String() != "payload" {
		t.Errorf("GET: expected payload, got %q", w.Body.String())
	}
}

func TestCacheHandler_GetMiss(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("GET", "/cache/sessions/absent", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for cache miss, got %d", w.Code)
	}
}

func TestCacheHandler_DeleteKey(t *testing.T) {
	h := newTestHandler(t)

	put := httptest.NewRequest("PUT", "/cache/sessions/k", strings.NewReader("v"))
	h.ServeHTTP(httptest.NewRecorder(), put)

	del := httptest.NewRequest("DELETE", "/cache/sessions/k", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, del)
	if w.Code != http.StatusNoContent {
		t.Fatalf("DELETE: expected 204, got %d", w.Code)
	}

	get := httptest.NewRequest("GET", "/cache/sessions/k", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, get)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
}

func TestCacheHandler_ClearCache(t *testing.T) {
	h := newTestHandler(t)

	for _, key := range []string{"a", "b", "c"} {
		put := httptest.NewRequest("PUT", "/cache/sessions/"+key, strings.NewReader("v"))
		h.ServeHTTP(httptest.NewRecorder(), put)
	}

	clearReq := httptest.NewRequest("DELETE", "/cache/sessions", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, clearReq)
	if w.Code != http.StatusNoContent {
		t.Fatalf("clear: expected 204, got %d", w.Code)
	}

	for _, key := range []string{"a", "b", "c"} {
		get := httptest.NewRequest("GET", "/cache/sessions/"+key, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, get)
		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404 for %s after clear, got %d", key, w.Code)
		}
	}
}

func TestCacheHandler_BadPath(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("GET", "/cache/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing cache name, got %d", w.Code)
	}
}

func TestCacheHandler_MethodNotAllowed(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("POST", "/cache/sessions/k", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestSplitCachePath(t *testing.T) {
	tests := []struct {
		path     string
		wantName string
		wantKey  string
		wantOK   bool
	}{
		{"/cache/sessions/user:42", "sessions", "user:42", true},
		{"/cache/sessions/a/b/c", "sessions", "a/b/c", true},
		{"/cache/sessions", "sessions", "", true},
		{"/cache/", "", "", false},
		{"/other/path", "", "", false},
	}

	for _, tt := range tests {
		name, key, ok := splitCachePath(tt.path)
		if name != tt.wantName || key != tt.wantKey || ok != tt.wantOK {
			t.Errorf("splitCachePath(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.path, name, key, ok, tt.wantName, tt.wantKey, tt.wantOK)
		}
	}
}
