package fetch

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

func TestCacheRoundTrip(t *testing.T) {
	cache, err := OpenCache(filepath.Join(t.TempDir(), "pages.db"))
	if err != nil {
		t.Fatalf("OpenCache() error: %v", err)
	}
	defer cache.Close()

	if _, ok, err := cache.Get("http://example.org/a"); err != nil || ok {
		t.Fatalf("Get() on empty cache = %v, %v; want miss", ok, err)
	}
	if err := cache.Put("http://example.org/a", []byte("body one")); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	body, ok, err := cache.Get("http://example.org/a")
	if err != nil || !ok {
		t.Fatalf("Get() after Put() = %v, %v; want hit", ok, err)
	}
	if string(body) != "body one" {
		t.Errorf("cached body = %q, want %q", body, "body one")
	}

	// Put on an existing URL replaces the stored body.
	if err := cache.Put("http://example.org/a", []byte("body two")); err != nil {
		t.Fatalf("second Put() error: %v", err)
	}
	body, _, _ = cache.Get("http://example.org/a")
	if string(body) != "body two" {
		t.Errorf("replaced body = %q, want %q", body, "body two")
	}
}

func TestGet(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		io.WriteString(w, "hello")
	}))
	defer srv.Close()

	f := New(WithRateLimit(1000))
	body, err := f.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if string(body) != "hello" {
		t.Errorf("Get() = %q, want %q", body, "hello")
	}
	if requests != 1 {
		t.Errorf("server saw %d requests, want 1", requests)
	}
}

func TestGet_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := New(WithRateLimit(1000)).Get(context.Background(), srv.URL); err == nil {
		t.Fatal("Get() should fail on HTTP 404")
	}
}

func TestGet_ServesFromCache(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		io.WriteString(w, "cached page")
	}))
	defer srv.Close()

	cache, err := OpenCache(filepath.Join(t.TempDir(), "pages.db"))
	if err != nil {
		t.Fatalf("OpenCache() error: %v", err)
	}
	defer cache.Close()

	f := New(WithCache(cache), WithRateLimit(1000))
	for i := 0; i < 3; i++ {
		body, err := f.Get(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("Get() #%d error: %v", i+1, err)
		}
		if string(body) != "cached page" {
			t.Errorf("Get() #%d = %q, want %q", i+1, body, "cached page")
		}
	}
	if requests != 1 {
		t.Errorf("server saw %d requests, want 1 with cache enabled", requests)
	}
}
