package netx

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDownload(t *testing.T) {
	image := []byte("\x89PNG fake image bytes")
	ctx := context.Background()

	t.Run("success 200 OK", func(t *testing.T) {
		var gotMethod string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			_, _ = w.Write(image)
		}))
		defer ts.Close()

		got, err := Download(ctx, ts.URL+"/meal.png", 1024)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotMethod != http.MethodGet {
			t.Fatalf("method = %q, want GET", gotMethod)
		}
		if !bytes.Equal(got, image) {
			t.Fatalf("body = %q, want %q", string(got), string(image))
		}
	})

	t.Run("non-200 -> error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer ts.Close()

		_, err := Download(ctx, ts.URL, 1024)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "download failed: 403") {
			t.Fatalf("error = %q, want to contain 403", err.Error())
		}
	})

	t.Run("body over limit", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(image)
		}))
		defer ts.Close()

		_, err := Download(ctx, ts.URL, 4)
		if !errors.Is(err, ErrTooLarge) {
			t.Fatalf("error = %v, want ErrTooLarge", err)
		}
	})

	t.Run("bad URL", func(t *testing.T) {
		if _, err := Download(ctx, "http://\x7f", 10); err == nil {
			t.Fatal("expected error for malformed URL")
		}
	})
}

func TestIsURL(t *testing.T) {
	cases := map[string]bool{
		"https://example.com/a.jpg": true,
		"http://localhost/b.png":    true,
		"/tmp/c.jpg":                false,
		"meal.jpeg":                 false,
	}
	for in, want := range cases {
		if got := IsURL(in); got != want {
			t.Errorf("IsURL(%q) = %v, want %v", in, got, want)
		}
	}
}
