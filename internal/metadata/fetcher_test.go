package metadata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MrSnakeDoc/seeyoulater/internal/domain"
)

func strOrNil(p *string) string {
	if p == nil {
		return "<nil>"
	}
	return *p
}

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantTitle string
		wantDesc  string
	}{
		{
			name:      "title and description",
			doc:       `<html><head><title> Hello &amp; welcome </title><meta name="description" content="A page"></head><body>x</body></html>`,
			wantTitle: "Hello & welcome",
			wantDesc:  "A page",
		},
		{
			name:      "og description via property, uppercase tags",
			doc:       `<HTML><HEAD><TITLE>T</TITLE><META property="og:description" content="OG"/></HEAD></HTML>`,
			wantTitle: "T",
			wantDesc:  "OG",
		},
		{
			name:      "first description wins and other meta tags are ignored",
			doc:       `<head><meta charset="utf-8"><meta name="Description" content="first"><meta name="description" content="second"></head>`,
			wantTitle: "<nil>",
			wantDesc:  "first",
		},
		{
			name:      "nothing in head",
			doc:       `<html><head></head><body><title>not this</title></body></html>`,
			wantTitle: "<nil>",
			wantDesc:  "<nil>",
		},
		{
			name:      "empty title",
			doc:       `<title>   </title>`,
			wantTitle: "<nil>",
			wantDesc:  "<nil>",
		},
		{
			name:      "truncated title",
			doc:       `<title>Half a tit`,
			wantTitle: "Half a tit",
			wantDesc:  "<nil>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.doc))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if strOrNil(got.Title) != tt.wantTitle {
				t.Errorf("Title = %q, want %q", strOrNil(got.Title), tt.wantTitle)
			}
			if strOrNil(got.Description) != tt.wantDesc {
				t.Errorf("Description = %q, want %q", strOrNil(got.Description), tt.wantDesc)
			}
		})
	}
}

func TestHTTPFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/page":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(`<title>Page</title><meta name="description" content="Desc">`))
		case "/json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewHTTPFetcher(0)
	ctx := context.Background()

	meta, err := f.Fetch(ctx, srv.URL+"/page")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if strOrNil(meta.Title) != "Page" || strOrNil(meta.Description) != "Desc" {
		t.Errorf("Fetch() = %q / %q", strOrNil(meta.Title), strOrNil(meta.Description))
	}

	if _, err := f.Fetch(ctx, srv.URL+"/missing"); err == nil {
		t.Error("Fetch() of a 404 should fail")
	}
	if _, err := f.Fetch(ctx, srv.URL+"/json"); err == nil {
		t.Error("Fetch() of a non-html page should fail")
	}
	if _, err := f.Fetch(ctx, "http://127.0.0.1:1/unreachable"); err == nil {
		t.Error("Fetch() of an unreachable host should fail")
	}
}

type memCache struct {
	data    map[string]domain.Metadata
	readErr error
	saves   int
}

func (c *memCache) GetMetadata(_ context.Context, url string) (domain.Metadata, bool, error) {
	if c.readErr != nil {
		return domain.Metadata{}, false, c.readErr
	}
	m, ok := c.data[url]
	return m, ok, nil
}

func (c *memCache) SaveMetadata(_ context.Context, url string, meta domain.Metadata) error {
	c.data[url] = meta
	c.saves++
	return nil
}

func TestCachedFetcher(t *testing.T) {
	calls := 0
	title := "fetched"
	next := FetcherFunc(func(context.Context, string) (domain.Metadata, error) {
		calls++
		return domain.Metadata{Title: &title}, nil
	})
	cache := &memCache{data: map[string]domain.Metadata{}}
	f := NewCachedFetcher(next, cache, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		meta, err := f.Fetch(ctx, "https://example.com")
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if strOrNil(meta.Title) != "fetched" {
			t.Errorf("Fetch() title = %q", strOrNil(meta.Title))
		}
	}
	if calls != 1 {
		t.Errorf("underlying fetcher called %d times, want 1", calls)
	}
	if cache.saves != 1 {
		t.Errorf("cache saved %d times, want 1", cache.saves)
	}

	// A broken cache still fetches.
	cache.readErr = errors.New("down")
	if _, err := f.Fetch(ctx, "https://example.com"); err != nil {
		t.Fatalf("Fetch() with broken cache error = %v", err)
	}
	if calls != 2 {
		t.Errorf("underlying fetcher called %d times, want 2", calls)
	}
}

func TestNewCachedFetcher_NilCache(t *testing.T) {
	next := NewHTTPFetcher(0)
	if f := NewCachedFetcher(next, nil, nil); f != Fetcher(next) {
		t.Error("NewCachedFetcher with nil cache should return next unchanged")
	}
}
