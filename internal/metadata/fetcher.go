// Package metadata extracts a page title and description for new bookmarks.
// Fetching is best effort: callers treat any error as "no metadata".
package metadata

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/MrSnakeDoc/seeyoulater/internal/domain"
)

const (
	// DefaultTimeout bounds one page fetch.
	DefaultTimeout = 5 * time.Second
	// maxBodyBytes caps how much of a page is read looking for <head> tags.
	maxBodyBytes = 1 << 20
	userAgent    = "seeyoulater/1 (+bookmark metadata)"
)

// Fetcher returns page metadata for a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (domain.Metadata, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, url string) (domain.Metadata, error)

func (f FetcherFunc) Fetch(ctx context.Context, url string) (domain.Metadata, error) {
	return f(ctx, url)
}

// Nop never fetches anything.
var Nop Fetcher = FetcherFunc(func(context.Context, string) (domain.Metadata, error) {
	return domain.Metadata{}, nil
})

// HTTPFetcher downloads a page and reads <title> and the description meta tag.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher builds a fetcher with a short-lived, non-pooled client.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout: timeout,
				}).DialContext,
				TLSHandshakeTimeout: timeout,
				TLSClientConfig: &tls.Config{
					MinVersion: tls.VersionTLS12,
				},
				DisableKeepAlives: true,
			},
		},
	}
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (domain.Metadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return domain.Metadata{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return domain.Metadata{}, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.Metadata{}, fmt.Errorf("failed to fetch %s: status %d", url, resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "html") {
		return domain.Metadata{}, fmt.Errorf("not an html page: %s", ct)
	}

	return Parse(io.LimitReader(resp.Body, maxBodyBytes))
}

// Parse reads the document title and the first description or
// og:description meta tag. Parsing stops at the end of <head>.
func Parse(r io.Reader) (domain.Metadata, error) {
	var (
		meta    domain.Metadata
		inTitle bool
		title   strings.Builder
	)

	z := html.NewTokenizer(r)
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return finish(meta, title.String()), nil
			}
			return finish(meta, title.String()), z.Err()

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			switch atom.Lookup(name) {
			case atom.Title:
				inTitle = tt == html.StartTagToken && meta.Title == nil
			case atom.Meta:
				if hasAttr && meta.Description == nil {
					meta.Description = descriptionFrom(z)
				}
			case atom.Body:
				return finish(meta, title.String()), nil
			}

		case html.TextToken:
			if inTitle {
				title.Write(z.Text())
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			switch atom.Lookup(name) {
			case atom.Title:
				if inTitle {
					inTitle = false
					meta.Title = domain.StringPtr(strings.TrimSpace(title.String()))
				}
			case atom.Head:
				return finish(meta, title.String()), nil
			}
		}
	}
}

// finish keeps a title left open by a truncated document.
func finish(meta domain.Metadata, title string) domain.Metadata {
	if meta.Title == nil {
		meta.Title = domain.StringPtr(strings.TrimSpace(title))
	}
	return meta
}

// descriptionFrom returns the content of a name/property="description" or
// "og:description" meta tag, or nil for any other meta tag.
func descriptionFrom(z *html.Tokenizer) *string {
	var (
		isDescription bool
		content       string
		hasContent    bool
	)
	for {
		key, val, more := z.TagAttr()
		switch strings.ToLower(string(key)) {
		case "name", "property":
			v := strings.ToLower(strings.TrimSpace(string(val)))
			if v == "description" || v == "og:description" {
				isDescription = true
			}
		case "content":
			content, hasContent = string(val), true
		}
		if !more {
			break
		}
	}
	if !isDescription || !hasContent {
		return nil
	}
	return domain.StringPtr(strings.TrimSpace(content))
}
