package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/MrSnakeDoc/seeyoulater/internal/domain"
)

func TestPlural(t *testing.T) {
	tests := []struct {
		word string
		n    int
		want string
	}{
		{"bookmarks", 0, "bookmarks"},
		{"bookmarks", 1, "bookmark"},
		{"bookmarks", 2, "bookmarks"},
		{"tags", 1, "tag"},
	}

	for _, tt := range tests {
		if got := plural(tt.word, tt.n); got != tt.want {
			t.Errorf("plural(%q, %d) = %q, want %q", tt.word, tt.n, got, tt.want)
		}
	}
}

func TestPrinter_Bookmark(t *testing.T) {
	title := "The Go Programming Language"
	desc := "Build simple, secure, scalable systems"

	tests := []struct {
		name string
		b    domain.Bookmark
		want string
	}{
		{
			name: "title tags and description",
			b: domain.Bookmark{
				URL: "https://go.dev", Title: &title, Description: &desc,
				Tags: []string{"docs", "go"},
			},
			want: "The Go Programming Language [docs,go]\nhttps://go.dev\nBuild simple, secure, scalable systems",
		},
		{
			name: "url stands in for a missing title",
			b:    domain.Bookmark{URL: "https://example.com", Tags: []string{}},
			want: "https://example.com\nhttps://example.com",
		},
	}

	p := newPrinter(&bytes.Buffer{}, false, false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.bookmark(tt.b); got != tt.want {
				t.Errorf("bookmark() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestPrinter_Colors(t *testing.T) {
	b := domain.Bookmark{URL: "https://go.dev", Tags: []string{"go"}}

	colored := newPrinter(&bytes.Buffer{}, true, false).bookmark(b)
	if !strings.Contains(colored, "\x1b[") {
		t.Errorf("expected ANSI escapes, got %q", colored)
	}

	plain := newPrinter(&bytes.Buffer{}, false, false).bookmark(b)
	if strings.Contains(plain, "\x1b[") {
		t.Errorf("expected no ANSI escapes, got %q", plain)
	}
}

func TestPrinter_Bookmarks(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf, false, false)

	list := []domain.Bookmark{
		{URL: "https://a.example", CreatedAt: time.Unix(0, 0)},
		{URL: "https://b.example", CreatedAt: time.Unix(0, 0)},
	}
	if err := p.bookmarks(list); err != nil {
		t.Fatalf("bookmarks() error = %v", err)
	}

	want := "Found 2 bookmarks.\n" +
		"https://a.example\nhttps://a.example\n" +
		"\n" +
		"https://b.example\nhttps://b.example\n"
	if buf.String() != want {
		t.Errorf("output =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestPrinter_Tags(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf, false, false)

	err := p.tags([]domain.TagCount{
		{Name: "go", Count: 3},
		{Name: "reading", Count: 1},
	})
	if err != nil {
		t.Fatalf("tags() error = %v", err)
	}

	want := "Found 2 tags.\n" +
		"go      (3 bookmarks)\n" +
		"reading (1 bookmark)\n"
	if buf.String() != want {
		t.Errorf("output =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestPrinter_JSON(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf, false, true)

	if err := p.tags([]domain.TagCount{{Name: "go", Count: 2}}); err != nil {
		t.Fatalf("tags() error = %v", err)
	}
	got := strings.Join(strings.Fields(buf.String()), "")
	if got != `[["go",2]]` {
		t.Errorf("JSON output = %s", buf.String())
	}
}
