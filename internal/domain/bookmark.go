package domain

import (
	"sort"
	"strings"
	"time"
)

// Bookmark is a saved URL with its optional page metadata and tags.
//
// A Bookmark is uniquely identified by ID, and its URL is unique across
// all bookmarks of a store. Bookmarks are never edited in place.
type Bookmark struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is assigned by the store on creation.
	ID int64 `json:"id"`

	// URL is the bookmarked address, matched exactly for de-duplication.
	URL string `json:"url"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	// Title and Description come from the caller or the page itself.
	Title       *string `json:"title"`
	Description *string `json:"description"`

	// CreatedAt is set once when the bookmark is first stored.
	CreatedAt time.Time `json:"created_at"`

	// ─────────────────────────────
	// Classification
	// ─────────────────────────────

	// Tags is a set; it is always returned sorted by name.
	Tags []string `json:"tags"`
}

// Metadata is the optional page information attached to a new bookmark.
type Metadata struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// IsEmpty reports whether neither field is set.
func (m Metadata) IsEmpty() bool {
	return m.Title == nil && m.Description == nil
}

// AddRequest is the input of the add command.
type AddRequest struct {
	URL         string   `json:"url"`
	Tags        []string `json:"tags,omitempty"`
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
}

// Metadata returns the explicit metadata carried by the request.
func (r AddRequest) Metadata() Metadata {
	return Metadata{Title: r.Title, Description: r.Description}
}

// AddResult reports the stored bookmark and whether this call created it.
// Created is false when a bookmark for the URL already existed; in that
// case the tags of the request were discarded.
type AddResult struct {
	Bookmark Bookmark
	Created  bool
}

// NormalizeTags trims tag names, drops empty ones and collapses duplicates.
// The result is sorted so that equal tag sets compare equal.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return []string{}
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// StringPtr returns nil for an empty string and a pointer to s otherwise.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
