package domain

import (
	"encoding/json"
	"fmt"
)

// MatchMode selects how a tag filter is applied to a search.
type MatchMode int

const (
	// MatchAny keeps bookmarks holding at least one of the requested tags.
	MatchAny MatchMode = iota
	// MatchAll keeps bookmarks holding every requested tag.
	MatchAll
)

func (m MatchMode) String() string {
	switch m {
	case MatchAny:
		return "any"
	case MatchAll:
		return "all"
	default:
		return fmt.Sprintf("MatchMode(%d)", int(m))
	}
}

// MatchModeFromAllTags maps the wire-level all_tags flag to a MatchMode.
func MatchModeFromAllTags(allTags bool) MatchMode {
	if allTags {
		return MatchAll
	}
	return MatchAny
}

// SearchQuery filters bookmarks. A nil Query and empty Tags match everything.
type SearchQuery struct {
	Query *string
	Tags  []string
	Match MatchMode
}

// TagsQuery controls tag listing order.
type TagsQuery struct {
	SortByCount bool
	Reverse     bool
}

// TagCount is a tag name with the number of bookmarks holding it.
type TagCount struct {
	Name  string
	Count int64
}

// MarshalJSON encodes a TagCount as a [name, count] pair.
func (t TagCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{t.Name, t.Count})
}

// UnmarshalJSON decodes a [name, count] pair.
func (t *TagCount) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("tag count: want a [name, count] pair, got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &t.Name); err != nil {
		return fmt.Errorf("tag count name: %w", err)
	}
	if err := json.Unmarshal(pair[1], &t.Count); err != nil {
		return fmt.Errorf("tag count value: %w", err)
	}
	return nil
}
