package command

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/MrSnakeDoc/seeyoulater/internal/domain"
)

// HTTP protocol shared by the server and the remote backend.

const (
	HeaderUsername = "X-Username"
	HeaderPassword = "X-Password"

	PathBookmark = "/bookmark"
	PathSearch   = "/search"
	PathTags     = "/tags"
)

// Error kinds carried in ErrorBody.Kind.
const (
	KindStorage       = "storage"
	KindInvalid       = "invalid"
	KindSerialization = "serialization"
	KindSchema        = "schema"
	KindTransport     = "transport"
	KindUnauthorized  = "unauthorized"
	KindInternal      = "internal"
)

// ErrorBody is the JSON payload of every non-2xx API response.
type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// KindOf names the error kind of err for the wire.
func KindOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return KindInvalid
	case errors.Is(err, domain.ErrSchema):
		return KindSchema
	case errors.Is(err, domain.ErrStorage):
		return KindStorage
	case errors.Is(err, domain.ErrSerialization):
		return KindSerialization
	case errors.Is(err, domain.ErrTransport):
		return KindTransport
	case errors.Is(err, domain.ErrUnauthorized):
		return KindUnauthorized
	default:
		return KindInternal
	}
}

// EncodeSearch turns q into query parameters: query, repeated tag, all_tags.
func EncodeSearch(q domain.SearchQuery) url.Values {
	v := url.Values{}
	if q.Query != nil {
		v.Set("query", *q.Query)
	}
	for _, t := range q.Tags {
		v.Add("tag", t)
	}
	if q.Match == domain.MatchAll {
		v.Set("all_tags", "true")
	}
	return v
}

// DecodeSearch is the inverse of EncodeSearch. An absent or empty query
// parameter means no free-text filter.
func DecodeSearch(v url.Values) (domain.SearchQuery, error) {
	allTags, err := parseBool(v, "all_tags")
	if err != nil {
		return domain.SearchQuery{}, err
	}
	return domain.SearchQuery{
		Query: domain.StringPtr(v.Get("query")),
		Tags:  v["tag"],
		Match: domain.MatchModeFromAllTags(allTags),
	}, nil
}

// EncodeTags turns q into sort_by_count and reverse parameters.
func EncodeTags(q domain.TagsQuery) url.Values {
	v := url.Values{}
	v.Set("sort_by_count", strconv.FormatBool(q.SortByCount))
	v.Set("reverse", strconv.FormatBool(q.Reverse))
	return v
}

func DecodeTags(v url.Values) (domain.TagsQuery, error) {
	byCount, err := parseBool(v, "sort_by_count")
	if err != nil {
		return domain.TagsQuery{}, err
	}
	reverse, err := parseBool(v, "reverse")
	if err != nil {
		return domain.TagsQuery{}, err
	}
	return domain.TagsQuery{SortByCount: byCount, Reverse: reverse}, nil
}

func parseBool(v url.Values, key string) (bool, error) {
	raw := v.Get(key)
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, domain.InvalidArgument("%s: %q is not a boolean", key, raw)
	}
	return b, nil
}
