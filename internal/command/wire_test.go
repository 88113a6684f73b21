package command

import (
	"errors"
	"net/url"
	"reflect"
	"testing"

	"github.com/MrSnakeDoc/seeyoulater/internal/domain"
)

func TestSearchRoundTrip(t *testing.T) {
	text := "golang"
	tests := []struct {
		name string
		q    domain.SearchQuery
	}{
		{"empty", domain.SearchQuery{Match: domain.MatchAny}},
		{"text only", domain.SearchQuery{Query: &text, Match: domain.MatchAny}},
		{"tags any", domain.SearchQuery{Tags: []string{"a", "b"}, Match: domain.MatchAny}},
		{"tags all", domain.SearchQuery{Query: &text, Tags: []string{"a", "b c"}, Match: domain.MatchAll}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := url.ParseQuery(EncodeSearch(tt.q).Encode())
			if err != nil {
				t.Fatalf("ParseQuery() error = %v", err)
			}
			got, err := DecodeSearch(encoded)
			if err != nil {
				t.Fatalf("DecodeSearch() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.q) {
				t.Errorf("round trip = %+v, want %+v", got, tt.q)
			}
		})
	}
}

func TestDecodeSearch_InvalidBool(t *testing.T) {
	_, err := DecodeSearch(url.Values{"all_tags": {"maybe"}})
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("DecodeSearch() error = %v, want ErrInvalidArgument", err)
	}
}

func TestDecodeTags(t *testing.T) {
	got, err := DecodeTags(EncodeTags(domain.TagsQuery{SortByCount: true, Reverse: true}))
	if err != nil {
		t.Fatalf("DecodeTags() error = %v", err)
	}
	if !got.SortByCount || !got.Reverse {
		t.Errorf("DecodeTags() = %+v", got)
	}

	got, err = DecodeTags(url.Values{})
	if err != nil || got.SortByCount || got.Reverse {
		t.Errorf("DecodeTags(empty) = %+v, %v", got, err)
	}

	if _, err := DecodeTags(url.Values{"reverse": {"x"}}); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("DecodeTags(invalid) error = %v", err)
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&domain.StorageError{Op: "x", Err: errors.New("y")}, KindStorage},
		{&domain.SchemaError{Version: "9"}, KindSchema},
		{&domain.SerializationError{Op: "x", Err: errors.New("y")}, KindSerialization},
		{&domain.TransportError{Op: "x", Err: errors.New("y")}, KindTransport},
		{domain.InvalidArgument("bad"), KindInvalid},
		{domain.ErrUnauthorized, KindUnauthorized},
		{errors.New("other"), KindInternal},
	}

	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
