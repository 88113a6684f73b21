package domain

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, []string{}},
		{"sorted and deduplicated", []string{"go", "docs", "go"}, []string{"docs", "go"}},
		{"trimmed", []string{" go ", "go"}, []string{"go"}},
		{"empty dropped", []string{"", "  ", "a"}, []string{"a"}},
		{"case kept", []string{"Go", "go"}, []string{"Go", "go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTags(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeTags(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMetadataIsEmpty(t *testing.T) {
	if !(Metadata{}).IsEmpty() {
		t.Error("zero Metadata should be empty")
	}
	if (Metadata{Description: StringPtr("d")}).IsEmpty() {
		t.Error("Metadata with a description is not empty")
	}
	if StringPtr("") != nil {
		t.Error("StringPtr(\"\") should be nil")
	}
}

func TestTagCountJSON(t *testing.T) {
	data, err := json.Marshal([]TagCount{{Name: "go", Count: 3}})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `[["go",3]]` {
		t.Errorf("Marshal() = %s", data)
	}

	var got []TagCount
	if err := json.Unmarshal([]byte(`[["docs",1],["go",2]]`), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	want := []TagCount{{Name: "docs", Count: 1}, {Name: "go", Count: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Unmarshal() = %v, want %v", got, want)
	}

	for _, bad := range []string{`["go"]`, `[1,2]`, `["go","x"]`, `{"name":"go"}`} {
		var tc TagCount
		if err := json.Unmarshal([]byte(bad), &tc); err == nil {
			t.Errorf("Unmarshal(%s) should fail", bad)
		}
	}
}

func TestMatchMode(t *testing.T) {
	if MatchModeFromAllTags(true) != MatchAll || MatchModeFromAllTags(false) != MatchAny {
		t.Error("MatchModeFromAllTags mapping is wrong")
	}
	if MatchAll.String() != "all" || MatchMode(7).String() != "MatchMode(7)" {
		t.Errorf("String() = %q, %q", MatchAll.String(), MatchMode(7).String())
	}
}
