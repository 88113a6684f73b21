package redis

import (
	"strings"
	"testing"
)

func TestMetadataKey(t *testing.T) {
	a := MetadataKey("https://go.dev")
	b := MetadataKey("https://go.dev/")

	if !strings.HasPrefix(a, KeyPrefixMetadata) {
		t.Errorf("MetadataKey() = %q, want prefix %q", a, KeyPrefixMetadata)
	}
	if len(a) != len(KeyPrefixMetadata)+64 {
		t.Errorf("MetadataKey() length = %d, want prefix + 64 hex chars", len(a))
	}
	if a == b {
		t.Error("distinct URLs share a key")
	}
	if MetadataKey("https://go.dev") != a {
		t.Error("MetadataKey() is not stable")
	}
}
