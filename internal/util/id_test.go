package util

import (
	"strings"
	"testing"
)

func TestNewIDUsesPrefix(t *testing.T) {
	id := NewID("story")
	if !strings.HasPrefix(id, "story-") {
		t.Fatalf("expected story- prefix, got %q", id)
	}
}

func TestNewIDWithoutPrefix(t *testing.T) {
	id := NewID("")
	if strings.HasPrefix(id, "-") {
		t.Fatalf("expected no leading separator, got %q", id)
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := NewID("user")
		if _, ok := seen[id]; ok {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
}
