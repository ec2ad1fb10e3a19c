package invite

import (
	"net/url"
	"testing"
)

func TestNewSlugUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		slug := NewSlug()
		if slug == "" {
			t.Fatal("generated an empty slug")
		}
		if seen[slug] {
			t.Fatalf("slug %q generated twice", slug)
		}
		seen[slug] = true
	}
}

func TestNewSlugURLSafe(t *testing.T) {
	slug := NewSlug()
	if escaped := url.QueryEscape(slug); escaped != slug {
		t.Errorf("slug %q is not URL-safe without encoding (escapes to %q)", slug, escaped)
	}
}
