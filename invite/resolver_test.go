package invite

import (
	"errors"
	"net/url"
	"testing"
)

func TestParseLegacyJSON(t *testing.T) {
	token := ParseLegacy(`{"name":"Budi","total_guest":3}`)
	if token.Kind != LegacyJSONToken {
		t.Fatalf("expected LegacyJSONToken, got %v", token.Kind)
	}
	if token.Name != "Budi" || token.TotalGuest != 3 {
		t.Errorf("unexpected token: %+v", token)
	}
}

func TestParseLegacyJSONDefaultsTotalGuest(t *testing.T) {
	token := ParseLegacy(`{"name":"Ana"}`)
	if token.Kind != LegacyJSONToken {
		t.Fatalf("expected LegacyJSONToken, got %v", token.Kind)
	}
	if token.TotalGuest != 1 {
		t.Errorf("expected total_guest to default to 1, got %d", token.TotalGuest)
	}
}

func TestParseLegacyJSONStringTotalGuest(t *testing.T) {
	// some distributed links carried total_guest as a quoted string
	token := ParseLegacy(`{"name":"Ana","total_guest":"2"}`)
	if token.TotalGuest != 2 {
		t.Errorf("expected total_guest 2, got %d", token.TotalGuest)
	}
}

func TestParseLegacyURLEncoded(t *testing.T) {
	raw := url.QueryEscape(`{"name":"Sinta Dewi","total_guest":2}`)
	token := ParseLegacy(raw)
	if token.Kind != LegacyJSONToken {
		t.Fatalf("expected LegacyJSONToken, got %v", token.Kind)
	}
	if token.Name != "Sinta Dewi" || token.TotalGuest != 2 {
		t.Errorf("unexpected token: %+v", token)
	}
}

func TestParseLegacyPlainName(t *testing.T) {
	token := ParseLegacy("Pak%20Joko")
	if token.Kind != PlainNameToken {
		t.Fatalf("expected PlainNameToken, got %v", token.Kind)
	}
	if token.Name != "Pak Joko" || token.TotalGuest != 1 {
		t.Errorf("unexpected token: %+v", token)
	}
}

func TestParseLegacyMalformedJSONFallsThrough(t *testing.T) {
	token := ParseLegacy(`{"name":`)
	if token.Kind != PlainNameToken {
		t.Fatalf("malformed JSON should fall through to PlainNameToken, got %v", token.Kind)
	}
	if token.Name != `{"name":` {
		t.Errorf("expected raw value as name, got %q", token.Name)
	}
}

func TestParseTokenSlugCandidate(t *testing.T) {
	token := ParseToken("abc-123")
	if token.Kind != SlugToken || token.Slug != "abc-123" {
		t.Errorf("unexpected token: %+v", token)
	}
}

func TestResolveEmptyToken(t *testing.T) {
	calls := 0
	lookup := func(slug string) (GuestView, bool, error) {
		calls++
		return GuestView{}, false, nil
	}

	view, err := Resolve("", lookup)
	if err != nil {
		t.Fatal(err)
	}
	if calls != 0 {
		t.Errorf("empty token must not reach the store, got %d lookups", calls)
	}
	if view != (GuestView{}) {
		t.Errorf("expected the zero view, got %+v", view)
	}
}

func TestResolveSlugTierShortCircuits(t *testing.T) {
	calls := 0
	lookup := func(slug string) (GuestView, bool, error) {
		calls++
		return GuestView{Name: "Budi", Session: 1, TotalGuest: 2, Slug: slug}, true, nil
	}

	// the raw value happens to parse as JSON too; tier 1 must win
	view, err := Resolve(`{"name":"wrong"}`, lookup)
	if err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one lookup, got %d", calls)
	}
	if view.Name != "Budi" || view.Slug == "" {
		t.Errorf("expected slug-tier view, got %+v", view)
	}
}

func TestResolveFallsBackToLegacyJSON(t *testing.T) {
	lookup := func(slug string) (GuestView, bool, error) {
		return GuestView{}, false, nil
	}

	view, err := Resolve(`{"name":"Ana","total_guest":2}`, lookup)
	if err != nil {
		t.Fatal(err)
	}
	if view.Slug != "" {
		t.Errorf("legacy view must not carry a slug, got %q", view.Slug)
	}
	if view.Name != "Ana" || view.TotalGuest != 2 {
		t.Errorf("unexpected view: %+v", view)
	}
}

func TestResolveFallsBackToPlainName(t *testing.T) {
	lookup := func(slug string) (GuestView, bool, error) {
		return GuestView{}, false, nil
	}

	view, err := Resolve("Pak Joko", lookup)
	if err != nil {
		t.Fatal(err)
	}
	if view.Name != "Pak Joko" || view.TotalGuest != 1 || view.Slug != "" {
		t.Errorf("unexpected view: %+v", view)
	}
}

func TestResolveSurfacesStoreFailure(t *testing.T) {
	wantErr := errors.New("store down")
	lookup := func(slug string) (GuestView, bool, error) {
		return GuestView{}, false, wantErr
	}

	if _, err := Resolve("some-slug", lookup); !errors.Is(err, wantErr) {
		t.Errorf("expected store error to surface, got %v", err)
	}
}
