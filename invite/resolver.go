package invite

import (
	"encoding/json"
	"net/url"
	"strings"
)

// The guest URL parameter has gone through three formats over the life of the
// invitation: a stored slug, an URL-encoded JSON payload embedding the guest's
// attributes, and a bare display name. Links of all three kinds were handed
// out and must keep working, so resolution falls back across formats in that
// order.

// TokenKind tags a parsed guest identity token.
type TokenKind int

const (
	// SlugToken is the current format: an opaque slug resolved via the store.
	SlugToken TokenKind = iota
	// LegacyJSONToken is the pre-slug format embedding name/total_guest inline.
	LegacyJSONToken
	// PlainNameToken is the oldest format: the display name itself.
	PlainNameToken
)

// Token is the tagged result of parsing a raw guest parameter. Parsing is
// total: every non-empty input maps to exactly one variant.
type Token struct {
	Kind TokenKind

	// Slug is set for SlugToken.
	Slug string

	// Name and TotalGuest are set for the legacy variants.
	Name       string
	TotalGuest int
}

type legacyPayload struct {
	Name       string          `json:"name"`
	TotalGuest json.RawMessage `json:"total_guest"`
}

// ParseToken classifies a raw guest parameter without touching the store.
// A candidate slug is reported as SlugToken; the caller decides whether it
// resolves and falls back to ParseLegacy otherwise.
func ParseToken(raw string) Token {
	return Token{Kind: SlugToken, Slug: raw}
}

// ParseLegacy decodes a token that failed slug lookup. It URL-decodes the raw
// value and tries the inline-JSON shape first; anything unparseable is treated
// as a plain display name. A failed decode at any step is expected, not an
// error.
func ParseLegacy(raw string) Token {
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		decoded = raw
	}

	trimmed := strings.TrimSpace(decoded)
	if strings.HasPrefix(trimmed, "{") {
		var payload legacyPayload
		if err := json.Unmarshal([]byte(trimmed), &payload); err == nil {
			total := 1
			if len(payload.TotalGuest) > 0 {
				// total_guest appeared as both a number and a quoted string
				// in distributed links
				var n int
				var s string
				if err := json.Unmarshal(payload.TotalGuest, &n); err == nil && n > 0 {
					total = n
				} else if err := json.Unmarshal(payload.TotalGuest, &s); err == nil {
					if parsed, ok := atoiPositive(s); ok {
						total = parsed
					}
				}
			}
			return Token{Kind: LegacyJSONToken, Name: payload.Name, TotalGuest: total}
		}
	}

	return Token{Kind: PlainNameToken, Name: decoded, TotalGuest: 1}
}

func atoiPositive(s string) (int, bool) {
	n := 0
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	if n <= 0 {
		return 0, false
	}
	return n, true
}

// GuestView is the resolved identity handed to the public-facing flow. Slug is
// empty for legacy tokens; consumers must not assume it is present. Session is
// zero when the token did not resolve to a stored guest.
type GuestView struct {
	Name       string `json:"name"`
	Session    int    `json:"session,omitempty"`
	TotalGuest int    `json:"totalGuest"`
	Slug       string `json:"slug,omitempty"`
}

// SlugLookup resolves a candidate slug to a guest view. The second return
// reports whether the slug matched; errors are reserved for store failures.
type SlugLookup func(slug string) (GuestView, bool, error)

// Resolve maps a raw guest parameter to a GuestView using the three-tier
// precedence: stored slug, then legacy inline JSON, then bare name. The
// legacy tiers are only consulted when the slug lookup finds nothing. An
// empty raw value resolves to the zero view without consulting the store.
func Resolve(raw string, lookup SlugLookup) (GuestView, error) {
	if raw == "" {
		return GuestView{}, nil
	}

	token := ParseToken(raw)
	if lookup != nil {
		view, ok, err := lookup(token.Slug)
		if err != nil {
			return GuestView{}, err
		}
		if ok {
			return view, nil
		}
	}

	legacy := ParseLegacy(raw)
	return GuestView{Name: legacy.Name, TotalGuest: legacy.TotalGuest}, nil
}
