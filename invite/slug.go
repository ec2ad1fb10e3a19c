package invite

import "github.com/google/uuid"

// NewSlug mints a guest identity token: a random UUID v4 string. It is
// statistically unique, carries no guest data, and is URL-safe as-is. The
// guests table still enforces uniqueness, but a collision is unlikely enough
// that callers treat a rejected insert as fatal rather than retrying.
func NewSlug() string {
	return uuid.NewString()
}
