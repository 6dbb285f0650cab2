package id

import (
	"strings"

	"github.com/google/uuid"

	"github.com/dersalik/fibscope/internal/fault"
)

// Layout describes the accepted identifier shape.
const Layout = "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx"

// Parse parses a hyphenated 8-4-4-4-12 hex identifier.
// A blank field yields uuid.Nil.
func Parse(s string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return uuid.Nil, nil
	}
	if len(trimmed) != len(Layout) {
		return uuid.Nil, &fault.FormatError{Input: s, Expected: Layout, Reason: "unable to parse identifier"}
	}
	u, err := uuid.Parse(trimmed)
	if err != nil {
		return uuid.Nil, &fault.FormatError{Input: s, Expected: Layout, Reason: "unable to parse identifier"}
	}
	return u, nil
}

// Format renders u in canonical form, or "" for uuid.Nil.
func Format(u uuid.UUID) string {
	if u == uuid.Nil {
		return ""
	}
	return u.String()
}
