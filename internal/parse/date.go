package parse

import (
	"regexp"
	"strings"
	"time"

	"github.com/dersalik/fibscope/internal/fault"
	"github.com/dersalik/fibscope/internal/model"
)

// DatePattern is the human-readable form of model.DateLayout.
const DatePattern = "dd/MM/yyyy"

var dateShape = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

// Date parses a dd/MM/yyyy date. A blank field yields the zero time.
func Date(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}, nil
	}
	if dateShape.MatchString(trimmed) {
		if t, err := time.Parse(model.DateLayout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &fault.FormatError{Input: s, Expected: DatePattern, Reason: "unable to parse date"}
}
