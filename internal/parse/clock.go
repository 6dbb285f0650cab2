package parse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dersalik/fibscope/internal/fault"
)

// ClockPattern is the primary time-of-day shape found in exports.
const ClockPattern = "h:mm:ss tt (e.g., 11:06:44 AM)"

type clockGrammar func(string) (time.Duration, bool)

// clockGrammars are tried in order; the first match wins.
var clockGrammars = []clockGrammar{
	layoutClock("3:04:05 PM"), // h:mm:ss tt
	layoutClock("3:04 PM"),    // h:mm tt
	layoutClock("15:04:05"),   // H:mm:ss
	durationLiteral,           // [d.]h:mm[:ss[.f]]
}

// Clock parses a time of day into an offset from midnight.
// A blank field yields zero.
func Clock(s string) (time.Duration, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, nil
	}
	for _, grammar := range clockGrammars {
		if d, ok := grammar(trimmed); ok {
			return d, nil
		}
	}
	return 0, &fault.FormatError{Input: s, Expected: ClockPattern, Reason: "unable to parse time"}
}

func layoutClock(layout string) clockGrammar {
	return func(s string) (time.Duration, bool) {
		t, err := time.Parse(layout, strings.ToUpper(s))
		if err != nil {
			return 0, false
		}
		return sinceMidnight(t), true
	}
}

func sinceMidnight(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}

var (
	durationShape = regexp.MustCompile(`^(?:(\d+)\.)?(\d{1,2}):(\d{1,2})(?::(\d{1,2})(?:\.(\d{1,7}))?)?$`)
	daysShape     = regexp.MustCompile(`^\d+$`)
)

// durationLiteral accepts "d", "h:mm", "h:mm:ss", "d.h:mm:ss" and an
// optional fraction of up to seven digits.
func durationLiteral(s string) (time.Duration, bool) {
	if daysShape.MatchString(s) {
		days, err := strconv.Atoi(s)
		if err != nil {
			return 0, false
		}
		return time.Duration(days) * 24 * time.Hour, true
	}

	m := durationShape.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}

	days := atoiOrZero(m[1])
	hours := atoiOrZero(m[2])
	minutes := atoiOrZero(m[3])
	seconds := atoiOrZero(m[4])
	if hours > 23 || minutes > 59 || seconds > 59 {
		return 0, false
	}

	var frac time.Duration
	if m[5] != "" {
		digits := m[5] + strings.Repeat("0", 9-len(m[5]))
		frac = time.Duration(atoiOrZero(digits))
	}

	return time.Duration(days)*24*time.Hour +
		time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		frac, true
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
