package model

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the day-first layout used by FIB exports.
	DateLayout = "02/01/2006"
	// ClockLayout is the 12-hour layout used when writing a time of day.
	ClockLayout = "3:04:05 PM"
)

// FormatDate renders t as dd/MM/yyyy, or "" for the unset date.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// FormatClock renders a time of day as h:mm:ss AM/PM, or "" when zero.
// Whole days are dropped.
func FormatClock(d time.Duration) string {
	if d == 0 {
		return ""
	}
	d %= 24 * time.Hour
	if d < 0 {
		d += 24 * time.Hour
	}
	return time.Time{}.Add(d).Format(ClockLayout)
}

// FormatClockExact renders d so that it parses back to the same duration.
// Whole seconds within a day use FormatClock; anything else falls back to
// the [d.]hh:mm:ss[.fffffff] literal, which keeps days and fractions down
// to 100ns. Negative offsets wrap like FormatClock.
func FormatClockExact(d time.Duration) string {
	if d < 0 || (d < 24*time.Hour && d%time.Second == 0) {
		return FormatClock(d)
	}
	return durationLiteral(d)
}

func durationLiteral(d time.Duration) string {
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	frac := d - s*time.Second

	var b strings.Builder
	if days > 0 {
		fmt.Fprintf(&b, "%d.", days)
	}
	fmt.Fprintf(&b, "%02d:%02d:%02d", h, m, s)
	if ticks := frac / 100; ticks > 0 {
		b.WriteString("." + strings.TrimRight(fmt.Sprintf("%07d", ticks), "0"))
	}
	return b.String()
}
