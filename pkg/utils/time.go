package utils

import "time"

// DisplayLayout is the layout used when showing dates to users
const DisplayLayout = "Jan 2, 2006 15:04 MST"

// NowUTC returns the current time in UTC.
// It is evaluated on every call so writes never reuse a stale timestamp.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// NowRFC3339 returns the current time in RFC3339 format
func NowRFC3339() string {
	return NowUTC().Format(time.RFC3339)
}

// ParseRFC3339 parses a time string in RFC3339 format
func ParseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// FormatDisplay formats t for user-facing pages and notices
func FormatDisplay(t time.Time) string {
	return t.UTC().Format(DisplayLayout)
}
