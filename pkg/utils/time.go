package utils

import "time"

// NowRFC3339 returns the current UTC time in RFC3339 format, the timestamp
// format used on every stored record.
func NowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// ParseRFC3339 parses an RFC3339 time string.
func ParseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
